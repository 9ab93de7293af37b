package config

// StateID identifies an actor's presentation state. Player states are
// derived from motion every tick; effect states pick a clip.
type StateID int

const (
	StateNone StateID = iota
	Idle
	Running
	Jump
	Fall
	StateSpark
	StateDust
	StateCrate
)

var stateNames = map[StateID]string{
	StateNone:  "none",
	Idle:       "idle",
	Running:    "running",
	Jump:       "jump",
	Fall:       "fall",
	StateSpark: "spark",
	StateDust:  "dust",
	StateCrate: "crate",
}

func (s StateID) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}
