package pool

import "errors"

var (
	// ErrInvalidConfiguration is returned for impossible pool sizes.
	ErrInvalidConfiguration = errors.New("pool: invalid configuration")
	// ErrDuplicateName is returned when a pool name is already registered.
	ErrDuplicateName = errors.New("pool: duplicate name")
	// ErrUnknownPool is returned for operations on a name with no pool.
	ErrUnknownPool = errors.New("pool: unknown pool")
)
