package camera

import "math"

// smoothDamp is a critically damped spring toward target that settles in
// roughly smoothTime seconds. It never overshoots.
func smoothDamp(current, target, velocity, smoothTime, dt float64) (float64, float64) {
	if dt <= 0 {
		return current, velocity
	}
	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2 / smoothTime
	x := omega * dt
	decay := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	temp := (velocity + omega*change) * dt
	velocity = (velocity - omega*temp) * decay
	out := target + (change+temp)*decay

	if (target-current > 0) == (out > target) {
		return target, 0
	}
	return out, velocity
}

// deadZone moves the camera only by how far the target sits outside a
// window of half-width half centered on the camera.
func deadZone(cam, target, half float64) float64 {
	d := target - cam
	switch {
	case d > half:
		return cam + d - half
	case d < -half:
		return cam + d + half
	}
	return cam
}
