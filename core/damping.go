package core

import (
	"math"
)

const (
	// DefaultSmoothTime is the time in seconds the damper takes to roughly
	// close the gap to its target
	DefaultSmoothTime float32 = 0.2

	// DampEpsilon is the distance below which a damped value snaps to its target
	DampEpsilon float32 = 0.001

	minSmoothTime float32 = 0.0001
)

// Damper smooths one scalar toward a moving target. It is a critically damped
// spring: the velocity carried between frames keeps motion continuous when the
// target moves, and the step never overshoots the target.
type Damper struct {
	Velocity float32
}

// Step returns current moved toward target over dt seconds
func (d *Damper) Step(current, target, smoothTime, dt float32) float32 {
	if dt <= 0 {
		return current
	}
	if abs32(current-target) <= DampEpsilon {
		d.Velocity = 0
		return target
	}

	if smoothTime < minSmoothTime {
		smoothTime = minSmoothTime
	}
	omega := 2 / smoothTime
	decay := expApprox(omega * dt)

	change := current - target
	temp := (d.Velocity + omega*change) * dt
	d.Velocity = (d.Velocity - omega*temp) * decay
	output := target + (change+temp)*decay

	// Never pass the target in a single step
	if (target-current > 0) == (output > target) {
		output = target
		d.Velocity = 0
	}
	return output
}

// Reset clears the carried velocity
func (d *Damper) Reset() {
	d.Velocity = 0
}

// expApprox is the rational approximation of e^-x used by smooth-damp springs.
// It is monotone, equals 1 at x=0 and tends to 0.
func expApprox(x float32) float32 {
	return 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)
}

// HalfLife returns the approximate time in seconds for the gap to halve from
// rest with the given smoothing time
func HalfLife(smoothTime float32) float32 {
	if smoothTime < minSmoothTime {
		smoothTime = minSmoothTime
	}
	// A critically damped spring with omega = 2/smoothTime halves the gap when
	// (1 + omega*t) * e^(-omega*t) = 0.5, i.e. omega*t ≈ 1.678.
	return 1.678 * smoothTime / 2
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
