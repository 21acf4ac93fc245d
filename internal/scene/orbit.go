package scene

import "math"

const (
	DefaultSensitivity = 0.01
	DefaultFriction    = 0.95
	DefaultEpsilon     = 1e-4
)

// OrbitConfig tunes drag response and coasting.
type OrbitConfig struct {
	Sensitivity float64 `yaml:"sensitivity"` // radians per pixel
	Friction    float64 `yaml:"friction"`
	Epsilon     float64 `yaml:"epsilon"`
}

func DefaultOrbitConfig() OrbitConfig {
	return OrbitConfig{
		Sensitivity: DefaultSensitivity,
		Friction:    DefaultFriction,
		Epsilon:     DefaultEpsilon,
	}
}

// Orbit turns pointer drags into rotation and coasts after release. It is
// the only writer of the rotation and velocity in the state it drives.
type Orbit struct {
	cfg      OrbitConfig
	state    *ViewportState
	last     Rotation
	dragging bool
	gen      uint64
}

func NewOrbit(state *ViewportState, cfg OrbitConfig) *Orbit {
	if cfg.Friction <= 0 || cfg.Friction >= 1 {
		cfg.Friction = DefaultFriction
	}
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = DefaultEpsilon
	}
	if cfg.Sensitivity == 0 {
		cfg.Sensitivity = DefaultSensitivity
	}
	return &Orbit{cfg: cfg, state: state}
}

// BeginDrag cancels any coast in flight.
func (o *Orbit) BeginDrag() {
	o.dragging = true
	o.last = Rotation{}
	o.Stop()
}

// Drag applies one pointer move of (dx, dy) pixels.
func (o *Orbit) Drag(dx, dy float64) {
	k := o.cfg.Sensitivity
	o.last = Rotation{Pitch: -dy * k, Yaw: dx * k}
	o.state.Rotation.Yaw += o.last.Yaw
	o.state.Rotation.Pitch = clampPitch(o.state.Rotation.Pitch + o.last.Pitch)
}

// EndDrag hands the last move over to coasting and reports whether there
// is anything to coast.
func (o *Orbit) EndDrag() bool {
	o.dragging = false
	o.state.Velocity = o.last
	o.last = Rotation{}
	return o.Coasting()
}

// Dragging reports whether a drag is in progress.
func (o *Orbit) Dragging() bool { return o.dragging }

// Coasting reports whether the velocity is still above epsilon.
func (o *Orbit) Coasting() bool {
	v := o.state.Velocity
	return math.Abs(v.Pitch) > o.cfg.Epsilon || math.Abs(v.Yaw) > o.cfg.Epsilon
}

// Step advances one display refresh of coasting: the velocity is applied
// to the rotation and then decayed by friction. It returns false once the
// velocity is at rest, at which point it is snapped to zero.
func (o *Orbit) Step() bool {
	if !o.Coasting() {
		o.state.Velocity = Rotation{}
		return false
	}
	v := o.state.Velocity
	o.state.Rotation.Yaw += v.Yaw
	o.state.Rotation.Pitch = clampPitch(o.state.Rotation.Pitch + v.Pitch)
	o.state.Velocity = Rotation{Pitch: v.Pitch * o.cfg.Friction, Yaw: v.Yaw * o.cfg.Friction}
	if !o.Coasting() {
		o.state.Velocity = Rotation{}
		return false
	}
	return true
}

// Stop zeroes the velocity and invalidates outstanding coast ticks.
func (o *Orbit) Stop() {
	o.state.Velocity = Rotation{}
	o.gen++
}

// Reset restores the default rotation.
func (o *Orbit) Reset() {
	o.dragging = false
	o.last = Rotation{}
	o.state.Rotation = DefaultRotation
	o.Stop()
}

// Generation changes whenever coasting is cancelled. A host that schedules
// coast ticks tags them with the generation and drops stale ones.
func (o *Orbit) Generation() uint64 { return o.gen }

// StepsToRest is the number of Step calls that move the rotation before a
// coast starting at velocity v comes to rest.
func (o *Orbit) StepsToRest(v Rotation) int {
	return StepsToRest(math.Max(math.Abs(v.Pitch), math.Abs(v.Yaw)), o.cfg.Friction, o.cfg.Epsilon)
}

// StepsToRest bounds the coast of a velocity with magnitude speed:
// ceil(ln(eps/speed) / ln(friction)).
func StepsToRest(speed, friction, eps float64) int {
	if speed <= eps {
		return 0
	}
	return int(math.Ceil(math.Log(eps/speed) / math.Log(friction)))
}

func clampPitch(p float64) float64 {
	return math.Max(-math.Pi/2, math.Min(math.Pi/2, p))
}
