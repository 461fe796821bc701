package sim

// Body is the vertical kinematic state of the controlled entity.
// Position is the top edge of the body; larger values are lower on screen.
type Body struct {
	Position float64
	Velocity float64
}

// Integrate advances the body by one tick using semi-implicit Euler:
// velocity is updated first and the new velocity moves the position.
// The order is observable in trajectories and must not change.
func (b *Body) Integrate(gravity float64) {
	b.Velocity += gravity
	b.Position += b.Velocity
}

// Jump overwrites the velocity with the impulse. Repeated jumps do not stack.
func (b *Body) Jump(impulse float64) {
	b.Velocity = impulse
}
