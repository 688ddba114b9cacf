package rocket

// Advance applies one tick to s and returns the resulting state.
// Only an in-flight rocket moves; pad and terminal states come back unchanged.
// Fuel exhaustion is checked before altitude, so the tick that drains the tank
// fails the mission even if it also crosses a stage altitude.
func Advance(s RocketState) RocketState {
	if !s.InFlight() {
		return s
	}
	next := s
	next.Fuel -= fuelPerTick
	next.Altitude += altitudePerTick
	next.Speed += speedPerTick

	switch {
	case next.Fuel <= 0:
		next.Stage = Failed
	case next.Altitude >= stage2Altitude && next.Stage == Stage1:
		next.Stage = Stage2
	case next.Altitude >= orbitAltitude:
		next.Stage = Orbit
	}
	return next
}

// Ignite moves a rocket from the pad into the first stage.
func Ignite(s RocketState) RocketState {
	if s.Stage == PreLaunch {
		s.Stage = Stage1
	}
	return s
}

// Announcement describes a stage change produced by a tick.
type Announcement struct {
	Stage   LaunchStage
	Display string
	Log     string
	Warning bool
}

// Transition returns the announcement for moving from prev to next, if any.
func Transition(prev, next RocketState) (Announcement, bool) {
	if prev.Stage == next.Stage {
		return Announcement{}, false
	}
	switch next.Stage {
	case Failed:
		return Announcement{
			Stage:   Failed,
			Display: "Mission Failed due to insufficient fuel.",
			Log:     "Mission failed: Insufficient fuel",
			Warning: true,
		}, true
	case Stage2:
		return Announcement{
			Stage:   Stage2,
			Display: "Stage 1 complete. Separating stage. Entering Stage 2.",
			Log:     "Entering Stage 2",
		}, true
	case Orbit:
		return Announcement{
			Stage:   Orbit,
			Display: "Orbit achieved! Mission Successful.",
			Log:     "Mission successful: Orbit achieved",
		}, true
	}
	return Announcement{}, false
}
