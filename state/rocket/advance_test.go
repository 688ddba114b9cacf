package rocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ticks(s RocketState, n int) RocketState {
	for i := 0; i < n; i++ {
		s = Advance(s)
	}
	return s
}

func TestAdvanceScenarios(t *testing.T) {
	launched := Ignite(Initial())

	tests := []struct {
		name  string
		ticks int
		want  RocketState
	}{
		{"five ticks stay in stage 1", 5, RocketState{Stage: Stage1, Fuel: 90, Altitude: 50, Speed: 500}},
		{"ninth tick still stage 1", 9, RocketState{Stage: Stage1, Fuel: 82, Altitude: 90, Speed: 900}},
		{"tenth tick enters stage 2", 10, RocketState{Stage: Stage2, Fuel: 80, Altitude: 100, Speed: 1000}},
		{"twentieth tick reaches orbit", 20, RocketState{Stage: Orbit, Fuel: 60, Altitude: 200, Speed: 2000}},
		{"orbit absorbs further ticks", 50, RocketState{Stage: Orbit, Fuel: 60, Altitude: 200, Speed: 2000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ticks(launched, tt.ticks))
		})
	}
}

func TestAdvanceIsPure(t *testing.T) {
	s := RocketState{Stage: Stage2, Fuel: 40, Altitude: 150, Speed: 1500}
	first := Advance(s)
	second := Advance(s)
	assert.Equal(t, first, second)
	assert.Equal(t, RocketState{Stage: Stage2, Fuel: 40, Altitude: 150, Speed: 1500}, s)
}

func TestAdvanceFuelExhaustion(t *testing.T) {
	// A tank that cannot reach orbit: 50 ticks of burn from 100% empties it,
	// here compressed to a rocket launched with 10% fuel.
	s := RocketState{Stage: Stage1, Fuel: 10}
	for i := 1; i <= 5; i++ {
		s = Advance(s)
		if i < 5 {
			require.Equal(t, Stage1, s.Stage, "tick %d", i)
		}
	}
	assert.Equal(t, RocketState{Stage: Failed, Fuel: 0, Altitude: 50, Speed: 500}, s)

	after := Advance(s)
	assert.Equal(t, s, after)
}

func TestAdvanceFuelCheckWinsOverAltitude(t *testing.T) {
	tests := []struct {
		name string
		in   RocketState
	}{
		{"stage 1 at separation altitude", RocketState{Stage: Stage1, Fuel: 2, Altitude: 90, Speed: 900}},
		{"stage 2 at orbit altitude", RocketState{Stage: Stage2, Fuel: 1, Altitude: 190, Speed: 1900}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := Advance(tt.in)
			assert.Equal(t, Failed, next.Stage)
			assert.LessOrEqual(t, next.Fuel, 0)
			assert.Equal(t, tt.in.Altitude+10, next.Altitude)
		})
	}
}

func TestAdvanceLeavesPadAndTerminalStatesAlone(t *testing.T) {
	for _, s := range []RocketState{
		Initial(),
		{Stage: PreLaunch, Fuel: 1},
		{Stage: Orbit, Fuel: 60, Altitude: 200, Speed: 2000},
		{Stage: Failed, Fuel: 0, Altitude: 50, Speed: 500},
	} {
		assert.Equal(t, s, Advance(s), string(s.Stage))
	}
}

func TestAdvanceMonotonic(t *testing.T) {
	s := Ignite(Initial())
	for !s.IsTerminal() {
		next := Advance(s)
		assert.GreaterOrEqual(t, next.Altitude, s.Altitude)
		assert.GreaterOrEqual(t, next.Speed, s.Speed)
		assert.LessOrEqual(t, next.Fuel, s.Fuel)
		if next.Stage == Stage2 {
			assert.Contains(t, []LaunchStage{Stage1, Stage2}, s.Stage)
		}
		if next.Stage == Orbit {
			assert.GreaterOrEqual(t, next.Altitude, 200)
		}
		s = next
	}
	assert.Equal(t, Orbit, s.Stage)
}

func TestIgnite(t *testing.T) {
	assert.Equal(t, Stage1, Ignite(Initial()).Stage)
	inFlight := RocketState{Stage: Stage2, Fuel: 50}
	assert.Equal(t, inFlight, Ignite(inFlight))
}

func TestTransition(t *testing.T) {
	s1 := RocketState{Stage: Stage1}

	_, ok := Transition(s1, s1)
	assert.False(t, ok)

	a, ok := Transition(s1, RocketState{Stage: Stage2})
	require.True(t, ok)
	assert.Equal(t, "Entering Stage 2", a.Log)
	assert.False(t, a.Warning)

	a, ok = Transition(RocketState{Stage: Stage2}, RocketState{Stage: Orbit})
	require.True(t, ok)
	assert.Equal(t, "Orbit achieved! Mission Successful.", a.Display)

	a, ok = Transition(s1, RocketState{Stage: Failed})
	require.True(t, ok)
	assert.True(t, a.Warning)
	assert.Equal(t, "Mission failed: Insufficient fuel", a.Log)
}

func TestStateString(t *testing.T) {
	s := RocketState{Stage: Stage2, Fuel: 78, Altitude: 110, Speed: 1100}
	assert.Equal(t, "Stage: Stage 2, Fuel: 78%, Altitude: 110 km, Speed: 1100 km/h", s.String())
}
