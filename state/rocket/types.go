package rocket

import "fmt"

// LaunchStage is a named phase of the mission.
type LaunchStage string

const (
	PreLaunch LaunchStage = "Pre-Launch"
	Stage1    LaunchStage = "Stage 1"
	Stage2    LaunchStage = "Stage 2"
	Orbit     LaunchStage = "Orbit"
	Failed    LaunchStage = "Failed"
)

const (
	fuelPerTick     = 2
	altitudePerTick = 10
	speedPerTick    = 100

	stage2Altitude = 100
	orbitAltitude  = 200
)

// RocketState is the progress record of a single mission.
type RocketState struct {
	Stage    LaunchStage `json:"stage"`
	Fuel     int         `json:"fuel"`
	Altitude int         `json:"altitude"`
	Speed    int         `json:"speed"`
}

// Initial returns a rocket on the pad with a full tank.
func Initial() RocketState {
	return RocketState{
		Stage:    PreLaunch,
		Fuel:     100,
		Altitude: 0,
		Speed:    0,
	}
}

// IsTerminal reports whether the mission has ended.
func (s RocketState) IsTerminal() bool {
	return s.Stage == Orbit || s.Stage == Failed
}

// InFlight reports whether a tick would move the rocket.
func (s RocketState) InFlight() bool {
	return s.Stage == Stage1 || s.Stage == Stage2
}

func (s RocketState) String() string {
	return fmt.Sprintf("Stage: %s, Fuel: %d%%, Altitude: %d km, Speed: %d km/h", s.Stage, s.Fuel, s.Altitude, s.Speed)
}
