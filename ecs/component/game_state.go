package component

type Phase uint8

const (
	PhaseRunning Phase = iota
	PhaseTerminated
)

func (p Phase) String() string {
	if p == PhaseTerminated {
		return "terminated"
	}
	return "running"
}

type Cause string

const (
	CauseNone              Cause = ""
	CauseSelfCollision     Cause = "self-collision"
	CauseObstacleCollision Cause = "obstacle-collision"
	CauseQuit              Cause = "quit"
)

// GameState is the session singleton. Terminated is absorbing.
type GameState struct {
	Phase Phase
	Cause Cause
}

var GameStateComponent = NewComponent[GameState]()

// Terminate moves the state to PhaseTerminated. Only the first cause sticks.
func (s *GameState) Terminate(cause Cause) bool {
	if s == nil || s.Phase == PhaseTerminated {
		return false
	}
	s.Phase = PhaseTerminated
	s.Cause = cause
	return true
}

func (s *GameState) Running() bool {
	return s != nil && s.Phase == PhaseRunning
}
