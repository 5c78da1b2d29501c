package loop

// Phase is the game's lifecycle stage.
type Phase int

const (
	PhaseInit     Phase = iota // Being set up
	PhaseRunning               // Ticking
	PhaseGameOver              // Player dead or quit requested
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// State is the per-game bookkeeping outside the entities themselves.
type State struct {
	Phase Phase
	Tick  uint64 // Ticks completed
	Score int
}

// Result summarizes a finished game.
type Result struct {
	Score int
	Ticks uint64
	Quit  bool // Ended by the player rather than by death
}
