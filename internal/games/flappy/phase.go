package flappy

// Phase is the episode's position in the playing → exploding → game over
// progression.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseExploding
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseExploding:
		return "exploding"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
