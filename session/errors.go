package session

import (
	"errors"
	"fmt"

	"github.com/milk9111/snake/ecs/component"
)

var (
	// ErrQuit is returned by Step once the player has asked to quit.
	ErrQuit = errors.New("session: quit")
	// ErrGameOver matches every *GameOverError.
	ErrGameOver = errors.New("session: game over")
)

// GameOverError reports a fatal collision.
type GameOverError struct {
	Cause component.Cause
	Eaten int
}

func (e *GameOverError) Error() string {
	return fmt.Sprintf("session: game over: %s after eating %d", e.Cause, e.Eaten)
}

func (e *GameOverError) Unwrap() error {
	return ErrGameOver
}
