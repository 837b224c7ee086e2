package terminal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/milk9111/snake/prefabs"
	"github.com/milk9111/snake/session"
)

// FrameInterval is the terminal frontend's loop period.
const FrameInterval = time.Second / 60

// RunOptions configures Run. Watcher and ConfigPath enable hot reload.
type RunOptions struct {
	Watcher    *prefabs.Watcher
	ConfigPath string
	// GameOverHold keeps the final frame on screen after a crash.
	GameOverHold time.Duration
}

// Run drives sess at FrameInterval until it ends or ctx is cancelled. It
// returns nil for quit and game over, and ctx.Err() on cancellation.
func Run(ctx context.Context, sess *session.Session, screen *Screen, opts RunOptions) error {
	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		sess.Watch(opts.Watcher, opts.ConfigPath)
		err := sess.Step()

		screen.Status(statusLine(sess, err))
		sess.Draw(screen)

		switch {
		case err == nil:
			continue
		case errors.Is(err, session.ErrQuit):
			return nil
		case errors.Is(err, session.ErrGameOver):
			hold(ctx, opts.GameOverHold)
			return nil
		default:
			return err
		}
	}
}

func statusLine(sess *session.Session, err error) string {
	var over *session.GameOverError
	switch {
	case errors.As(err, &over):
		return fmt.Sprintf(" GAME OVER (%s)  Eaten: %d", over.Cause, over.Eaten)
	case sess.Paused():
		return fmt.Sprintf(" Eaten: %d  [paused]  p resume  q quit", sess.Eaten())
	default:
		return fmt.Sprintf(" Eaten: %d  arrows/wasd steer  p pause  q quit", sess.Eaten())
	}
}

func hold(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
