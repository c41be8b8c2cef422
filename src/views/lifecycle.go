package views

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// lifecycle tracks the active activation of a view. mu also guards the
// state of the embedding view.
type lifecycle struct {
	mu     sync.Mutex
	token  string
	cancel context.CancelFunc
}

// start revokes any previous activation and opens a new one.
func (l *lifecycle) start(parent context.Context) (context.Context, string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	l.token = uuid.NewString()
	l.cancel = cancel
	return ctx, l.token
}

func (l *lifecycle) stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
	l.token = ""
	l.cancel = nil
}

// guarded runs fn with mu held, only if token is still the live activation.
func (l *lifecycle) guarded(token string, fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if token == "" || l.token != token {
		return false
	}
	fn()
	return true
}

func (l *lifecycle) Active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.token != ""
}
