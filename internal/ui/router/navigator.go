package router

import (
	"context"
	"sync"
)

// Navigator tracks the current location and history for one client.
type Navigator struct {
	guard *Guard

	mu      sync.Mutex
	current Resolution
	history []string
	from    string
}

func NewNavigator(guard *Guard) *Navigator {
	return &Navigator{guard: guard}
}

// Navigate resolves path through the guard and records where the user lands.
func (n *Navigator) Navigate(ctx context.Context, path string) Resolution {
	res := n.guard.Resolve(ctx, path)
	n.mu.Lock()
	defer n.mu.Unlock()
	if res.Redirected() {
		n.from = res.From
	} else if res.Route.Name != RouteLogin && res.Route.Name != RouteRegister {
		n.from = ""
	}
	if n.current.Path != "" && n.current.Path != res.Path {
		n.history = append(n.history, n.current.Path)
	}
	n.current = res
	return res
}

// Back returns to the previous location, re-checking the guard.
func (n *Navigator) Back(ctx context.Context) (Resolution, bool) {
	n.mu.Lock()
	if len(n.history) == 0 {
		n.mu.Unlock()
		return Resolution{}, false
	}
	prev := n.history[len(n.history)-1]
	n.history = n.history[:len(n.history)-1]
	n.current = Resolution{}
	n.mu.Unlock()
	return n.Navigate(ctx, prev), true
}

// Refresh re-evaluates the current location, e.g. after the token changed
// behind our back.
func (n *Navigator) Refresh(ctx context.Context) Resolution {
	n.mu.Lock()
	path := n.current.Path
	if n.current.Redirected() {
		path = n.current.From
	}
	n.mu.Unlock()
	if path == "" {
		path = PathHome
	}
	res := n.guard.Resolve(ctx, path)
	n.mu.Lock()
	defer n.mu.Unlock()
	if res.Redirected() {
		n.from = res.From
	}
	n.current = res
	return res
}

// State reports whether a credential is stored right now.
func (n *Navigator) State(ctx context.Context) State {
	return n.guard.State(ctx)
}

func (n *Navigator) Current() Resolution {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *Navigator) History() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.history))
	copy(out, n.history)
	return out
}

// LoginRedirectTarget is where a successful login should go.
func (n *Navigator) LoginRedirectTarget() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.from != "" {
		return n.from
	}
	return PathPlans
}
