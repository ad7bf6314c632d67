// ABOUTME: Route guard deciding whether protected views may render
// ABOUTME: Resolves the session once on mount and maps session state to a decision

package guard

import (
	"context"
	"log/slog"
	"sync"
)

// State is the guard's view of the session
type State int

const (
	// Resolving means the session check has not settled yet
	Resolving State = iota
	Unauthenticated
	Authenticated
)

func (s State) String() string {
	switch s {
	case Resolving:
		return "resolving"
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Decision is what the caller should do with the protected content
type Decision int

const (
	// Wait renders a neutral loading view, never the protected content
	Wait Decision = iota
	Redirect
	Render
)

func (d Decision) String() string {
	switch d {
	case Wait:
		return "wait"
	case Redirect:
		return "redirect"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

// Session is the part of the session store the guard reads
type Session interface {
	CheckAuth(ctx context.Context)
	HasCredential() bool
	Authenticated() bool
}

// Guard gates protected views on a resolved session
type Guard struct {
	session Session
	logger  *slog.Logger

	mu        sync.Mutex
	resolving int
	mounted   bool
	last      State
	onChange  func(State)
}

// New returns a guard in the Resolving state
func New(session Session, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{session: session, logger: logger, last: Resolving}
}

// OnChange registers fn to be called after each state transition
func (g *Guard) OnChange(fn func(State)) {
	g.mu.Lock()
	g.onChange = fn
	g.mu.Unlock()
}

// Mount runs the session check. While it runs with a credential but no
// identity the guard stays Resolving.
func (g *Guard) Mount(ctx context.Context) State {
	g.mu.Lock()
	g.resolving++
	g.mounted = true
	g.mu.Unlock()

	g.session.CheckAuth(ctx)

	g.mu.Lock()
	g.resolving--
	g.mu.Unlock()

	return g.State()
}

// State derives the current state from the session.
// A present identity is always Authenticated. Otherwise the guard is
// Resolving before Mount and while a check runs with a credential present.
func (g *Guard) State() State {
	g.mu.Lock()
	var st State
	switch {
	case g.session.HasCredential() && g.session.Authenticated():
		st = Authenticated
	case !g.mounted, g.resolving > 0 && g.session.HasCredential():
		st = Resolving
	default:
		st = Unauthenticated
	}

	prev := g.last
	g.last = st
	fn := g.onChange
	g.mu.Unlock()

	if prev != st {
		g.logger.Debug("Guard state changed", "from", prev, "to", st)
		if fn != nil {
			fn(st)
		}
	}
	return st
}

// Decide maps the current state to what the caller should show
func (g *Guard) Decide() Decision {
	switch g.State() {
	case Authenticated:
		return Render
	case Unauthenticated:
		return Redirect
	default:
		return Wait
	}
}
