// internal/component/registry.go
//
// Component registry.
//
// Context
//   A component is a self-contained page feature: it owns its routes,
//   templates, and form definitions under “components/<name>/”.
//   Components register themselves from an init function in their own
//   package, and the web entrypoint mounts every registered component
//   onto the router at boot.
//
//------------------------------------------------------------------------------

package component

import (
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/atrium/internal/activity"
	"github.com/yanizio/atrium/internal/config"
	"github.com/yanizio/atrium/internal/guard"
	"github.com/yanizio/atrium/internal/middleware"
	"github.com/yanizio/atrium/internal/session"
)

// Context carries the shared services a component may need when
// building its routes.  Fields may be nil when the corresponding
// feature is not configured (Activity in particular).
type Context struct {
	Config       *config.Config
	Sessions     *session.Manager
	Verifier     *guard.Verifier
	Activity     *activity.Repository
	LoginLimiter *middleware.RateLimiter
}

// Component is implemented by every page feature.
type Component interface {
	// Name returns the component's mount name, e.g. “auth”.
	Name() string

	// Routes builds the component's router.  Called once at boot.
	Routes(ctx *Context) chi.Router
}

var (
	regMu    sync.RWMutex
	registry = map[string]Component{}
)

// Register adds a component.  Typically called from the component's
// init function.  Registering the same name twice panics: that is a
// programmer error we want at startup, not in production.
func Register(c Component) {
	regMu.Lock()
	defer regMu.Unlock()
	if _, dup := registry[c.Name()]; dup {
		panic("component: duplicate registration of " + c.Name())
	}
	registry[c.Name()] = c
}

// All returns every registered component in stable name order.
func All() []Component {
	regMu.RLock()
	defer regMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]Component, 0, len(names))
	for _, n := range names {
		out = append(out, registry[n])
	}
	return out
}
