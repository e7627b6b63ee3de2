// internal/view/render.go
//
// HTML template rendering.
//
// Context
//   Page templates live under “components/<comp>/templates/<name>.html”
//   and are wrapped in the shared layout at “templates/layout.html”.
//   Parsed sets are cached in an LRU keyed by “comp/name”; development
//   can bypass the cache per call with CacheSkip so template edits show
//   up without a restart.
//
//------------------------------------------------------------------------------

package view

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/yanizio/atrium/internal/cache"
)

// CachePolicy selects caching behavior for one Render call.
type CachePolicy int

const (
	// CacheDefault uses the process-wide parsed-template cache.
	CacheDefault CachePolicy = iota

	// CacheSkip re-parses from disk on every call.
	CacheSkip
)

var (
	root      string
	templates = cache.New(128)
)

// SetRoot records the application root directory.  Call once at boot,
// before any Render.
func SetRoot(dir string) { root = dir }

// funcMap holds helpers available to every template.
var funcMap = template.FuncMap{
	// dict builds a map from alternating key/value pairs, for passing
	// multiple values into a nested template.
	"dict": func(kv ...any) (map[string]any, error) {
		if len(kv)%2 != 0 {
			return nil, fmt.Errorf("dict: odd argument count")
		}
		m := make(map[string]any, len(kv)/2)
		for i := 0; i < len(kv); i += 2 {
			k, ok := kv[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
			}
			m[k] = kv[i+1]
		}
		return m, nil
	},
}

// Render executes the named page template inside the shared layout and
// writes the result.  On failure it logs and sends a plain 500; partial
// output is avoided by executing into the ResponseWriter only after
// parse succeeds.
func Render(w http.ResponseWriter, comp, name string, data any, policy CachePolicy) {
	set, err := lookup(comp, name, policy)
	if err != nil {
		zap.L().Error("template lookup failed",
			zap.String("component", comp),
			zap.String("template", name),
			zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := set.ExecuteTemplate(w, "layout", data); err != nil {
		zap.L().Error("template execute failed",
			zap.String("component", comp),
			zap.String("template", name),
			zap.Error(err))
	}
}

// lookup returns the parsed template set for comp/name, consulting the
// cache per policy.
func lookup(comp, name string, policy CachePolicy) (*template.Template, error) {
	key := comp + "/" + name
	if policy == CacheDefault {
		if v, ok := templates.Get(key); ok {
			return v.(*template.Template), nil
		}
	}

	layout := filepath.Join(root, "templates", "layout.html")
	page := filepath.Join(root, "components", comp, "templates", name+".html")

	set, err := template.New("layout").Funcs(funcMap).ParseFiles(layout, page)
	if err != nil {
		return nil, err
	}

	if policy == CacheDefault {
		templates.Add(key, set)
	}
	return set, nil
}
