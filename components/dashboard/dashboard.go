// components/dashboard/dashboard.go
//
// Dashboard component: the protected landing page.
//
// Context
//   Every route here runs behind the page guard.  The guard reuses the
//   verification the edge middleware already performed for this
//   navigation, so a normal page view costs zero extra Auth API calls.
//   The page shows the signed-in user's identity, role, permissions,
//   and (when an activity database is configured) their recent sign-in
//   history.
//
//------------------------------------------------------------------------------

package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/atrium/internal/acl"
	"github.com/yanizio/atrium/internal/activity"
	"github.com/yanizio/atrium/internal/component"
	"github.com/yanizio/atrium/internal/guard"
	"github.com/yanizio/atrium/internal/head"
	"github.com/yanizio/atrium/internal/user"
	"github.com/yanizio/atrium/internal/view"
)

// recentLimit caps the activity panel.
const recentLimit = 10

func init() { component.Register(&Dashboard{}) }

// Dashboard implements component.Component.
type Dashboard struct {
	ctx *component.Context
}

func (d *Dashboard) Name() string { return "dashboard" }

func (d *Dashboard) Routes(ctx *component.Context) chi.Router {
	d.ctx = ctx

	r := chi.NewRouter()
	r.Get("/", d.index)
	r.Route("/admin", func(r chi.Router) {
		r.Use(acl.RequirePermission("admin", "users.manage"))
		r.Get("/", d.admin)
	})
	return r
}

// pageData is the dashboard template payload.
type pageData struct {
	Head    *head.Builder
	User    *user.User
	Events  []activity.Event
	IsAdmin bool
}

func (d *Dashboard) index(w http.ResponseWriter, r *http.Request) {
	u, ok := guard.Require(w, r, d.ctx.Sessions.Controller(w, r))
	if !ok {
		return
	}

	var events []activity.Event
	if d.ctx.Activity != nil {
		var err error
		events, err = d.ctx.Activity.RecentForUser(r.Context(), u.ID, recentLimit)
		if err != nil {
			// The panel is decoration.  Render the page without it.
			zap.L().Warn("recent activity unavailable",
				zap.String("user_id", u.ID),
				zap.Error(err))
		}
	}

	view.Render(w, "dashboard", "index", pageData{
		Head:    view.DefaultHead("Dashboard"),
		User:    u,
		Events:  events,
		IsAdmin: acl.Allowed(u, "admin") || acl.Allowed(u, "users.manage"),
	}, view.CacheDefault)
}

// admin renders the user-management page.  The route sits behind both
// the page guard (identity) and the acl middleware (permission), so by
// the time we are here the visitor is a verified admin.
func (d *Dashboard) admin(w http.ResponseWriter, r *http.Request) {
	u, ok := guard.Require(w, r, d.ctx.Sessions.Controller(w, r))
	if !ok {
		return
	}

	view.Render(w, "dashboard", "admin", pageData{
		Head: view.DefaultHead("Administration"),
		User: u,
	}, view.CacheDefault)
}
