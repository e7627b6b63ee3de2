// components/home/home.go
//
// Home component: the public landing page at “/”.
//
//------------------------------------------------------------------------------

package home

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/atrium/internal/component"
	"github.com/yanizio/atrium/internal/head"
	"github.com/yanizio/atrium/internal/user"
	"github.com/yanizio/atrium/internal/view"
)

func init() { component.Register(&Home{}) }

// Home implements component.Component.
type Home struct {
	ctx *component.Context
}

func (h *Home) Name() string { return "home" }

func (h *Home) Routes(ctx *component.Context) chi.Router {
	h.ctx = ctx

	r := chi.NewRouter()
	r.Get("/", h.index)
	return r
}

type pageData struct {
	Head *head.Builder
	User *user.User
}

// index renders for everyone.  Signed-in visitors get a link to the
// dashboard instead of the sign-in prompt; nobody is redirected.
func (h *Home) index(w http.ResponseWriter, r *http.Request) {
	ctrl := h.ctx.Sessions.Controller(w, r)
	view.Render(w, "home", "index", pageData{
		Head: view.DefaultHead("Welcome"),
		User: ctrl.CurrentUser(),
	}, view.CacheDefault)
}
