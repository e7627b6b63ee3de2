// components/auth/auth.go
//
// Auth component: login, registration, and logout pages.
//
// Context
//   Login posts credentials to the session controller, which talks to
//   the remote Auth API and persists the token and user on success.
//   Registration validates locally and hands off to the login page;
//   account creation is not yet wired to a backend.  Logout clears the
//   session and returns the visitor to the login page.
//
//------------------------------------------------------------------------------

package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/atrium/internal/component"
	"github.com/yanizio/atrium/internal/form"
	"github.com/yanizio/atrium/internal/guard"
	"github.com/yanizio/atrium/internal/head"
	"github.com/yanizio/atrium/internal/session"
	"github.com/yanizio/atrium/internal/view"
)

// defaultAfterLogin is where a successful login lands when no explicit
// destination was requested.
const defaultAfterLogin = "/dashboard"

func init() { component.Register(&Auth{}) }

// Auth implements component.Component.
type Auth struct {
	ctx *component.Context
}

func (a *Auth) Name() string { return "auth" }

// Routes builds the /auth subtree.  The login POST sits behind the
// per-IP limiter so credential stuffing cannot hammer the Auth API.
func (a *Auth) Routes(ctx *component.Context) chi.Router {
	a.ctx = ctx

	r := chi.NewRouter()
	r.Get("/login", a.loginPage)
	r.With(ctx.LoginLimiter.Handler).Post("/login", a.loginSubmit)
	r.Get("/register", a.registerPage)
	r.Post("/register", a.registerSubmit)
	r.Post("/logout", a.logout)
	return r
}

// pageData is the template payload shared by the auth pages.
type pageData struct {
	Head       *head.Builder
	Form       *form.View
	From       string
	Registered bool
}

/*──────────────────────────── login ────────────────────────────*/

func (a *Auth) loginPage(w http.ResponseWriter, r *http.Request) {
	fv, err := form.NewView("auth/login")
	if err != nil {
		zap.L().Error("login form unavailable", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	view.Render(w, "auth", "login", pageData{
		Head:       view.DefaultHead("Sign In"),
		Form:       fv,
		From:       safeFrom(r.URL.Query().Get("from")),
		Registered: r.URL.Query().Get("registered") == "1",
	}, view.CacheDefault)
}

func (a *Auth) loginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	res, err := form.Validate("auth/login", r.PostForm)
	if err != nil {
		zap.L().Error("login form unavailable", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	from := safeFrom(r.PostForm.Get("from"))
	if !res.Valid() {
		a.rerenderLogin(w, res, from, "")
		return
	}

	ctrl := a.ctx.Sessions.Controller(w, r)
	u := ctrl.Login(r.Context(), session.Credentials{
		Email:    res.Values["email"],
		Password: res.Values["password"],
	})
	if u == nil {
		// One general message for every failure mode.  Field-level
		// detail would tell an attacker which half was wrong.
		a.rerenderLogin(w, res, from, "Invalid email or password")
		return
	}

	dest := from
	if dest == "" {
		dest = defaultAfterLogin
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// rerenderLogin paints the login page again with sticky values and an
// optional form-level error.
func (a *Auth) rerenderLogin(w http.ResponseWriter, res *form.Result, from, formErr string) {
	fv, err := form.NewView("auth/login")
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	fv.WithResult(res)
	delete(fv.Values, "password") // never echo a password back.
	if formErr != "" {
		fv.SetFormError(formErr)
	}
	view.Render(w, "auth", "login", pageData{
		Head: view.DefaultHead("Sign In"),
		Form: fv,
		From: from,
	}, view.CacheDefault)
}

/*─────────────────────────── register ──────────────────────────*/

func (a *Auth) registerPage(w http.ResponseWriter, r *http.Request) {
	fv, err := form.NewView("auth/register")
	if err != nil {
		zap.L().Error("register form unavailable", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	view.Render(w, "auth", "register", pageData{
		Head: view.DefaultHead("Create Account"),
		Form: fv,
	}, view.CacheDefault)
}

func (a *Auth) registerSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	res, err := form.Validate("auth/register", r.PostForm)
	if err != nil {
		zap.L().Error("register form unavailable", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !res.Valid() {
		fv, err := form.NewView("auth/register")
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		fv.WithResult(res)
		delete(fv.Values, "password")
		delete(fv.Values, "confirmPassword")
		view.Render(w, "auth", "register", pageData{
			Head: view.DefaultHead("Create Account"),
			Form: fv,
		}, view.CacheDefault)
		return
	}

	// Account creation is not wired to the Auth API yet.  Validated
	// submissions land on the login page with a confirmation banner.
	http.Redirect(w, r, guard.LoginPath+"?registered=1", http.StatusSeeOther)
}

/*──────────────────────────── logout ───────────────────────────*/

func (a *Auth) logout(w http.ResponseWriter, r *http.Request) {
	a.ctx.Sessions.Controller(w, r).Logout()
	http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
}

/*──────────────────────────── helpers ──────────────────────────*/

// safeFrom returns the requested post-login destination only when it is
// a local absolute path.  Anything else (external URLs, protocol-
// relative “//host” tricks, garbage) is discarded.
func safeFrom(raw string) string {
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return ""
	}
	if u, err := url.Parse(raw); err != nil || u.Host != "" || u.Scheme != "" {
		return ""
	}
	return raw
}
