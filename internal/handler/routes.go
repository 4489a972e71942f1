package handler

import (
	appmw "go-feedback-app/internal/middleware"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Public    *PublicHandler
	Admin     *AdminHandler
	Changelog *ChangelogHandler
	Settings  *SettingsHandler
	Auth      *AuthHandler

	Session func(http.Handler) http.Handler
	Authz   func(http.Handler) http.Handler
	Error   func(appmw.AppHandler) http.Handler

	// UploadDir serves stored changelog images; empty disables the route.
	UploadDir string

	// OIDCEnabled registers the provider login routes.
	OIDCEnabled bool
}

// NewRouter creates and configures a new chi router.
func NewRouter(d RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Sessions are loaded for every route; the authorizer resolves the
	// session user and enforces the path policy.
	r.Use(d.Session)
	r.Use(d.Authz)

	wrap := d.Error

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/feedback", http.StatusFound)
	})

	// Public board
	r.Method(http.MethodGet, "/feedback", wrap(d.Public.feedbackIndex))
	r.Method(http.MethodPost, "/feedback", wrap(d.Public.feedbackStore))
	r.Method(http.MethodGet, "/feedback/{slug}", wrap(d.Public.feedbackShow))
	r.Method(http.MethodPost, "/feedback/{id}/upvote", wrap(d.Public.upvote))
	r.Method(http.MethodPost, "/feedback/{id}/comment", wrap(d.Public.commentStore))
	r.Method(http.MethodGet, "/roadmap", wrap(d.Public.roadmap))
	r.Method(http.MethodGet, "/changelog", wrap(d.Public.changelogIndex))
	r.Method(http.MethodGet, "/changelog/{slug}", wrap(d.Public.changelogShow))

	// Authentication
	r.Method(http.MethodPost, "/auth/register", wrap(d.Auth.register))
	r.Method(http.MethodPost, "/auth/login", wrap(d.Auth.login))
	r.Method(http.MethodPost, "/auth/logout", wrap(d.Auth.logout))
	if d.OIDCEnabled {
		r.Get("/auth/login", d.Auth.handleOIDCLogin)
		r.Get("/auth/callback", d.Auth.handleOIDCCallback)
	}

	// Admin surface; the authorizer only lets the admin role through.
	r.Route("/admin", func(r chi.Router) {
		r.Method(http.MethodGet, "/", wrap(d.Admin.dashboard(false)))
		r.Method(http.MethodGet, "/unread", wrap(d.Admin.dashboard(true)))
		r.Method(http.MethodGet, "/board/{slug}", wrap(d.Admin.dashboard(false)))

		r.Method(http.MethodGet, "/feedback/{slug}", wrap(d.Admin.feedbackShow))
		r.Method(http.MethodPatch, "/feedback/{id}", wrap(d.Admin.feedbackUpdate))
		r.Method(http.MethodDelete, "/feedback/{id}", wrap(d.Admin.feedbackDestroy))
		r.Method(http.MethodPost, "/feedback/{id}/read", wrap(d.Admin.markRead))
		r.Method(http.MethodPost, "/feedback/{id}/upvote", wrap(d.Admin.upvote))
		r.Method(http.MethodPost, "/feedback/{id}/comment", wrap(d.Admin.commentStore))
		r.Method(http.MethodPatch, "/feedback/{id}/comment/{commentID}/pin", wrap(d.Admin.commentPin))
		r.Method(http.MethodDelete, "/feedback/{id}/comment/{commentID}", wrap(d.Admin.commentDestroy))

		r.Method(http.MethodGet, "/roadmap", wrap(d.Admin.roadmap))
		r.Method(http.MethodPatch, "/roadmap/status/{id}", wrap(d.Admin.roadmapVisibility))

		r.Method(http.MethodGet, "/changelog", wrap(d.Changelog.index))
		r.Method(http.MethodGet, "/changelog/create", wrap(d.Changelog.create))
		r.Method(http.MethodPost, "/changelog", wrap(d.Changelog.store))
		r.Method(http.MethodGet, "/changelog/{slug}", wrap(d.Changelog.show))
		r.Method(http.MethodGet, "/changelog/{slug}/edit", wrap(d.Changelog.edit))
		r.Method(http.MethodPost, "/changelog/{id}", wrap(d.Changelog.update))
		r.Method(http.MethodDelete, "/changelog/{id}", wrap(d.Changelog.destroy))

		r.Method(http.MethodGet, "/settings", wrap(d.Settings.index))
		r.Method(http.MethodPost, "/settings/boards", wrap(d.Settings.boardStore))
		r.Method(http.MethodPatch, "/settings/boards/{id}", wrap(d.Settings.boardUpdate))
		r.Method(http.MethodDelete, "/settings/boards/{id}", wrap(d.Settings.boardDestroy))
		r.Method(http.MethodPost, "/settings/statuses", wrap(d.Settings.statusStore))
		r.Method(http.MethodPatch, "/settings/statuses/{id}", wrap(d.Settings.statusUpdate))
		r.Method(http.MethodDelete, "/settings/statuses/{id}", wrap(d.Settings.statusDestroy))
	})

	// Stored changelog images.
	if d.UploadDir != "" {
		fs := http.StripPrefix("/uploads/changelogs/", http.FileServer(http.Dir(d.UploadDir)))
		r.Get("/uploads/changelogs/*", fs.ServeHTTP)
	}

	return r
}
