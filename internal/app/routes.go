package app

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/doctrkr-backend/internal/config"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"github.com/heartmarshall/doctrkr-backend/internal/transport/middleware"
	"github.com/heartmarshall/doctrkr-backend/internal/transport/rest"
)

var (
	rolesEditors   = []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleReceiving, domain.RoleStaff}
	rolesLegs      = []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleReceiving, domain.RoleStaff, domain.RoleRecipient}
	rolesLCE       = []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleReceiving, domain.RoleLCE, domain.RoleLCEStaff}
	rolesAdmins    = []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin}
	rolesAuditors  = []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleMonitor}
	rolesAnalytics = []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleMonitor, domain.RoleViewer, domain.RoleReceiving}
)

// handlers groups everything mounted on the router.
type handlers struct {
	health    *rest.HealthHandler
	auth      *rest.AuthHandler
	tracker   *rest.TrackerHandler
	routing   *rest.RoutingHandler
	recipient *rest.RecipientHandler
	user      *rest.UserHandler
	activity  *rest.ActivityHandler
	analytics *rest.AnalyticsHandler
	public    *rest.PublicHandler
	push      *rest.PushHandler
	ws        http.Handler
	// uploads is nil unless attachments live on local disk.
	uploads http.Handler
}

// router registers API routes under a common prefix.
type router struct {
	mux    *http.ServeMux
	prefix string
	auth   middleware.Middleware
}

// open mounts a route that needs no token.
func (rt *router) open(method, path string, h http.HandlerFunc, mws ...middleware.Middleware) {
	rt.mux.Handle(method+" "+rt.prefix+path, middleware.Chain(mws...)(h))
}

// authed mounts a route for authenticated users. With roles, any other role
// gets 403 before h runs.
func (rt *router) authed(method, path string, h http.HandlerFunc, roles ...domain.Role) {
	mws := []middleware.Middleware{rt.auth}
	if len(roles) > 0 {
		mws = append(mws, middleware.RequireRoles(roles...))
	}
	rt.open(method, path, h, mws...)
}

// newRouter builds the route table. The returned mux is meant to be wrapped
// by middleware.Metrics directly.
func newRouter(cfg *config.Config, h handlers, auth middleware.Middleware, rl *middleware.RateLimiter) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.health.Live)
	mux.HandleFunc("GET /ready", h.health.Ready)
	mux.HandleFunc("GET /health", h.health.Health)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /ws", h.ws)
	if h.uploads != nil {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", h.uploads))
	}

	rt := &router{mux: mux, prefix: cfg.Server.APIPrefix, auth: auth}
	authLimit := rl.Limit(cfg.RateLimit.AuthPerMinute)
	publicLimit := rl.Limit(cfg.Public.RatePerMinute)

	// Auth
	rt.open("POST", "/auth/login", h.auth.Login, authLimit)
	if cfg.Auth.RegistrationEnabled() {
		rt.open("POST", "/auth/register", h.auth.Register, authLimit)
	}
	rt.authed("GET", "/auth/me", h.auth.Me)
	rt.authed("PUT", "/auth/password", h.auth.ChangePassword)

	// Trackers
	rt.authed("GET", "/trackers", h.tracker.List)
	rt.authed("GET", "/trackers/{id}", h.tracker.Get)
	rt.authed("GET", "/trackers/{id}/attachment", h.tracker.Attachment)
	rt.authed("GET", "/trackers/{id}/reply-slip", h.tracker.ReplySlip)
	rt.authed("POST", "/trackers", h.tracker.Create, rolesEditors...)
	rt.authed("PUT", "/trackers/{id}", h.tracker.Update, rolesEditors...)
	rt.authed("PATCH", "/trackers/{id}/archive", h.tracker.Archive, rolesEditors...)
	rt.authed("POST", "/trackers/{id}/recipients", h.tracker.AssignRecipients, rolesEditors...)
	rt.authed("PATCH", "/trackers/{id}/lce", h.tracker.UpdateLCE, rolesLCE...)
	rt.authed("DELETE", "/trackers/{id}", h.tracker.Delete, rolesAdmins...)
	rt.authed("DELETE", "/trackers/{id}/recipients/{recipientId}", h.tracker.RemoveRecipient, rolesAdmins...)

	// Routing legs
	rt.authed("PATCH", "/trackers/{id}/recipients/status", h.routing.BulkStatus, rolesEditors...)
	rt.authed("POST", "/trackers/{trackerId}/recipients/{recipientId}/action", h.routing.RecordAction, rolesLegs...)
	rt.authed("PATCH", "/tracker-recipients/{id}/status", h.routing.UpdateLeg, rolesLegs...)

	// Recipient inbox
	const inbox = "/recipient-trackers/recipients/{recipientId}/trackers"
	rt.authed("GET", inbox, h.routing.Inbox)
	rt.authed("GET", inbox+"/all", h.routing.InboxAll)
	rt.authed("GET", inbox+"/{trackerId}", h.routing.InboxItem)
	rt.authed("PUT", inbox+"/{trackerId}", h.routing.UpdateByPair, rolesLegs...)

	// Recipients
	rt.authed("GET", "/recipients", h.recipient.List)
	rt.authed("GET", "/recipients/all", h.recipient.ListAll)
	rt.authed("GET", "/recipients/{id}", h.recipient.Get)
	rt.authed("POST", "/recipients", h.recipient.Create, rolesAdmins...)
	rt.authed("PUT", "/recipients/{id}", h.recipient.Update, rolesAdmins...)
	rt.authed("DELETE", "/recipients/{id}", h.recipient.Delete, rolesAdmins...)

	// Users
	rt.authed("GET", "/users", h.user.List, rolesAdmins...)
	rt.authed("GET", "/users/{id}", h.user.Get, rolesAdmins...)
	rt.authed("POST", "/users", h.user.Create, rolesAdmins...)
	rt.authed("PUT", "/users/{id}", h.user.Update, rolesAdmins...)
	rt.authed("DELETE", "/users/{id}", h.user.Delete, rolesAdmins...)

	// Activity logs
	rt.authed("GET", "/activity-logs", h.activity.List, rolesAuditors...)
	rt.authed("GET", "/activity-logs/summary/statistics", h.activity.Summary, rolesAuditors...)
	rt.authed("GET", "/activity-logs/entity/{entityType}/{entityId}", h.activity.ByEntity, rolesAuditors...)
	rt.authed("GET", "/activity-logs/user/{userId}", h.activity.ByUser, rolesAuditors...)
	rt.authed("GET", "/activity-logs/{id}", h.activity.Get, rolesAuditors...)
	rt.authed("DELETE", "/activity-logs/cleanup/old", h.activity.Cleanup, rolesAdmins...)

	// Analytics
	rt.authed("GET", "/analytics/system-stats", h.analytics.SystemStats, rolesAnalytics...)
	rt.authed("GET", "/analytics/recipients/{id}/summary", h.analytics.RecipientSummary, rolesAnalytics...)

	// Public routing slip
	rt.open("GET", "/public/trackers/{serialNumber}/routing-slip", h.public.RoutingSlip, publicLimit)
	rt.open("GET", "/public/trackers/{serialNumber}/routing-slip.pdf", h.public.RoutingSlipPDF, publicLimit)

	// Push
	rt.open("GET", "/push/vapid-key", h.push.VAPIDKey)
	rt.authed("POST", "/push/subscribe", h.push.Subscribe)
	rt.authed("POST", "/push/unsubscribe", h.push.Unsubscribe)
	rt.authed("POST", "/push/test", h.push.Test)

	return mux
}

// newHandler wraps the router with the global middleware chain.
func newHandler(cfg *config.Config, mux *http.ServeMux, logger *slog.Logger) http.Handler {
	return middleware.Chain(
		middleware.RequestID(),
		middleware.ClientInfo,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	)(middleware.Metrics(mux))
}
