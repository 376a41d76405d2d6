package routes

import (
	"net/http"

	"pitchpro/auth"
	"pitchpro/dashboard"
	"pitchpro/middleware"
	"pitchpro/organizations"
	"pitchpro/pitches"
	"pitchpro/ratelim"
	"pitchpro/reports"
	"pitchpro/search"
	"pitchpro/sessions"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/pitchpic/*filepath", http.Dir("static/pitchpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rl.Limit(middleware.Authenticate(auth.RefreshToken)))
	router.POST("/api/auth/password-reset", rl.Limit(auth.RequestPasswordReset))
}

func AddOrganizationRoutes(router *httprouter.Router) {
	router.GET("/api/organizations", middleware.Authenticate(organizations.ListMyOrganizations))
	router.GET("/api/organizations/:orgid", middleware.Authenticate(organizations.GetOrganization))
	router.GET("/api/organizations/:orgid/pitches", middleware.Authenticate(organizations.ListPitches))
}

func AddPitchRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/organizations/:orgid/pitches", rl.Limit(middleware.Authenticate(pitches.CreatePitch)))
	router.PUT("/api/pitches/:id", middleware.Authenticate(pitches.UpdatePitch))
	router.DELETE("/api/pitches/:id", middleware.Authenticate(pitches.DeletePitch))
	router.POST("/api/pitches/:id/photo", rl.Limit(middleware.Authenticate(pitches.UploadPitchPhoto)))
}

func AddDashboardRoutes(router *httprouter.Router) {
	router.POST("/api/dashboard/:orgid/select", middleware.Authenticate(dashboard.SelectOrganization))
	router.GET("/api/dashboard/:orgid/snapshot", middleware.Authenticate(dashboard.GetSnapshot))
	router.GET("/api/dashboard/:orgid/kpis", middleware.Authenticate(dashboard.GetKPIs))
	router.GET("/api/dashboard/:orgid/chart", middleware.Authenticate(dashboard.GetChartSeries))
	router.GET("/ws/dashboard/:orgid", middleware.Authenticate(dashboard.HandleWS))
}

func AddSessionRoutes(router *httprouter.Router) {
	router.GET("/api/organizations/:orgid/calendar", middleware.Authenticate(sessions.GetWeekCalendar))
	router.GET("/api/organizations/:orgid/sessions", middleware.Authenticate(sessions.ListSessions))
	router.GET("/api/sessions/:id", middleware.Authenticate(sessions.GetSessionDetail))
	router.GET("/api/sessions/:id/qr", middleware.Authenticate(sessions.GetSessionQR))
}

func AddSearchRoutes(router *httprouter.Router, h *search.Handlers) {
	router.GET("/api/organizations/:orgid/search/sessions", middleware.Authenticate(h.SearchSessions))
	router.GET("/api/organizations/:orgid/search/groups", middleware.Authenticate(h.SearchGroups))
	router.GET("/api/organizations/:orgid/search/transactions", middleware.Authenticate(h.SearchTransactions))
}

func AddReportRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/organizations/:orgid/reports/finance", rl.Limit(middleware.Authenticate(reports.FinanceSummaryPDF)))
}
