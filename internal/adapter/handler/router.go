package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/meetingmind/internal/adapter/dto/common"
	httpmw "github.com/johnquangdev/meetingmind/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meetingmind/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	meetingHandler *Meeting
	teamHandler    *Team
	authMiddleware echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingHandler *Meeting, teamHandler *Team, authMiddleware echo.MiddlewareFunc) *Router {
	return &Router{
		cfg:            cfg,
		meetingHandler: meetingHandler,
		teamHandler:    teamHandler,
		authMiddleware: authMiddleware,
	}
}

// route is one method of a resource path
type route struct {
	method  string
	handler echo.HandlerFunc
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API documentation
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupMeetingRoutes(v1)
	rt.setupTeamRoutes(v1)
}

// setupMeetingRoutes configures meeting, action and upload routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	h := rt.meetingHandler

	rt.resource(g, "/meetings", route{http.MethodGet, h.ListMeetings})
	rt.resource(g, "/meetings/:meetingId", route{http.MethodGet, h.GetMeeting})
	rt.resource(g, "/meetings/:meetingId/actions/:actionId", route{http.MethodPut, h.UpdateAction})
	rt.resource(g, "/actions", route{http.MethodGet, h.ListActions})
	rt.resource(g, "/actions/analytics", route{http.MethodGet, h.DebtAnalytics})
	rt.resource(g, "/upload-url", route{http.MethodPost, h.CreateUploadURL})
}

// setupTeamRoutes configures team routes
func (rt *Router) setupTeamRoutes(g *echo.Group) {
	h := rt.teamHandler

	rt.resource(g, "/teams",
		route{http.MethodGet, h.ListTeams},
		route{http.MethodPost, h.CreateTeam},
	)
	rt.resource(g, "/teams/join", route{http.MethodPost, h.JoinTeam})
	rt.resource(g, "/teams/:teamId", route{http.MethodGet, h.GetTeam})
}

// resource registers the methods of one path behind CORS then auth, and
// an unauthenticated preflight route for the same path
func (rt *Router) resource(g *echo.Group, path string, routes ...route) {
	methods := make([]string, len(routes))
	for i, r := range routes {
		methods[i] = r.method
	}
	cors := httpmw.CORS(rt.cfg.Server.AllowedOrigin, methods...)

	for _, r := range routes {
		g.Add(r.method, path, r.handler, cors, rt.authMiddleware)
	}
	g.OPTIONS(path, preflight, cors)
}

// preflight is never reached; CORS answers OPTIONS itself
func preflight(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, common.HealthResponse{
		Status:      "ok",
		Environment: rt.cfg.Server.Environment,
		Store:       rt.cfg.Store.Backend,
	})
}
