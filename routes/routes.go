package routes

import (
	"net/http"
	"strings"
	"time"

	"syncslot/config"
	"syncslot/database/repository"
	"syncslot/handlers"
	"syncslot/middleware"
	"syncslot/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// Deps are the pieces route registration needs besides the handlers.
type Deps struct {
	UserRepo  repository.UserRepository
	AuthCache *redis.Client
}

// RegisterUserRoutes registers user endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)

		// Protected routes (Require Authentication)
		api.Use(auth)
		api.GET("/me", hb.GetCurrentUserHandler)
		api.PATCH("/me", hb.UpdateCurrentUserHandler)
		api.DELETE("/revoke", hb.RevokeUserAuthTokenHandler)
	}
}

// RegisterEventRoutes registers event, availability and suggestion endpoints.
func RegisterEventRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	api := r.Group("/api/events")
	api.Use(auth)
	{
		api.POST("", hb.CreateEventHandler)
		api.GET("", hb.ListEventsHandler)
		api.GET("/:id", hb.GetEventHandler)
		api.DELETE("/:id", hb.CancelEventHandler)
		api.POST("/:id/join", hb.JoinEventHandler)
		api.POST("/:id/windows", hb.AddWindowHandler)
		api.DELETE("/:id/windows/:windowID", hb.RemoveWindowHandler)
		api.POST("/:id/finalize", hb.FinalizeEventHandler)

		api.GET("/:id/slots", hb.ListSlotsHandler)
		api.PUT("/:id/slots/preferred", hb.SubmitPreferredSlotsHandler)
		api.POST("/:id/slots/busy", hb.AddBusySlotsHandler)
		api.DELETE("/:id/slots/busy", hb.ClearBusySlotsHandler)

		api.GET("/:id/density", hb.DensityHandler)
		api.GET("/:id/overlap", hb.OverlapHandler)
		api.GET("/:id/calendar", hb.CalendarHandler)

		api.POST("/:id/suggestions", hb.SuggestHandler)
		api.POST("/:id/busy/google", hb.GoogleImportBusyHandler)
	}
}

// RegisterGoogleRoutes registers the Google Calendar OAuth endpoints.
func RegisterGoogleRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	api := r.Group("/api/google")
	api.Use(auth)
	{
		api.GET("/auth-url", hb.GoogleAuthURLHandler)
		api.POST("/callback", hb.GoogleCallbackHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm syncslot", "services": status})
	})
}

func corsOrigins() []string {
	raw := strings.TrimSpace(config.AppConfig.CORSOrigins)
	if raw == "" || raw == "*" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, deps Deps) {
	origins := corsOrigins()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: len(origins) > 1 || origins[0] != "*",
		MaxAge:           12 * time.Hour,
	}))

	auth := middleware.JWTAuthUserMiddleware(deps.UserRepo, deps.AuthCache)

	RegisterUserRoutes(r, hb, auth)
	RegisterEventRoutes(r, hb, auth)
	RegisterGoogleRoutes(r, hb, auth)
	RegisterHealthRoute(r)
}
