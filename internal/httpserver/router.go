package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Arvin-Samuel-A/EnviroHelp/internal/handler"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/service/auth"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authService *auth.Service,
	authHandler *handler.AuthHandler,
	volunteerHandler *handler.VolunteerHandler,
	campaignerHandler *handler.CampaignerHandler,
	dbPool *pgxpool.Pool,
	log *zap.Logger,
) *Router {
	r := gin.Default()
	r.Use(TraceMiddleware(), MetricsMiddleware())

	// Public
	r.POST("/login", authHandler.Login)
	r.POST("/create_account", authHandler.Register)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := dbPool.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Volunteer surface
	volunteer := r.Group("/volunteer")
	volunteer.Use(AuthMiddleware(authService), RequireVolunteer(authService, log))
	{
		volunteer.GET("/home", volunteerHandler.Home)
		volunteer.POST("/request/view/:campaign_id", volunteerHandler.CreateRequest)
		volunteer.GET("/request/view/:campaign_id", volunteerHandler.ViewRequest)
		volunteer.PATCH("/request/view/:campaign_id", volunteerHandler.UpdateRequest)
		volunteer.DELETE("/request/view/:campaign_id", volunteerHandler.DeleteRequest)
		volunteer.GET("/campaign/view/:campaign_id", volunteerHandler.ViewCampaign)
		volunteer.PATCH("/campaign/view/:campaign_id", volunteerHandler.UpdateProgress)
		volunteer.GET("/find/:search", volunteerHandler.FindCampaigns)
	}

	// Campaigner surface
	campaigner := r.Group("/campaigner")
	campaigner.Use(AuthMiddleware(authService), RequireCampaigner(authService, log))
	{
		campaigner.GET("/home", campaignerHandler.Home)
		campaigner.GET("/campaign", campaignerHandler.ListCampaigns)
		campaigner.POST("/campaign/view", campaignerHandler.CreateCampaign)
		campaigner.GET("/campaign/view/:campaign_id", campaignerHandler.ViewCampaign)
		campaigner.PATCH("/campaign/view/:campaign_id", campaignerHandler.UpdateCampaign)
		campaigner.DELETE("/campaign/view/:campaign_id", campaignerHandler.DeleteCampaign)
		campaigner.POST("/request/view/:campaign_id/:volunteer_id", campaignerHandler.CreateRequest)
		campaigner.GET("/request/view/:campaign_id/:volunteer_id", campaignerHandler.ViewRequest)
		campaigner.PATCH("/request/view/:campaign_id/:volunteer_id", campaignerHandler.UpdateRequest)
		campaigner.DELETE("/request/view/:campaign_id/:volunteer_id", campaignerHandler.DeleteRequest)
		campaigner.GET("/volunteer/view/:volunteer_id", campaignerHandler.ViewVolunteer)
		campaigner.GET("/volunteer/:search", campaignerHandler.SearchVolunteers)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
