package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/vladimiradmaev/lunchlego/internal/config"
	"github.com/vladimiradmaev/lunchlego/internal/domain"
	apperrors "github.com/vladimiradmaev/lunchlego/internal/errors"
	"github.com/vladimiradmaev/lunchlego/internal/logger"
	"github.com/vladimiradmaev/lunchlego/internal/realtime"
	"github.com/vladimiradmaev/lunchlego/internal/state"
)

// Services are the operations exposed over HTTP
type Services struct {
	Kids       domain.KidService
	Pantry     domain.PantryService
	Planner    domain.PlannerService
	Snapshots  domain.SnapshotService
	Settings   domain.SettingsService
	Expiration domain.ExpirationService
	Estimator  domain.NutritionEstimator
	Sessions   state.StateManager
	Hub        *realtime.Hub
}

type Server struct {
	svc    Services
	errors *apperrors.Handler
}

// NewRouter registers every route on a fresh gin engine
func NewRouter(svc Services) *gin.Engine {
	s := &Server{
		svc:    svc,
		errors: apperrors.NewHandler(logger.WithComponent("api")),
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", s.health)
	if svc.Hub != nil {
		r.GET("/ws", svc.Hub.ServeWS)
	}

	api := r.Group("/api")
	{
		api.GET("/kids", s.listKids)
		api.POST("/kids", s.createKid)
		api.PUT("/kids/:id", s.updateKid)
		api.DELETE("/kids/:id", s.deleteKid)

		api.GET("/ingredients", s.listIngredients)
		api.POST("/ingredients", s.createIngredient)
		api.PUT("/ingredients/:id", s.updateIngredient)
		api.DELETE("/ingredients/:id", s.deleteIngredient)
		api.POST("/ingredients/estimate", s.estimateNutrition)
		api.GET("/ingredients/expiring", s.expiring)

		api.GET("/lunchboxes", s.listLunchBoxes)
		api.DELETE("/lunchboxes/:id", s.deleteLunchBox)
		api.GET("/kids/:id/lunchboxes/:date", s.getLunchBox)
		api.POST("/kids/:id/lunchboxes/:date/drop", s.drop)
		api.PUT("/kids/:id/lunchboxes/:date/notes", s.setNotes)
		api.PATCH("/kids/:id/lunchboxes/:date/compartments/:compartment/:ingredientId", s.setQuantity)
		api.DELETE("/kids/:id/lunchboxes/:date/compartments/:compartment/:ingredientId", s.removeItem)
		api.POST("/nutrition/evaluate", s.evaluate)

		api.GET("/settings", s.listSettings)
		api.GET("/settings/:key", s.getSetting)
		api.PUT("/settings/:key", s.putSetting)
		api.GET("/sessions/:id", s.getSession)
		api.PUT("/sessions/:id", s.putSession)
		api.DELETE("/sessions/:id", s.deleteSession)

		api.GET("/export", s.exportSnapshot)
		api.POST("/import", s.importSnapshot)
	}

	return r
}

// NewHandler wraps the router with CORS for the configured origins
func NewHandler(cfg config.ServerConfig, router http.Handler) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Content-Disposition"},
	})
	return c.Handler(router)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// fail logs err and writes it as {"error", "code"}
func (s *Server) fail(c *gin.Context, err error) {
	s.errors.Handle(c.Request.Context(), err)

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.ErrInternalServer
	}
	c.AbortWithStatusJSON(apperrors.HTTPStatus(appErr), gin.H{
		"error": appErr.Message,
		"code":  appErr.Code,
	})
}

func (s *Server) badRequest(c *gin.Context, err error) {
	s.fail(c, apperrors.NewValidationError(err.Error()))
}
