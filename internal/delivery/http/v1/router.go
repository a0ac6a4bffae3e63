package v1

import (
	"net/http"

	"go-talent-marketplace/config"
	"go-talent-marketplace/internal/delivery/http/middleware"
	"go-talent-marketplace/internal/delivery/http/response"
	"go-talent-marketplace/internal/domain"
	"go-talent-marketplace/internal/realtime"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	MessageUC   domain.MessageUsecase
	InterviewUC domain.InterviewRequestUsecase
	Dispatcher  *realtime.Dispatcher
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold,
		deps.Config.RateLimitWindow,
	)))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config.JWTSecret))
	{
		NewMessageHandler(protected, deps.MessageUC)
		NewInterviewHandler(protected, deps.InterviewUC)
		NewChatHandler(protected, deps.MessageUC, deps.Dispatcher)
	}

	return r
}
