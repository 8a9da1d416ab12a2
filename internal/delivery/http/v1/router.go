package v1

import (
	"net/http"
	"time"

	"go-recruitment-chatbot/config"
	"go-recruitment-chatbot/internal/delivery/http/middleware"
	"go-recruitment-chatbot/internal/delivery/http/response"
	"go-recruitment-chatbot/internal/domain"
	"go-recruitment-chatbot/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ChatUC   domain.ChatUsecase
	TenantUC domain.TenantUsecase
	AlertUC  domain.AlertUsecase
	Config   *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	// Global Middlewares
	r.Use(middleware.CORSMiddleware()) // CORS must be first!
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Chat webhook (public, throttled)
	chat := v1.Group("")
	chat.Use(middleware.RateLimitMiddleware(middleware.ChatRateLimitConfig(
		deps.Config.RateLimitChatThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	)))
	NewChatHandler(chat, deps.ChatUC)

	// Dashboard routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config))
	{
		NewTenantHandler(protected, deps.TenantUC)
		NewAlertHandler(protected, deps.AlertUC)
	}

	return r
}
