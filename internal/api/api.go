package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/emuats/recipely/backend/config"
	"github.com/emuats/recipely/backend/internal/database"
	"github.com/emuats/recipely/backend/internal/middleware"
	"github.com/emuats/recipely/backend/internal/service"
)

// Options carries the external collaborators the API needs. Redis and S3
// are optional: without Redis recipe creation is not rate limited, and
// without S3 the image endpoints answer 503. HealthDB is the raw
// connection the health endpoint pings.
type Options struct {
	DB        *gorm.DB
	HealthDB  *database.DB
	Redis     *redis.Client
	S3        *config.S3Config
	JWTSecret string
	Email     service.IEmailService
}

// NewRouter builds the gin engine with middleware and all routes wired.
func NewRouter(opts Options) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	SetupAPI(router, opts)
	return router
}

// SetupAPI registers the health endpoints and every handler under /api/v1.
func SetupAPI(router *gin.Engine, opts Options) {
	NewHealthHandler(opts.HealthDB).RegisterRoutes(router)

	v1 := router.Group("/api/v1")

	authService := service.NewAuthService(opts.DB, opts.JWTSecret, opts.Email)
	recipeService := service.NewRecipeService(opts.DB)
	reviewService := service.NewReviewService(opts.DB)
	likeService := service.NewLikeService(opts.DB)
	savedService := service.NewSavedService(opts.DB)

	var imageService service.IImageService
	if opts.S3 != nil {
		imageService = service.NewImageService(opts.S3)
	}

	var limiter *middleware.RateLimiter
	if opts.Redis != nil {
		limiter = middleware.NewRecipeCreationRateLimiter(opts.Redis)
	}

	NewAuthHandler(authService, imageService).RegisterRoutes(v1)
	NewRecipeHandler(recipeService, authService, imageService, limiter).RegisterRoutes(v1)
	NewReviewHandler(reviewService, authService).RegisterRoutes(v1)
	NewLikeHandler(likeService, authService).RegisterRoutes(v1)
	NewSavedHandler(savedService, authService).RegisterRoutes(v1)
}
