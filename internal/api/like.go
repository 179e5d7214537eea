package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/emuats/recipely/backend/internal/middleware"
	"github.com/emuats/recipely/backend/internal/service"
)

type LikeHandler struct {
	likeService *service.LikeService
	authService *service.AuthService
}

func NewLikeHandler(likeService *service.LikeService, authService *service.AuthService) *LikeHandler {
	return &LikeHandler{
		likeService: likeService,
		authService: authService,
	}
}

func (h *LikeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("/:id/like", middleware.AuthMiddleware(h.authService), h.ToggleLike)
		recipes.GET("/:id/likes", h.GetLikes)
	}
	users := router.Group("/users")
	{
		users.GET("/me/likes", middleware.AuthMiddleware(h.authService), h.ListLikedRecipes)
	}
}

// ToggleLike flips the caller's like on a recipe and returns the new state.
func (h *LikeHandler) ToggleLike(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	liked, count, err := h.likeService.ToggleLike(c.Request.Context(), userID, recipeID)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"liked":       liked,
		"likes_count": count,
	})
}

// GetLikes returns the like total and the names of users who liked.
func (h *LikeHandler) GetLikes(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	total, err := h.likeService.CountLikes(c.Request.Context(), recipeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count likes"})
		return
	}
	likers, err := h.likeService.ListLikers(c.Request.Context(), recipeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch likers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_likes": total,
		"likers":      likers,
	})
}

// ListLikedRecipes returns the recipes the caller has liked.
func (h *LikeHandler) ListLikedRecipes(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	recipes, err := h.likeService.ListLikedRecipes(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch liked recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}
