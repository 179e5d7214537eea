package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/emuats/recipely/backend/internal/middleware"
	"github.com/emuats/recipely/backend/internal/service"
)

type ReviewHandler struct {
	reviewService *service.ReviewService
	authService   *service.AuthService
}

func NewReviewHandler(reviewService *service.ReviewService, authService *service.AuthService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		authService:   authService,
	}
}

func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("/:id/reviews", middleware.AuthMiddleware(h.authService), h.SubmitReview)
		recipes.GET("/:id/reviews", h.ListReviews)
	}
}

// SubmitReview persists a review and returns the recipe with its freshly
// recomputed average. A recompute failure after the insert still reports
// the review as created, with a staleness warning.
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	recipe, stale, err := h.reviewService.SubmitReview(c.Request.Context(), recipeID, userID, req.Rating, req.Comment)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"recipe": recipe}
	if stale {
		resp["warning"] = "average rating may be momentarily stale"
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	reviews, err := h.reviewService.ListReviews(c.Request.Context(), recipeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	resp := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		resp = append(resp, ReviewResponse{
			ID:           r.ID.String(),
			RecipeID:     r.RecipeID.String(),
			UserID:       r.UserID.String(),
			Rating:       r.Rating,
			Comment:      r.Comment,
			CreatedAt:    r.CreatedAt.Format(time.RFC3339),
			UserName:     r.User.Name,
			ProfileImage: r.User.ProfileImageURL,
		})
	}

	c.JSON(http.StatusOK, gin.H{"reviews": resp})
}
