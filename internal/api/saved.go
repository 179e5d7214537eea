package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/emuats/recipely/backend/internal/middleware"
	"github.com/emuats/recipely/backend/internal/service"
)

type SavedHandler struct {
	savedService *service.SavedService
	authService  *service.AuthService
}

func NewSavedHandler(savedService *service.SavedService, authService *service.AuthService) *SavedHandler {
	return &SavedHandler{
		savedService: savedService,
		authService:  authService,
	}
}

func (h *SavedHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)

	recipes := router.Group("/recipes")
	{
		recipes.PUT("/:id/save", auth, h.SaveRecipe)
		recipes.PUT("/:id/unsave", auth, h.RemoveSavedRecipe)
	}
	users := router.Group("/users")
	{
		users.GET("/me/saved-recipes", auth, h.ListSaved)
		users.GET("/me/saved-recipes/ids", auth, h.ListSavedIDs)
	}
}

// SaveRecipe adds a recipe to the caller's saved set and returns the full
// set so the client can resynchronize.
func (h *SavedHandler) SaveRecipe(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	ids, err := h.savedService.SaveRecipe(c.Request.Context(), userID, recipeID)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"saved_recipes": ids})
}

// RemoveSavedRecipe drops a recipe from the caller's saved set. Removing a
// recipe that was never saved succeeds with the unchanged set.
func (h *SavedHandler) RemoveSavedRecipe(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	ids, err := h.savedService.RemoveSavedRecipe(c.Request.Context(), userID, recipeID)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved_recipes": ids})
}

func (h *SavedHandler) ListSaved(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	recipes, err := h.savedService.ListSaved(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved_recipes": recipes})
}

func (h *SavedHandler) ListSavedIDs(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	ids, err := h.savedService.ListSavedIDs(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved_recipes": ids})
}
