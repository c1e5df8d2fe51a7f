package handlers

import (
	"context"
	"errors"
	"net/http"

	"cling-reminder.backend/internal/domain/entities"
	domainerrors "cling-reminder.backend/internal/domain/errors"
	"cling-reminder.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
)

type ImageService interface {
	GenerateImage(ctx context.Context, input entities.GenerateImageInput) (*entities.ImageSuggestion, error)
	GenerateIcons(ctx context.Context, input entities.GenerateIconsInput) ([]string, error)
}

// ImageHandler handles the image-generation proxy endpoints
type ImageHandler struct {
	imageUsecase ImageService
}

// NewImageHandler creates a new image handler
func NewImageHandler(imageUsecase ImageService) *ImageHandler {
	return &ImageHandler{imageUsecase: imageUsecase}
}

// GenerateImage proxies a text prompt to the image provider
// POST /api/generate-image
func (h *ImageHandler) GenerateImage(c *gin.Context) {
	var input entities.GenerateImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required and must be non-empty string"})
		return
	}

	suggestion, err := h.imageUsecase.GenerateImage(c.Request.Context(), input)
	if err != nil {
		// Upstream error bodies are echoed back deliberately; this
		// endpoint exists for debugging generation issues too.
		var appErr *domainerrors.AppError
		if errors.As(err, &appErr) {
			c.JSON(appErr.Status, gin.H{"error": "Image generation failed", "detail": appErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image generation failed", "detail": err.Error()})
		return
	}

	if !suggestion.Recognized() {
		response.Success(c, http.StatusOK, gin.H{
			"message": "No image found in response",
			"raw":     suggestion.Raw,
		})
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"prompt": input.Prompt,
		"urls":   suggestion.URLs,
	})
}

// GenerateIcons returns placeholder icon URLs for a description
// POST /api/generate-icons
func (h *ImageHandler) GenerateIcons(c *gin.Context) {
	var input entities.GenerateIconsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Description is required for AI generation."))
		return
	}

	urls, err := h.imageUsecase.GenerateIcons(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"urls": urls})
}
