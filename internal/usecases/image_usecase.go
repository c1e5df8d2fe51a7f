package usecases

import (
	"context"
	"strings"

	"cling-reminder.backend/internal/domain/entities"
	domainerrors "cling-reminder.backend/internal/domain/errors"
)

// ImageGenerator produces images from a text prompt
type ImageGenerator interface {
	Generate(ctx context.Context, in entities.GenerateImageInput) (*entities.ImageSuggestion, error)
}

// IconSuggester produces icon image URLs for a description
type IconSuggester interface {
	SuggestIcons(ctx context.Context, description string) ([]string, error)
}

// ImageUsecase fronts the external image-generation providers
type ImageUsecase struct {
	generator ImageGenerator
	icons     IconSuggester
}

// NewImageUsecase creates a new image usecase
func NewImageUsecase(generator ImageGenerator, icons IconSuggester) *ImageUsecase {
	return &ImageUsecase{
		generator: generator,
		icons:     icons,
	}
}

// GenerateImage proxies a prompt to the image provider
func (u *ImageUsecase) GenerateImage(ctx context.Context, input entities.GenerateImageInput) (*entities.ImageSuggestion, error) {
	if strings.TrimSpace(input.Prompt) == "" {
		return nil, domainerrors.BadRequest("prompt is required and must be non-empty string")
	}
	input.Defaults()
	return u.generator.Generate(ctx, input)
}

// GenerateIcons returns placeholder icon URLs for a description
func (u *ImageUsecase) GenerateIcons(ctx context.Context, input entities.GenerateIconsInput) ([]string, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, domainerrors.BadRequest("description is required")
	}
	return u.icons.SuggestIcons(ctx, input.Description)
}
