package services

import (
	"context"

	apperrors "github.com/Nardoto/nardotos-finance/internal/errors"
	"github.com/Nardoto/nardotos-finance/internal/gemini"
)

// extractionService bridges the model adapter and the category vocabulary.
type extractionService struct {
	extractor  gemini.Extractor
	categories CategoryServicer
}

// NewExtractionService creates a new ExtractionServicer.
func NewExtractionService(extractor gemini.Extractor, categories CategoryServicer) ExtractionServicer {
	return &extractionService{extractor: extractor, categories: categories}
}

// ExtractEntries sends free-form text or a base64 image to the model and
// returns the entries it identified. The caller decides which input is
// present; image wins when both are.
func (s *extractionService) ExtractEntries(ctx context.Context, text, imageBase64 string) ([]gemini.ExtractedEntry, error) {
	if text == "" && imageBase64 == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "envie texto ou imagem")
	}

	known, err := s.categories.ListNames()
	if err != nil {
		return nil, err
	}

	var entries []gemini.ExtractedEntry
	if imageBase64 != "" {
		entries, err = s.extractor.ExtractImage(ctx, imageBase64, known)
	} else {
		entries, err = s.extractor.ExtractText(ctx, text, known)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUpstream, err)
	}
	return entries, nil
}

// ExtractPlans sends free-form text to the model and returns the future
// bills it identified.
func (s *extractionService) ExtractPlans(ctx context.Context, text string) ([]gemini.ExtractedPlan, error) {
	if text == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "envie o texto das contas")
	}

	known, err := s.categories.ListNames()
	if err != nil {
		return nil, err
	}

	plans, err := s.extractor.ExtractPlans(ctx, text, known)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUpstream, err)
	}
	return plans, nil
}
