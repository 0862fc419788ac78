package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-chama-sync/internal/codec"
	"github.com/MKhiriev/go-chama-sync/internal/validators"
	"github.com/MKhiriev/go-chama-sync/models"
)

// DocumentValidationService rejects malformed requests before they reach
// the wrapped DocumentService.
type DocumentValidationService struct {
	inner     DocumentService
	validator validators.Validator
}

func NewDocumentValidationService() DocumentServiceWrapper {
	return &DocumentValidationService{validator: validators.NewDocumentValidator()}
}

func (v *DocumentValidationService) Wrap(inner DocumentService) DocumentService {
	v.inner = inner
	return v
}

func (v *DocumentValidationService) Put(ctx context.Context, collection string, doc models.Document) error {
	if err := validateCollection(collection); err != nil {
		return err
	}
	if err := v.validator.Validate(ctx, doc); err != nil {
		return fmt.Errorf("%s/%s: %w", collection, doc.ID, validationError(err))
	}

	return v.inner.Put(ctx, collection, doc)
}

func (v *DocumentValidationService) Query(ctx context.Context, collection string, q models.DocumentQuery) (models.DocumentList, error) {
	if err := validateCollection(collection); err != nil {
		return models.DocumentList{}, err
	}
	if err := v.validator.Validate(ctx, q); err != nil {
		return models.DocumentList{}, fmt.Errorf("%s: %w", collection, validationError(err))
	}

	return v.inner.Query(ctx, collection, q)
}

func validateCollection(collection string) error {
	if codec.Position(collection) < 0 {
		return fmt.Errorf("%w: %q", ErrValidationUnknownCollection, collection)
	}
	return nil
}

// validationError tags a validator failure with the matching service
// sentinel, keeping the validator error in the chain.
func validationError(err error) error {
	var sentinel error
	switch {
	case errors.Is(err, validators.ErrEmptyID), errors.Is(err, validators.ErrInvalidID):
		sentinel = ErrValidationNoDocumentID
	case errors.Is(err, validators.ErrInvalidLastUpdated):
		sentinel = ErrValidationNoLastUpdated
	case errors.Is(err, validators.ErrBodyIDMismatch):
		sentinel = ErrValidationIDMismatch
	case errors.Is(err, validators.ErrInvalidUpdatedAfter), errors.Is(err, validators.ErrInvalidGroupID):
		sentinel = ErrValidationInvalidQuery
	default:
		sentinel = ErrValidationInvalidBody
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
