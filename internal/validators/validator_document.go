package validators

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-chama-sync/models"
)

const (
	FieldID           = "id"
	FieldGroupID      = "group_id"
	FieldLastUpdated  = "last_updated"
	FieldBody         = "body"
	FieldUpdatedAfter = "updated_after"
)

// forbiddenIDChars may not appear in ids: ':' separates scope keys and '/'
// separates object names of the document backends.
const forbiddenIDChars = ":/"

type DocumentValidator struct {
}

func NewDocumentValidator() Validator {
	return &DocumentValidator{}
}

func (v *DocumentValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Document:
		return v.validateDocument(ctx, value, fields...)
	case *models.Document:
		return v.validateDocument(ctx, *value, fields...)

	case models.DocumentQuery:
		return v.validateQuery(ctx, value, fields...)
	case *models.DocumentQuery:
		return v.validateQuery(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *DocumentValidator) validateDocument(_ context.Context, doc models.Document, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldGroupID, FieldLastUpdated, FieldBody}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if doc.ID == "" {
				return ErrEmptyID
			}
			if !validID(doc.ID) {
				return fmt.Errorf("%w: %q", ErrInvalidID, doc.ID)
			}
		case FieldGroupID:
			if doc.GroupID != "" && !validID(doc.GroupID) {
				return fmt.Errorf("%w: %q", ErrInvalidGroupID, doc.GroupID)
			}
		case FieldLastUpdated:
			if doc.LastUpdated <= 0 {
				return ErrInvalidLastUpdated
			}
		case FieldBody:
			var body struct {
				ID *string `json:"id"`
			}
			if err := json.Unmarshal(doc.Body, &body); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidBody, err)
			}
			if body.ID != nil && *body.ID != "" && *body.ID != doc.ID {
				return fmt.Errorf("%w: %q != %q", ErrBodyIDMismatch, *body.ID, doc.ID)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *DocumentValidator) validateQuery(_ context.Context, q models.DocumentQuery, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUpdatedAfter, FieldGroupID}
	}

	for _, f := range fields {
		switch f {
		case FieldUpdatedAfter:
			if q.UpdatedAfter < 0 {
				return ErrInvalidUpdatedAfter
			}
		case FieldGroupID:
			if q.GroupID != "" && !validID(q.GroupID) {
				return fmt.Errorf("%w: %q", ErrInvalidGroupID, q.GroupID)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validID(id string) bool {
	return strings.TrimSpace(id) == id && !strings.ContainsAny(id, forbiddenIDChars)
}
