package adapter

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-chama-sync/models"
)

// sortDocuments orders docs by lastUpdated, then id.
func sortDocuments(docs []models.Document) {
	slices.SortFunc(docs, func(a, b models.Document) int {
		if c := cmp.Compare(a.LastUpdated, b.LastUpdated); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func validateDocument(collection string, doc models.Document) error {
	if collection == "" {
		return fmt.Errorf("%w: empty collection", ErrInvalidDocument)
	}
	if doc.ID == "" {
		return fmt.Errorf("%w: %s: empty id", ErrInvalidDocument, collection)
	}
	if len(doc.Body) == 0 {
		return fmt.Errorf("%w: %s %s: empty body", ErrInvalidDocument, collection, doc.ID)
	}
	return nil
}
