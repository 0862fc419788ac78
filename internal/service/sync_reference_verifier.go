package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-chama-sync/internal/codec"
	"github.com/MKhiriev/go-chama-sync/internal/store"
)

// ReferenceVerifier checks that every entity a downloaded row points at is
// already stored locally.
type ReferenceVerifier struct {
	lookup store.ReferenceLookup
}

func NewReferenceVerifier(lookup store.ReferenceLookup) *ReferenceVerifier {
	return &ReferenceVerifier{lookup: lookup}
}

// Verify returns Accepted when all refs resolve, Dropped with
// [DropMissingReference] naming the missing ones otherwise, and Failed when
// the lookup itself errors.
func (v *ReferenceVerifier) Verify(ctx context.Context, id string, lastUpdated int64, refs []codec.Reference) RowResult {
	var missing []string
	for _, ref := range refs {
		if ref.ID == "" {
			continue
		}

		ok, err := v.lookup.Exists(ctx, ref.Collection, ref.ID)
		if err != nil {
			return failed(id, lastUpdated, fmt.Errorf("look up %s %s: %w", ref.Collection, ref.ID, err))
		}
		if !ok {
			missing = append(missing, ref.Collection+"/"+ref.ID)
		}
	}

	if len(missing) > 0 {
		return dropped(id, lastUpdated, DropMissingReference, strings.Join(missing, ","))
	}
	return accepted(id, lastUpdated)
}
