package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-chama-sync/internal/store"
)

// RowKind is the fate of one row during a collection sync.
type RowKind int

const (
	// RowAccepted rows were uploaded, or applied locally.
	RowAccepted RowKind = iota
	// RowSkipped rows were downloaded but the local copy is as new or newer.
	RowSkipped
	// RowDropped rows were rejected before any local write.
	RowDropped
	// RowFailed rows hit an error while being uploaded or written.
	RowFailed
)

func (k RowKind) String() string {
	switch k {
	case RowAccepted:
		return "accepted"
	case RowSkipped:
		return "skipped"
	case RowDropped:
		return "dropped"
	case RowFailed:
		return "failed"
	default:
		return fmt.Sprintf("RowKind(%d)", int(k))
	}
}

// DropReason says why a downloaded row was dropped.
type DropReason string

const (
	// DropMissingReference rows point at an entity that is not stored
	// locally yet. They are re-fetched on a later pass.
	DropMissingReference DropReason = "missing_reference"
	// DropMalformed rows cannot be decoded. Re-fetching does not help.
	DropMalformed DropReason = "malformed"
	// DropForeignGroup rows came back from a group query but belong to
	// another group.
	DropForeignGroup DropReason = "foreign_group"
)

// RowResult is the explicit outcome of verifying, uploading or applying one
// row.
type RowResult struct {
	ID          string
	LastUpdated int64
	Kind        RowKind
	Reason      DropReason
	Detail      string
	Err         error
}

func accepted(id string, lastUpdated int64) RowResult {
	return RowResult{ID: id, LastUpdated: lastUpdated, Kind: RowAccepted}
}

func skipped(id string, lastUpdated int64) RowResult {
	return RowResult{ID: id, LastUpdated: lastUpdated, Kind: RowSkipped}
}

func dropped(id string, lastUpdated int64, reason DropReason, detail string) RowResult {
	return RowResult{ID: id, LastUpdated: lastUpdated, Kind: RowDropped, Reason: reason, Detail: detail}
}

func failed(id string, lastUpdated int64, err error) RowResult {
	return RowResult{ID: id, LastUpdated: lastUpdated, Kind: RowFailed, Err: err}
}

// Redeliverable reports whether the row must be fetched again on the next
// pass, i.e. whether it holds the download watermark back. A write that broke
// a non foreign key constraint fails identically on every pass, so it does
// not.
func (r RowResult) Redeliverable() bool {
	switch r.Kind {
	case RowFailed:
		return !errors.Is(r.Err, store.ErrConstraintViolation)
	case RowDropped:
		return r.Reason == DropMissingReference
	default:
		return false
	}
}

// CollectionOutcome summarises one collection sync for one scope.
type CollectionOutcome struct {
	Collection string
	ScopeKey   string

	Uploaded     int
	UploadFailed int
	Applied      int
	Skipped      int
	Dropped      int
	Failed       int

	// PreviousWatermark is the watermark the pass started from; Watermark is
	// the one it ended with. They are equal when the watermark did not move.
	PreviousWatermark int64
	Watermark         int64

	Duration time.Duration

	// Err is set when the whole collection failed. Per-row failures never
	// set it.
	Err error
}

// OK reports whether the collection completed.
func (o CollectionOutcome) OK() bool {
	return o.Err == nil
}

func (o *CollectionOutcome) countUpload(r RowResult) {
	if r.Kind == RowAccepted {
		o.Uploaded++
		return
	}
	o.UploadFailed++
}

func (o *CollectionOutcome) countDownload(r RowResult) {
	switch r.Kind {
	case RowAccepted:
		o.Applied++
	case RowSkipped:
		o.Skipped++
	case RowDropped:
		o.Dropped++
	case RowFailed:
		o.Failed++
	}
}
