package models

import (
	"fmt"
	"time"
)

// Scope is the granularity of a sync watermark: the whole collection when
// GroupID is empty, otherwise one (collection, group) pair.
type Scope struct {
	GroupID string
}

// IsGlobal reports whether the scope spans the whole collection.
func (s Scope) IsGlobal() bool {
	return s.GroupID == ""
}

// ScopeKey returns the ledger key for collection under scope: the bare
// collection name, or "{collection}:{groupId}".
func ScopeKey(collection string, scope Scope) string {
	if scope.IsGlobal() {
		return collection
	}
	return collection + ":" + scope.GroupID
}

// SyncWatermark is the last successful sync boundary of a scope key.
type SyncWatermark struct {
	ScopeKey     string `json:"scopeKey"`
	LastSyncedAt int64  `json:"lastSyncedAt"`
}

// SyncResult is what a pass reports to its scheduler.
type SyncResult int

const (
	// SyncResultSuccess means no collection failed during the pass.
	SyncResultSuccess SyncResult = iota
	// SyncResultRetry means the pass should be attempted again later.
	SyncResultRetry
)

func (r SyncResult) String() string {
	switch r {
	case SyncResultSuccess:
		return "success"
	case SyncResultRetry:
		return "retry"
	default:
		return fmt.Sprintf("SyncResult(%d)", int(r))
	}
}

// SyncState enumerates the observable sync status variants.
type SyncState int

const (
	SyncStateIdle SyncState = iota
	SyncStateInProgress
	SyncStateInProgressWithProgress
	SyncStateSuccess
	SyncStateFailed
)

func (s SyncState) String() string {
	switch s {
	case SyncStateIdle:
		return "idle"
	case SyncStateInProgress:
		return "in_progress"
	case SyncStateInProgressWithProgress:
		return "in_progress_with_progress"
	case SyncStateSuccess:
		return "success"
	case SyncStateFailed:
		return "failed"
	default:
		return fmt.Sprintf("SyncState(%d)", int(s))
	}
}

// SyncStatus is the current sync status shown to the UI. Only the fields
// relevant to State are set.
type SyncStatus struct {
	State   SyncState `json:"state"`
	Current int       `json:"current,omitempty"`
	Total   int       `json:"total,omitempty"`
	At      time.Time `json:"at,omitempty"`
	Message string    `json:"message,omitempty"`
}

func StatusIdle() SyncStatus {
	return SyncStatus{State: SyncStateIdle}
}

func StatusInProgress() SyncStatus {
	return SyncStatus{State: SyncStateInProgress}
}

func StatusProgress(current, total int) SyncStatus {
	return SyncStatus{State: SyncStateInProgressWithProgress, Current: current, Total: total}
}

func StatusSuccess(at time.Time) SyncStatus {
	return SyncStatus{State: SyncStateSuccess, At: at}
}

func StatusFailed(message string) SyncStatus {
	return SyncStatus{State: SyncStateFailed, Message: message}
}
