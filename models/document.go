package models

import "encoding/json"

// Document is the wire representation of an entity in the remote store.
//
// ID, GroupID and LastUpdated are lifted out of the body so that backends can
// index and filter on them without decoding it. When envelope and body
// disagree, the envelope wins.
type Document struct {
	ID          string          `json:"id"`
	GroupID     string          `json:"groupId,omitempty"`
	LastUpdated int64           `json:"lastUpdated"`
	Body        json.RawMessage `json:"body"`
}

// DocumentQuery selects documents of one collection with
// lastUpdated > UpdatedAfter, optionally restricted to one group.
type DocumentQuery struct {
	UpdatedAfter int64  `json:"updatedAfter"`
	GroupID      string `json:"groupId,omitempty"`
}

// Matches reports whether d satisfies the query.
func (q DocumentQuery) Matches(d Document) bool {
	if d.LastUpdated <= q.UpdatedAfter {
		return false
	}
	return q.GroupID == "" || d.GroupID == q.GroupID
}

// DocumentList is the body of a remote query response.
type DocumentList struct {
	Documents []Document `json:"documents"`
	Length    int        `json:"length"`
}
