package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-chama-sync/models"
)

func TestObjectName(t *testing.T) {
	assert.Equal(t, "members/m1.json", objectName(models.CollectionMembers, "m1"))
}

func TestDocumentMetadata(t *testing.T) {
	doc := testDocument("m1", 1700000000000)
	assert.Equal(t, map[string]string{
		metaLastUpdated: "1700000000000",
		metaGroupID:     "group-7",
	}, documentMetadata(doc))

	doc.GroupID = ""
	assert.NotContains(t, documentMetadata(doc), metaGroupID)
}

func TestMetadataMayMatch(t *testing.T) {
	tests := []struct {
		name string
		meta map[string]string
		q    models.DocumentQuery
		want bool
	}{
		{
			name: "no metadata is fetched",
			meta: nil,
			q:    models.DocumentQuery{UpdatedAfter: 100},
			want: true,
		},
		{
			name: "newer",
			meta: map[string]string{"X-Amz-Meta-Last-Updated": "200"},
			q:    models.DocumentQuery{UpdatedAfter: 100},
			want: true,
		},
		{
			name: "equal to watermark is excluded",
			meta: map[string]string{"Last-Updated": "100"},
			q:    models.DocumentQuery{UpdatedAfter: 100},
			want: false,
		},
		{
			name: "other group",
			meta: map[string]string{"x-amz-meta-last-updated": "200", "x-amz-meta-group-id": "group-8"},
			q:    models.DocumentQuery{UpdatedAfter: 100, GroupID: "group-7"},
			want: false,
		},
		{
			name: "same group",
			meta: map[string]string{"X-Amz-Meta-Last-Updated": "200", "X-Amz-Meta-Group-Id": "group-7"},
			q:    models.DocumentQuery{UpdatedAfter: 100, GroupID: "group-7"},
			want: true,
		},
		{
			name: "unparsable timestamp is fetched",
			meta: map[string]string{"Last-Updated": "yesterday"},
			q:    models.DocumentQuery{UpdatedAfter: 100},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, metadataMayMatch(tt.meta, tt.q))
		})
	}
}

func TestSortDocuments(t *testing.T) {
	docs := []models.Document{
		{ID: "b", LastUpdated: 2},
		{ID: "c", LastUpdated: 1},
		{ID: "a", LastUpdated: 2},
	}
	sortDocuments(docs)

	assert.Equal(t, []string{"c", "a", "b"}, []string{docs[0].ID, docs[1].ID, docs[2].ID})
}
