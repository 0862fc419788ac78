package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-chama-sync/internal/codec"
	"github.com/MKhiriev/go-chama-sync/internal/mock"
	"github.com/MKhiriev/go-chama-sync/models"
)

func TestReferenceVerifier_Verify(t *testing.T) {
	refs := []codec.Reference{
		{Column: "group_id", Collection: models.CollectionGroups, ID: "g1"},
		{Column: "meeting_id", Collection: models.CollectionMeetings, ID: "mt1"},
		{Column: "member_id", Collection: models.CollectionMembers, ID: ""},
	}

	tests := []struct {
		name       string
		setup      func(l *mock.MockReferenceLookup)
		wantKind   RowKind
		wantReason DropReason
		wantDetail string
	}{
		{
			name: "all references stored",
			setup: func(l *mock.MockReferenceLookup) {
				l.EXPECT().Exists(gomock.Any(), models.CollectionGroups, "g1").Return(true, nil)
				l.EXPECT().Exists(gomock.Any(), models.CollectionMeetings, "mt1").Return(true, nil)
			},
			wantKind: RowAccepted,
		},
		{
			name: "missing meeting",
			setup: func(l *mock.MockReferenceLookup) {
				l.EXPECT().Exists(gomock.Any(), models.CollectionGroups, "g1").Return(true, nil)
				l.EXPECT().Exists(gomock.Any(), models.CollectionMeetings, "mt1").Return(false, nil)
			},
			wantKind:   RowDropped,
			wantReason: DropMissingReference,
			wantDetail: "meetings/mt1",
		},
		{
			name: "everything missing",
			setup: func(l *mock.MockReferenceLookup) {
				l.EXPECT().Exists(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
			},
			wantKind:   RowDropped,
			wantReason: DropMissingReference,
			wantDetail: "groups/g1,meetings/mt1",
		},
		{
			name: "lookup error",
			setup: func(l *mock.MockReferenceLookup) {
				l.EXPECT().Exists(gomock.Any(), models.CollectionGroups, "g1").Return(false, errors.New("database is locked"))
			},
			wantKind: RowFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			lookup := mock.NewMockReferenceLookup(ctrl)
			tt.setup(lookup)

			res := NewReferenceVerifier(lookup).Verify(testContext(), "c1", 10, refs)

			assert.Equal(t, tt.wantKind, res.Kind)
			assert.Equal(t, tt.wantReason, res.Reason)
			assert.Equal(t, tt.wantDetail, res.Detail)
			assert.Equal(t, "c1", res.ID)
			assert.Equal(t, int64(10), res.LastUpdated)
			if tt.wantKind == RowFailed {
				assert.Error(t, res.Err)
			}
		})
	}
}

func TestRowResult_RedeliverableBasic(t *testing.T) {
	tests := []struct {
		res  RowResult
		want bool
	}{
		{res: accepted("a", 1), want: false},
		{res: skipped("a", 1), want: false},
		{res: failed("a", 1, errors.New("x")), want: true},
		{res: dropped("a", 1, DropMissingReference, ""), want: true},
		{res: dropped("a", 1, DropMalformed, ""), want: false},
		{res: dropped("a", 1, DropForeignGroup, ""), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.res.Kind.String()+"/"+string(tt.res.Reason), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.Redeliverable())
		})
	}
}
