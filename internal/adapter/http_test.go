// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-chama-sync/internal/config"
	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/internal/utils"
	"github.com/MKhiriev/go-chama-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testHashKey  = "testhashkey"
	testSignKey  = "testsignkey"
	testIssuer   = "chama-sync"
	testDeviceID = "device-1"
)

// newTestStore creates an httpDocumentStore pointed at the test server.
func newTestStore(t *testing.T, serverURL string) *httpDocumentStore {
	t.Helper()
	adapterCfg := config.Adapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}
	appCfg := config.ClientApp{
		HashKey:       testHashKey,
		TokenSignKey:  testSignKey,
		TokenIssuer:   testIssuer,
		TokenDuration: time.Hour,
		DeviceID:      testDeviceID,
	}

	s, err := NewHTTPDocumentStore(adapterCfg, appCfg, logger.Nop())
	require.NoError(t, err)
	return s.(*httpDocumentStore)
}

func testDocument(id string, lastUpdated int64) models.Document {
	return models.Document{
		ID:          id,
		GroupID:     "group-7",
		LastUpdated: lastUpdated,
		Body:        json.RawMessage(`{"id":"` + id + `","name":"Wanjiku"}`),
	}
}

// ── Set ─────────────────────────────────────────────────────────────────────

func TestHTTPSet_Success(t *testing.T) {
	doc := testDocument("m1", 1700000000000)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/collections/members/documents/m1", r.URL.Path)

		raw, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		assert.NoError(t, err)
		token, err := utils.ValidateAndParseJWTToken(raw, testSignKey, testIssuer)
		if assert.NoError(t, err) {
			assert.Equal(t, testDeviceID, token.DeviceID)
		}

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.True(t, utils.NewHasher(testHashKey).Verify(body, r.Header.Get(HashHeader)))

		var got models.Document
		assert.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, doc.ID, got.ID)
		assert.Equal(t, doc.LastUpdated, got.LastUpdated)
		assert.JSONEq(t, string(doc.Body), string(got.Body))

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := newTestStore(t, srv.URL)
	require.NoError(t, s.Set(context.Background(), models.CollectionMembers, doc))
}

func TestHTTPSet_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		target error
	}{
		{name: "bad request", status: http.StatusBadRequest, target: ErrBadRequest},
		{name: "unauthorized", status: http.StatusUnauthorized, target: ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, target: ErrForbidden},
		{name: "not found", status: http.StatusNotFound, target: ErrNotFound},
		{name: "conflict", status: http.StatusConflict, target: ErrConflict},
		{name: "bad gateway", status: http.StatusBadGateway, target: ErrBadGateway},
		{name: "unavailable", status: http.StatusServiceUnavailable, target: ErrUnavailable},
		{name: "internal", status: http.StatusInternalServerError, target: ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("nope"))
			}))
			defer srv.Close()

			err := newTestStore(t, srv.URL).Set(context.Background(), models.CollectionMembers, testDocument("m1", 1))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestHTTPSet_InvalidDocument(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	s := newTestStore(t, srv.URL)
	err := s.Set(context.Background(), models.CollectionMembers, models.Document{Body: json.RawMessage(`{}`)})

	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.Zero(t, calls.Load())
}

func TestHTTPSet_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := newTestStore(t, url).Set(context.Background(), models.CollectionMembers, testDocument("m1", 1))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPSet_ReusesTokenAndRenewsAfterUnauthorized(t *testing.T) {
	var tokens []string
	var reject atomic.Bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokens = append(tokens, r.Header.Get("Authorization"))
		if reject.Swap(false) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := newTestStore(t, srv.URL)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, models.CollectionMembers, testDocument("m1", 1)))
	require.NoError(t, s.Set(ctx, models.CollectionMembers, testDocument("m2", 2)))
	require.Len(t, tokens, 2)
	assert.Equal(t, tokens[0], tokens[1])

	reject.Store(true)
	require.ErrorIs(t, s.Set(ctx, models.CollectionMembers, testDocument("m3", 3)), ErrUnauthorized)
	assert.Empty(t, s.token.SignedString)
}

// ── Query ───────────────────────────────────────────────────────────────────

func TestHTTPQuery_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/collections/members/documents", r.URL.Path)
		assert.Equal(t, "1700000000000", r.URL.Query().Get("updated_after"))
		assert.Equal(t, "group-7", r.URL.Query().Get("group_id"))
		assert.NotEmpty(t, r.Header.Get("Authorization"))

		_, _ = utils.WriteJSON(w, models.DocumentList{
			Documents: []models.Document{testDocument("m2", 1700000000300), testDocument("m1", 1700000000200)},
			Length:    2,
		}, http.StatusOK)
	}))
	defer srv.Close()

	docs, err := newTestStore(t, srv.URL).Query(context.Background(), models.CollectionMembers,
		models.DocumentQuery{UpdatedAfter: 1700000000000, GroupID: "group-7"})

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "m1", docs[0].ID)
	assert.Equal(t, "m2", docs[1].ID)
}

func TestHTTPQuery_GlobalScopeOmitsGroup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("group_id"))
		assert.Equal(t, "0", r.URL.Query().Get("updated_after"))
		_, _ = utils.WriteJSON(w, models.DocumentList{}, http.StatusOK)
	}))
	defer srv.Close()

	docs, err := newTestStore(t, srv.URL).Query(context.Background(), models.CollectionUsers, models.DocumentQuery{})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestHTTPQuery_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestStore(t, srv.URL).Query(context.Background(), models.CollectionUsers, models.DocumentQuery{})
	assert.ErrorIs(t, err, ErrInternalServerError)
}

// ── construction ────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "localhost:8080", want: "http://localhost:8080"},
		{raw: "https://sync.example.com/", want: "https://sync.example.com"},
		{raw: "  http://127.0.0.1:9000  ", want: "http://127.0.0.1:9000"},
		{raw: "", wantErr: true},
		{raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewDocumentStore_Backends(t *testing.T) {
	ctx := context.Background()
	app := config.ClientApp{TokenSignKey: testSignKey, TokenIssuer: testIssuer, TokenDuration: time.Hour, DeviceID: testDeviceID}

	s, err := NewDocumentStore(ctx, config.Adapter{Backend: config.BackendHTTP, HTTPAddress: "localhost:8080"}, app, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &httpDocumentStore{}, s)

	_, err = NewDocumentStore(ctx, config.Adapter{Backend: "ftp"}, app, logger.Nop())
	assert.ErrorIs(t, err, ErrUnknownBackend)

	_, err = NewDocumentStore(ctx, config.Adapter{Backend: config.BackendHTTP}, app, logger.Nop())
	assert.ErrorIs(t, err, ErrInvalidAddress)
}
