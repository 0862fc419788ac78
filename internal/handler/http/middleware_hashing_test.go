// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHashKey = "test-secret-key"

// --- Helpers ---

func newHashingHandler(hashKey string) *Handler {
	return &Handler{
		hasher: utils.NewHasher(hashKey),
		logger: logger.Nop(),
	}
}

func sampleDocumentBody(id string) []byte {
	return []byte(`{"id":"` + id + `","groupId":"group-1","lastUpdated":1700000000000,"body":{"id":"` + id + `","name":"Alice"}}`)
}

func executeHashing(h *Handler, body []byte, hash string, next http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/collections/members/documents/m-1", bytes.NewReader(body))
	if hash != "" {
		req.Header.Set(hashHeader, hash)
	}
	rr := httptest.NewRecorder()
	h.bodyHashing(next).ServeHTTP(rr, req)
	return rr
}

// --- bodyHashing tests ---

func TestBodyHashing_TableTest(t *testing.T) {
	hasher := utils.NewHasher(testHashKey)
	body := sampleDocumentBody("m-1")

	tests := []struct {
		name           string
		hashKey        string
		body           []byte
		hash           string
		expectedStatus int
	}{
		{
			name:           "valid hash",
			hashKey:        testHashKey,
			body:           body,
			hash:           hasher.Hex(body),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "valid hash over empty body",
			hashKey:        testHashKey,
			body:           []byte{},
			hash:           hasher.Hex([]byte{}),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing header",
			hashKey:        testHashKey,
			body:           body,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "wrong value",
			hashKey:        testHashKey,
			body:           body,
			hash:           strings.Repeat("0", 64),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not hex",
			hashKey:        testHashKey,
			body:           body,
			hash:           "not-a-hash",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "tampered body",
			hashKey:        testHashKey,
			body:           sampleDocumentBody("m-2"),
			hash:           hasher.Hex(body),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "hash computed with another key",
			hashKey:        testHashKey,
			body:           body,
			hash:           utils.NewHasher("other-key").Hex(body),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "no hash key configured accepts anything",
			hashKey:        "",
			body:           body,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			rr := executeHashing(newHashingHandler(tt.hashKey), tt.body, tt.hash, next)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectedStatus == http.StatusOK, nextCalled)
		})
	}
}

func TestBodyHashing_BodyRestoredForNextHandler(t *testing.T) {
	h := newHashingHandler(testHashKey)
	originalBody := sampleDocumentBody("m-1")

	var bodyReadByNext []byte
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b1, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		// Second read should be empty (NopCloser does not rewind).
		b2, _ := io.ReadAll(r.Body)
		assert.Empty(t, b2, "second read should be empty")

		bodyReadByNext = b1
		w.WriteHeader(http.StatusOK)
	})

	rr := executeHashing(h, originalBody, h.hasher.Hex(originalBody), next)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, originalBody, bodyReadByNext, "next handler should receive full original body")
}

func TestBodyHashing_ConcurrentRequests(t *testing.T) {
	h := newHashingHandler(testHashKey)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			body := sampleDocumentBody("m-" + strings.Repeat("x", i))

			rr := executeHashing(h, body, h.hasher.Hex(body), next)

			assert.Equal(t, http.StatusOK, rr.Code, "goroutine %d failed", i)
		}(i)
	}

	wg.Wait()
}
