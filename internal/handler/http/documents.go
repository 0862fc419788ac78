// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-chama-sync/internal/app"
	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/internal/service"
	"github.com/MKhiriev/go-chama-sync/internal/utils"
	"github.com/MKhiriev/go-chama-sync/models"
	"github.com/go-chi/chi/v5"
)

// putDocument stores the document in the request body under
// /api/collections/{collection}/documents/{id}. An empty envelope id is
// taken from the path.
func (h *Handler) putDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	ctx := r.Context()

	collection := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")

	var doc models.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		log.Err(err).Str("func", "*Handler.putDocument").Msg("failed to decode document")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}
	if doc.ID == "" {
		doc.ID = id
	}
	if doc.ID != id {
		log.Error().Str("func", "*Handler.putDocument").
			Str("path_id", id).
			Str("body_id", doc.ID).
			Msg("document id does not match path")
		http.Error(w, errorMessage(service.ErrValidationIDMismatch), http.StatusBadRequest)
		return
	}

	deviceID, _ := utils.GetDeviceIDFromContext(ctx)
	if err := h.services.DocumentService.Put(ctx, collection, doc); err != nil {
		log.Err(err).Str("func", "*Handler.putDocument").
			Str("collection", collection).
			Str("id", doc.ID).
			Str("device_id", deviceID).
			Msg("failed to put document")
		http.Error(w, errorMessage(err), statusFromError(err))
		return
	}

	log.Debug().Str("collection", collection).Str("id", doc.ID).Str("device_id", deviceID).Msg("document stored")
	w.WriteHeader(http.StatusNoContent)
}

// queryDocuments answers
// GET /api/collections/{collection}/documents?updated_after=&group_id=.
func (h *Handler) queryDocuments(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	collection := chi.URLParam(r, "collection")

	q, err := parseDocumentQuery(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.queryDocuments").Send()
		http.Error(w, errorMessage(err), http.StatusBadRequest)
		return
	}

	list, err := h.services.DocumentService.Query(r.Context(), collection, q)
	if err != nil {
		log.Err(err).Str("func", "*Handler.queryDocuments").
			Str("collection", collection).
			Msg("failed to query documents")
		http.Error(w, errorMessage(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, list, http.StatusOK)
}

func parseDocumentQuery(r *http.Request) (models.DocumentQuery, error) {
	values := r.URL.Query()

	var q models.DocumentQuery
	if raw := values.Get("updated_after"); raw != "" {
		updatedAfter, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || updatedAfter < 0 {
			return models.DocumentQuery{}, ErrInvalidUpdatedAfter
		}
		q.UpdatedAfter = updatedAfter
	}
	q.GroupID = values.Get("group_id")

	return q, nil
}
