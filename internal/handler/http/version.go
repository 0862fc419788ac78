package http

import (
	"net/http"

	"github.com/MKhiriev/go-chama-sync/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	utils.WriteText(w, h.services.AppInfoService.GetAppVersion(r.Context()))
}

// getCollections lists the collection names the server accepts, in sync order.
func (h *Handler) getCollections(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfoService.GetCollections(r.Context()), http.StatusOK)
}
