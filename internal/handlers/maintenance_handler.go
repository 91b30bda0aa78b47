package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/services"
)

type MaintenanceHandler struct {
	Service *services.MaintenanceService
}

func (h *MaintenanceHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var asset models.MaintenanceAsset
	if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	asset.PropertyID = getIntParam(r, "id")
	asset.OwnerID = userIDFromContext(r)

	created, err := h.Service.CreateAsset(r.Context(), asset)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPropertyNotFound):
			http.Error(w, "Property not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Not your property", http.StatusForbidden)
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *MaintenanceHandler) GetAssetsByProperty(w http.ResponseWriter, r *http.Request) {
	assets, err := h.Service.GetAssetsByProperty(r.Context(), getIntParam(r, "id"), userIDFromContext(r))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPropertyNotFound):
			http.Error(w, "Property not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Not your property", http.StatusForbidden)
		default:
			http.Error(w, "Failed to fetch assets", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(assets)
}

func (h *MaintenanceHandler) GetMyAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.Service.GetAssetsByOwner(r.Context(), userIDFromContext(r))
	if err != nil {
		http.Error(w, "Failed to fetch assets", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(assets)
}

func (h *MaintenanceHandler) CompleteService(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ServicedAt time.Time `json:"serviced_at"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	asset, err := h.Service.CompleteService(r.Context(), getIntParam(r, "id"), userIDFromContext(r), req.ServicedAt)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrAssetNotFound):
			http.Error(w, "Asset not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Not your asset", http.StatusForbidden)
		default:
			http.Error(w, "Failed to record service", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(asset)
}

func (h *MaintenanceHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	var asset models.MaintenanceAsset
	if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	asset.ID = getIntParam(r, "id")
	asset.OwnerID = userIDFromContext(r)

	updated, err := h.Service.UpdateAsset(r.Context(), asset)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrAssetNotFound):
			http.Error(w, "Asset not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Not your asset", http.StatusForbidden)
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	json.NewEncoder(w).Encode(updated)
}

func (h *MaintenanceHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteAsset(r.Context(), getIntParam(r, "id"), userIDFromContext(r))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrAssetNotFound):
			http.Error(w, "Asset not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Not your asset", http.StatusForbidden)
		default:
			http.Error(w, "Failed to delete asset", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
