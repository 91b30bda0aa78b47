package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/services"
)

type ServiceHandler struct {
	Service *services.ServiceService
}

func decodeServiceForm(r *http.Request) (models.Service, error) {
	var svc models.Service

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return svc, errors.New("invalid multipart form")
		}
		payload := r.FormValue("payload")
		if payload == "" {
			return svc, errors.New("payload field missing")
		}
		if err := json.Unmarshal([]byte(payload), &svc); err != nil {
			return svc, errors.New("invalid payload json")
		}

		images, present, err := gatherImagesFromForm(r.MultipartForm, "images")
		if err != nil {
			return svc, err
		}
		if present {
			svc.Images = images
		}
		uploaded, err := uploadImageFiles(r.MultipartForm, "services")
		if err != nil {
			return svc, err
		}
		svc.Images = append(svc.Images, uploaded...)
		return svc, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
		return svc, errors.New("invalid body")
	}
	return svc, nil
}

func (h *ServiceHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	svc, err := decodeServiceForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	svc.UserID = userIDFromContext(r)

	created, err := h.Service.CreateService(r.Context(), svc)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNoListingSlots):
			http.Error(w, "No listing slots, subscription required", http.StatusPaymentRequired)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Only providers can publish listings", http.StatusForbidden)
		case errors.Is(err, models.ErrCategoryNotFound):
			http.Error(w, "Unknown category", http.StatusBadRequest)
		case isForeignKeyConstraintError(err):
			http.Error(w, "Unknown category or city", http.StatusBadRequest)
		default:
			http.Error(w, "Failed to create service", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *ServiceHandler) GetServiceByID(w http.ResponseWriter, r *http.Request) {
	svc, err := h.Service.GetServiceByID(r.Context(), getIntParam(r, "id"), userIDFromContext(r), roleFromContext(r))
	if err != nil {
		http.Error(w, "Service not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(svc)
}

func (h *ServiceHandler) GetMyServices(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.GetServicesByUserID(r.Context(), userIDFromContext(r))
	if err != nil {
		http.Error(w, "Failed to fetch services", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(list)
}

func (h *ServiceHandler) GetFilteredServices(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	req.UserID = userIDFromContext(r)

	resp, err := h.Service.GetFilteredServices(r.Context(), req)
	if err != nil {
		http.Error(w, "Failed to fetch services", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(resp)
}

func (h *ServiceHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	svc, err := decodeServiceForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	svc.ID = getIntParam(r, "id")
	svc.UserID = userIDFromContext(r)

	updated, err := h.Service.UpdateService(r.Context(), svc)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrServiceNotFound):
			http.Error(w, "Service not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Not your listing", http.StatusForbidden)
		default:
			http.Error(w, "Failed to update service", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(updated)
}

func (h *ServiceHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	isAdmin := roleFromContext(r) == models.RoleAdmin
	err := h.Service.DeleteService(r.Context(), getIntParam(r, "id"), userIDFromContext(r), isAdmin)
	if err != nil {
		if errors.Is(err, models.ErrServiceNotFound) {
			http.Error(w, "Service not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete service", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
