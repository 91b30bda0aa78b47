package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/services"
)

type AdminHandler struct {
	Service *services.AdminService
}

func (h *AdminHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GetDashboardStats(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch dashboard", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(stats)
}

func (h *AdminHandler) GetPendingProperties(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	props, err := h.Service.GetPendingProperties(r.Context(), page, limit)
	if err != nil {
		http.Error(w, "Failed to fetch pending properties", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(props)
}

func (h *AdminHandler) GetPendingServices(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	list, err := h.Service.GetPendingServices(r.Context(), page, limit)
	if err != nil {
		http.Error(w, "Failed to fetch pending services", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(list)
}

func (h *AdminHandler) ModerateProperty(w http.ResponseWriter, r *http.Request) {
	var req models.ModerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if err := h.Service.ModerateProperty(r.Context(), getIntParam(r, "id"), req); err != nil {
		if errors.Is(err, models.ErrPropertyNotFound) {
			http.Error(w, "Property not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *AdminHandler) ModerateService(w http.ResponseWriter, r *http.Request) {
	var req models.ModerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if err := h.Service.ModerateService(r.Context(), getIntParam(r, "id"), req); err != nil {
		if errors.Is(err, models.ErrServiceNotFound) {
			http.Error(w, "Service not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *AdminHandler) BlockUser(w http.ResponseWriter, r *http.Request) {
	h.setBlocked(w, r, true)
}

func (h *AdminHandler) UnblockUser(w http.ResponseWriter, r *http.Request) {
	h.setBlocked(w, r, false)
}

func (h *AdminHandler) setBlocked(w http.ResponseWriter, r *http.Request, blocked bool) {
	if err := h.Service.SetUserBlocked(r.Context(), getIntParam(r, "id"), blocked); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update user", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *AdminHandler) RecentSignups(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	signups, err := h.Service.RecentSignups(r.Context(), days)
	if err != nil {
		http.Error(w, "Failed to fetch signups", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(signups)
}
