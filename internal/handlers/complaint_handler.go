package handlers

import (
	"encoding/json"
	"net/http"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/services"
)

type ComplaintHandler struct {
	Service *services.ComplaintService
}

func (h *ComplaintHandler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	var complaint models.Complaint
	if err := json.NewDecoder(r.Body).Decode(&complaint); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	complaint.ReporterID = userIDFromContext(r)

	created, err := h.Service.CreateComplaint(r.Context(), complaint)
	if err != nil {
		if isForeignKeyConstraintError(err) {
			http.Error(w, "Unknown listing or user", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *ComplaintHandler) GetComplaints(w http.ResponseWriter, r *http.Request) {
	onlyOpen := r.URL.Query().Get("open") == "true"
	complaints, err := h.Service.GetComplaints(r.Context(), onlyOpen)
	if err != nil {
		http.Error(w, "Failed to fetch complaints", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(complaints)
}

func (h *ComplaintHandler) ResolveComplaint(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.ResolveComplaint(r.Context(), getIntParam(r, "id")); err != nil {
		http.Error(w, "Failed to resolve complaint", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ComplaintHandler) DeleteComplaint(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteComplaint(r.Context(), getIntParam(r, "id")); err != nil {
		http.Error(w, "Failed to delete complaint", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
