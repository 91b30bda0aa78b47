package handlers

import (
	"encoding/json"
	"net/http"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/services"
)

type SubscriptionHandler struct {
	Service *services.SubscriptionService
}

type planInfo struct {
	Plan   string  `json:"plan"`
	Amount float64 `json:"amount"`
	Slots  int     `json:"slots"`
}

// GetPlans lists available subscription plans with pricing.
func (h *SubscriptionHandler) GetPlans(w http.ResponseWriter, r *http.Request) {
	plans := make([]planInfo, 0, 3)
	for _, name := range []string{models.PlanBasic, models.PlanStandard, models.PlanPremium} {
		spec, _ := services.PlanFor(name)
		plans = append(plans, planInfo{Plan: name, Amount: spec.Amount, Slots: spec.Slots})
	}
	json.NewEncoder(w).Encode(plans)
}

func (h *SubscriptionHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Service.GetProfile(r.Context(), userIDFromContext(r))
	if err != nil {
		http.Error(w, "Failed to fetch subscription", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(profile)
}
