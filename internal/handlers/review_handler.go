package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/services"
)

type ReviewHandler struct {
	Service *services.ReviewService
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	review.UserID = userIDFromContext(r)

	created, err := h.Service.CreateReview(r.Context(), review)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrAlreadyReviewed):
			http.Error(w, "You have already reviewed this listing", http.StatusConflict)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Cannot review your own listing", http.StatusForbidden)
		case errors.Is(err, models.ErrPropertyNotFound), errors.Is(err, models.ErrServiceNotFound):
			http.Error(w, "Listing not found", http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *ReviewHandler) GetReviewsByListing(w http.ResponseWriter, r *http.Request) {
	listingType := getParam(r, "type")
	reviews, err := h.Service.GetReviewsByListing(r.Context(), listingType, getIntParam(r, "id"))
	if err != nil {
		http.Error(w, "Failed to fetch reviews", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(reviews)
}

func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	review.ID = getIntParam(r, "id")
	review.UserID = userIDFromContext(r)

	updated, err := h.Service.UpdateReview(r.Context(), review)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrReviewNotFound):
			http.Error(w, "Review not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Not your review", http.StatusForbidden)
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	json.NewEncoder(w).Encode(updated)
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	isAdmin := roleFromContext(r) == models.RoleAdmin
	err := h.Service.DeleteReview(r.Context(), getIntParam(r, "id"), userIDFromContext(r), isAdmin)
	if err != nil {
		if errors.Is(err, models.ErrReviewNotFound) {
			http.Error(w, "Review not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete review", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
