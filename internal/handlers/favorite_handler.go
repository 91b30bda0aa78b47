package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/services"
)

type FavoriteHandler struct {
	Service *services.FavoriteService
}

func (h *FavoriteHandler) AddToFavorites(w http.ResponseWriter, r *http.Request) {
	var fav models.Favorite
	if err := json.NewDecoder(r.Body).Decode(&fav); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	fav.UserID = userIDFromContext(r)

	if err := h.Service.AddToFavorites(r.Context(), fav); err != nil {
		switch {
		case errors.Is(err, models.ErrPropertyNotFound), errors.Is(err, models.ErrServiceNotFound):
			http.Error(w, "Listing not found", http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *FavoriteHandler) RemoveFromFavorites(w http.ResponseWriter, r *http.Request) {
	listingType := getParam(r, "type")
	err := h.Service.RemoveFromFavorites(r.Context(), userIDFromContext(r), listingType, getIntParam(r, "id"))
	if err != nil {
		http.Error(w, "Failed to remove favorite", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FavoriteHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.Service.GetFavorites(r.Context(), userIDFromContext(r))
	if err != nil {
		http.Error(w, "Failed to fetch favorites", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(favorites)
}
