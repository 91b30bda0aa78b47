package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/services"
)

type CityHandler struct {
	Service *services.CityService
}

func (h *CityHandler) CreateCity(w http.ResponseWriter, r *http.Request) {
	var city models.City
	if err := json.NewDecoder(r.Body).Decode(&city); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	created, err := h.Service.CreateCity(r.Context(), city)
	if err != nil {
		http.Error(w, "Failed to create city", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *CityHandler) GetCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.Service.GetCities(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch cities", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(cities)
}

func (h *CityHandler) GetCityByID(w http.ResponseWriter, r *http.Request) {
	city, err := h.Service.GetCityByID(r.Context(), getIntParam(r, "id"))
	if err != nil {
		http.Error(w, "City not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(city)
}

func (h *CityHandler) UpdateCity(w http.ResponseWriter, r *http.Request) {
	var city models.City
	if err := json.NewDecoder(r.Body).Decode(&city); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	city.ID = getIntParam(r, "id")
	if err := h.Service.UpdateCity(r.Context(), city); err != nil {
		if errors.Is(err, models.ErrCityNotFound) {
			http.Error(w, "City not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update city", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(city)
}

func (h *CityHandler) DeleteCity(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteCity(r.Context(), getIntParam(r, "id")); err != nil {
		http.Error(w, "Failed to delete city", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
