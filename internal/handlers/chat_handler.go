package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/services"
)

type ChatHandler struct {
	Service *services.ChatService
}

func (h *ChatHandler) OpenChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID int `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}

	chat, err := h.Service.GetOrCreateChat(r.Context(), userIDFromContext(r), req.UserID)
	if err != nil {
		http.Error(w, "Failed to open chat", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(chat)
}

func (h *ChatHandler) GetChatByID(w http.ResponseWriter, r *http.Request) {
	chat, err := h.Service.GetChatByID(r.Context(), getIntParam(r, "id"), userIDFromContext(r))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrChatNotFound):
			http.Error(w, "Chat not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Not your chat", http.StatusForbidden)
		default:
			http.Error(w, "Failed to fetch chat", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(chat)
}

func (h *ChatHandler) GetConversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.Service.GetConversations(r.Context(), userIDFromContext(r))
	if err != nil {
		http.Error(w, "Failed to fetch conversations", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(conversations)
}

func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteChat(r.Context(), getIntParam(r, "id"), userIDFromContext(r))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrChatNotFound):
			http.Error(w, "Chat not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Not your chat", http.StatusForbidden)
		default:
			http.Error(w, "Failed to delete chat", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
