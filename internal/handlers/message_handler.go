package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/services"
)

type MessageHandler struct {
	Service *services.MessageService
}

func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}

	msg, err := h.Service.SendMessage(r.Context(), userIDFromContext(r), getIntParam(r, "id"), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrChatNotFound):
			http.Error(w, "Chat not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Not your chat", http.StatusForbidden)
		default:
			http.Error(w, "Failed to send message", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(msg)
}

func (h *MessageHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	messages, err := h.Service.GetMessages(r.Context(), getIntParam(r, "id"), userIDFromContext(r), page, pageSize)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrChatNotFound):
			http.Error(w, "Chat not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Not your chat", http.StatusForbidden)
		default:
			http.Error(w, "Failed to fetch messages", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(messages)
}

func (h *MessageHandler) MarkChatRead(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.MarkChatRead(r.Context(), getIntParam(r, "id"), userIDFromContext(r)); err != nil {
		http.Error(w, "Failed to mark chat read", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *MessageHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteMessage(r.Context(), getIntParam(r, "id"), userIDFromContext(r))
	if err != nil {
		if errors.Is(err, models.ErrMessageNotFound) {
			http.Error(w, "Message not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete message", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
