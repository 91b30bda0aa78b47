package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"nyumbaBack/internal/models"
)

// Every payload, chat messages and error frames alike, reaches the socket
// through the Run loop so it stays the only writer besides the ping ticker.
func TestDirectPayloadsGoThroughRunLoop(t *testing.T) {
	m := NewWebSocketManager()
	go m.Run()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		m.register <- wsClient{ID: 7, Socket: conn}
	}))
	defer srv.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	deadline := time.Now().Add(2 * time.Second)
	for !m.IsOnline(7) {
		if time.Now().After(deadline) {
			t.Fatal("socket never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	m.SendDirect(7, models.Message{ChatID: 3, Text: "hello"})

	var got models.Message
	_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := client.ReadJSON(&got); err != nil {
		t.Fatalf("read message: %v", err)
	}
	if got.ChatID != 3 || got.Text != "hello" {
		t.Errorf("message = %+v", got)
	}

	m.send(7, map[string]string{"error": "chat not found"})

	var frame map[string]string
	_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := client.ReadJSON(&frame); err != nil {
		t.Fatalf("read error frame: %v", err)
	}
	if frame["error"] != "chat not found" {
		t.Errorf("error frame = %v", frame)
	}
}
