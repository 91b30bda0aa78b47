package main

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"nyumbaBack/internal/models"
)

const (
	readLimit          = 1 << 20
	readDeadline       = 120 * time.Second
	writeDeadline      = 5 * time.Second
	pingInterval       = 15 * time.Second
	firstHelloDeadline = 30 * time.Second
)

type directMsg struct {
	userID  int
	payload any
}

type unreg struct {
	userID int
	conn   *websocket.Conn
}

// WebSocketManager keeps one live socket per user. The Run loop owns all map
// writes; the mutex only guards reads from other goroutines (IsOnline).
type WebSocketManager struct {
	mu         sync.RWMutex
	clients    map[int]*websocket.Conn
	broadcast  chan models.Message
	direct     chan directMsg
	register   chan wsClient
	unregister chan unreg
}

type wsClient struct {
	ID     int
	Socket *websocket.Conn
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[int]*websocket.Conn),
		broadcast:  make(chan models.Message),
		direct:     make(chan directMsg),
		register:   make(chan wsClient),
		unregister: make(chan unreg),
	}
}

// SendDirect implements services.DirectSender. Non-blocking for callers.
func (ws *WebSocketManager) SendDirect(userID int, msg models.Message) {
	ws.send(userID, msg)
}

// send queues any payload for the Run loop, which owns all socket writes.
func (ws *WebSocketManager) send(userID int, payload any) {
	go func() {
		ws.direct <- directMsg{userID: userID, payload: payload}
	}()
}

func (ws *WebSocketManager) IsOnline(userID int) bool {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	_, ok := ws.clients[userID]
	return ok
}

func (ws *WebSocketManager) put(userID int, conn *websocket.Conn) {
	ws.mu.Lock()
	ws.clients[userID] = conn
	ws.mu.Unlock()
}

func (ws *WebSocketManager) remove(userID int) {
	ws.mu.Lock()
	delete(ws.clients, userID)
	ws.mu.Unlock()
}

func (ws *WebSocketManager) Run() {
	for {
		select {
		case client := <-ws.register:
			if old, ok := ws.clients[client.ID]; ok && old != nil && old != client.Socket {
				_ = old.Close()
			}
			ws.put(client.ID, client.Socket)
			log.Printf("WS register user=%d", client.ID)

		case u := <-ws.unregister:
			if cur, ok := ws.clients[u.userID]; ok && cur == u.conn {
				_ = cur.Close()
				ws.remove(u.userID)
				log.Printf("WS unregister user=%d", u.userID)
			}

		case msg := <-ws.broadcast:
			for id, conn := range ws.clients {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(msg); err != nil {
					log.Printf("WS broadcast error to=%d: %v", id, err)
					_ = conn.Close()
					ws.remove(id)
				}
			}

		case dm := <-ws.direct:
			if conn, ok := ws.clients[dm.userID]; ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(dm.payload); err != nil {
					log.Printf("WS direct send error to=%d: %v", dm.userID, err)
					_ = conn.Close()
					ws.remove(dm.userID)
				}
			} else {
				log.Printf("WS direct skip: user=%d offline", dm.userID)
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsHello struct {
	UserID int    `json:"user_id"`
	Token  string `json:"token"`
}

type wsFrame struct {
	ChatID int    `json:"chat_id"`
	Text   string `json:"text"`
}

// WebSocketHandler upgrades the connection, authenticates the hello frame
// and then treats every subsequent frame as a chat message.
func (app *application) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WS upgrade error: %v", err)
		return
	}
	conn.SetReadLimit(readLimit)

	_ = conn.SetReadDeadline(time.Now().Add(firstHelloDeadline))
	var hello wsHello
	if err := conn.ReadJSON(&hello); err != nil {
		log.Printf("WS hello read error: %v", err)
		_ = conn.Close()
		return
	}

	userID, _, err := app.tokens.Parse(hello.Token)
	if err != nil || (hello.UserID != 0 && hello.UserID != userID) {
		_ = conn.WriteJSON(map[string]string{"error": "unauthorized"})
		_ = conn.Close()
		return
	}

	app.wsManager.register <- wsClient{ID: userID, Socket: conn}

	_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readDeadline))
	})

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	go func() {
		defer func() {
			close(done)
			app.wsManager.unregister <- unreg{userID: userID, conn: conn}
		}()
		for {
			var frame wsFrame
			if err := conn.ReadJSON(&frame); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("WS read error user=%d: %v", userID, err)
				}
				return
			}
			if frame.ChatID == 0 || frame.Text == "" {
				continue
			}

			// the request context dies with the handler; messages outlive it
			msg, err := app.messageService.SendMessage(context.Background(), userID, frame.ChatID, frame.Text)
			if err != nil {
				// all socket writes go through the Run loop
				app.wsManager.send(userID, map[string]string{"error": err.Error()})
				continue
			}
			// echo the stored message back to the sender
			app.wsManager.send(userID, msg)
		}
	}()
}
