package main

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Message is the wire envelope shared by both directions.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// EventGateway delivers events out of the core. Delivery is fire-and-forget:
// the core never blocks on, or learns about, transport failures.
type EventGateway interface {
	// Broadcast sends msg to every player in the session.
	Broadcast(s *Session, msg Message)
	// BroadcastExcept sends msg to every player except one.
	BroadcastExcept(s *Session, exceptID string, msg Message)
	// Send delivers a private event to a single player.
	Send(playerID string, msg Message)
}

// wsGateway is the websocket-backed gateway. It owns the playerID -> conn
// map so session state stays free of transport handles.
type wsGateway struct {
	mu    sync.Mutex
	conns map[string]*websocket.Conn
}

func newWSGateway() *wsGateway {
	return &wsGateway{conns: make(map[string]*websocket.Conn)}
}

func (g *wsGateway) register(playerID string, conn *websocket.Conn) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.conns[playerID] = conn
}

func (g *wsGateway) unregister(playerID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.conns, playerID)
}

func (g *wsGateway) Broadcast(s *Session, msg Message) {
	g.BroadcastExcept(s, "", msg)
}

func (g *wsGateway) BroadcastExcept(s *Session, exceptID string, msg Message) {
	jsonData, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling %s event: %v\n", msg.Type, err)
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for _, p := range s.Players {
		if p.ID == exceptID {
			continue
		}
		conn, ok := g.conns[p.ID]
		if !ok {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, jsonData); err != nil {
			log.Printf("Error broadcasting to player %s: %v\n", p.ID, err)
		}
	}
}

func (g *wsGateway) Send(playerID string, msg Message) {
	jsonData, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling %s event: %v\n", msg.Type, err)
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	conn, ok := g.conns[playerID]
	if !ok {
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, jsonData); err != nil {
		log.Printf("Error sending %s to player %s: %v\n", msg.Type, playerID, err)
	}
}
