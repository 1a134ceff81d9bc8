package main

import (
	"testing"
	"time"
)

// recordingGateway captures every outbound event so tests can assert on
// delivery without a websocket in the loop.
type recordedEvent struct {
	Target string // player id for private sends, empty for broadcasts
	Except string
	Msg    Message
}

type recordingGateway struct {
	events []recordedEvent
}

func (g *recordingGateway) Broadcast(s *Session, msg Message) {
	g.events = append(g.events, recordedEvent{Msg: msg})
}

func (g *recordingGateway) BroadcastExcept(s *Session, exceptID string, msg Message) {
	g.events = append(g.events, recordedEvent{Except: exceptID, Msg: msg})
}

func (g *recordingGateway) Send(playerID string, msg Message) {
	g.events = append(g.events, recordedEvent{Target: playerID, Msg: msg})
}

func (g *recordingGateway) byType(eventType string) []recordedEvent {
	var out []recordedEvent
	for _, ev := range g.events {
		if ev.Msg.Type == eventType {
			out = append(out, ev)
		}
	}
	return out
}

func (g *recordingGateway) sentTo(playerID, eventType string) []recordedEvent {
	var out []recordedEvent
	for _, ev := range g.events {
		if ev.Target == playerID && ev.Msg.Type == eventType {
			out = append(out, ev)
		}
	}
	return out
}

func (g *recordingGateway) reset() {
	g.events = nil
}

type fakeClock struct {
	current time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.UnixMilli(1_700_000_000_000)}
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestStore(t *testing.T) (*SessionStore, *recordingGateway, *fakeClock) {
	t.Helper()
	gw := &recordingGateway{}
	st := OpenSessionStore(gw)
	clock := newFakeClock()
	st.clock = clock.Now
	t.Cleanup(st.Close)
	return st, gw, clock
}

// testPlayer builds an alive player with an initialized fear meter, placed
// directly without going through the join flow.
func testPlayer(id, roomID string, now time.Time) *Player {
	return &Player{
		ID:          id,
		Username:    id,
		Costume:     defaultCostume(),
		CurrentRoom: roomID,
		Position:    roomSpawnPoint(roomID),
		Status:      StatusAlive,
		Fear:        newFearState(defaultMaxFear, 2, now),
	}
}

func testSession(players ...*Player) *Session {
	return &Session{
		ID:       "TEST01",
		Players:  players,
		Phase:    PhaseExploration,
		Settings: defaultSettings(),
	}
}

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-6
}
