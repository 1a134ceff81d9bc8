package main

import (
	"log"

	"github.com/google/uuid"
)

// Action handlers. Every exported method takes the store lock, mutates (or
// rejects without mutating) and emits its events before releasing it, so
// each client message is applied atomically and events leave in order.

// CreateOrJoinSession seats a player. A known session id joins it (or
// fails when full); an unknown or absent id creates a fresh session with
// the caller seated, matching the quick-match flow.
func (st *SessionStore) CreateOrJoinSession(sessionID, username string, requestHost bool) (*Session, *Player, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.closed {
		return nil, nil, ErrStoreClosed
	}

	now := st.clock()

	s, exists := st.sessions[sessionID]
	if exists {
		if len(s.Players) >= s.Settings.MaxPlayers {
			return nil, nil, ErrSessionFull
		}
	} else {
		id := sessionID
		if id == "" {
			id = newSessionID()
		}
		s = &Session{
			ID:       id,
			Phase:    PhaseLobby,
			Settings: defaultSettings(),
		}
		st.sessions[id] = s
		log.Printf("🏰 Created session %s\n", id)
	}

	player := &Player{
		ID:           "player_" + uuid.NewString(),
		Username:     username,
		Costume:      defaultCostume(),
		CurrentRoom:  spawnRoomID,
		Position:     roomSpawnPoint(spawnRoomID),
		Status:       StatusAlive,
		LastMovement: now,
	}
	if len(s.Players) == 0 || (requestHost && s.host() == nil) {
		player.IsHost = true
		log.Printf("👑 Player %s [%s] hosts session %s\n", username, player.ID, s.ID)
	}

	s.Players = append(s.Players, player)
	st.playerIndex[player.ID] = s.ID
	log.Printf("🔌 Player %s joined session %s (%d/%d)\n", username, s.ID, len(s.Players), s.Settings.MaxPlayers)

	st.gateway.Send(player.ID, Message{
		Type: "room_joined",
		Data: map[string]interface{}{
			"roomId": s.ID,
			"player": player.view(true),
			"room":   s.view(player.ID, now),
		},
	})
	st.gateway.BroadcastExcept(s, player.ID, Message{
		Type: "player_joined",
		Data: map[string]interface{}{"player": player.view(false)},
	})

	return s, player, nil
}

// LeaveSession removes a player, promoting the next joiner when the host
// leaves and destroying the session once it empties. Disconnects use the
// same path as voluntary leaves.
func (st *SessionStore) LeaveSession(playerID string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sessionID, ok := st.playerIndex[playerID]
	if !ok {
		return
	}
	delete(st.playerIndex, playerID)

	s := st.sessions[sessionID]
	if s == nil {
		return
	}

	var leaving *Player
	for i, p := range s.Players {
		if p.ID == playerID {
			leaving = p
			s.Players = append(s.Players[:i], s.Players[i+1:]...)
			break
		}
	}
	if leaving == nil {
		return
	}
	log.Printf("❌ Player %s left session %s (%d remaining)\n", leaving.Username, s.ID, len(s.Players))

	if len(s.Players) == 0 {
		delete(st.sessions, sessionID)
		log.Printf("🗑️ Session %s destroyed\n", sessionID)
		return
	}

	st.gateway.Broadcast(s, Message{
		Type: "player_left",
		Data: map[string]interface{}{"playerId": playerID},
	})

	if leaving.IsHost {
		next := s.Players[0]
		next.IsHost = true
		log.Printf("👑 Player %s [%s] is the new host of %s\n", next.Username, next.ID, s.ID)
		st.gateway.Broadcast(s, Message{
			Type: "new_host",
			Data: map[string]interface{}{"playerId": next.ID},
		})
	}
}

// StartGame deals roles and opens the mansion. Host-only, lobby-only, and
// needs at least two guests.
func (st *SessionStore) StartGame(playerID string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, p, err := st.locatePlayer(playerID)
	if err != nil {
		return err
	}
	if !p.IsHost {
		return ErrNotHost
	}
	if len(s.Players) < 2 {
		return ErrNotEnoughPlayers
	}
	if s.Phase != PhaseLobby {
		return ErrWrongPhase
	}

	now := st.clock()

	assignRoles(s)
	for _, player := range s.Players {
		player.Fear = newFearState(defaultMaxFear, s.Settings.FearDecayRate, now)
	}

	if err := s.advancePhase(PhaseExploration); err != nil {
		return err
	}
	s.StartTime = now
	s.EndsAt = now.Add(s.Settings.GameDuration)
	log.Printf("🎮 Game started in session %s with %d players\n", s.ID, len(s.Players))

	// Personalized per player: everyone sees the lobby, only you see your
	// own role.
	for _, player := range s.Players {
		st.gateway.Send(player.ID, Message{
			Type: "game_started",
			Data: map[string]interface{}{"room": s.view(player.ID, now)},
		})
	}
	return nil
}

// MovePlayer updates the rendering position. Room containment is the only
// gameplay-relevant part of position, so no bounds are checked here.
func (st *SessionStore) MovePlayer(playerID string, position Vector2D) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, p, err := st.locatePlayer(playerID)
	if err != nil {
		return err
	}
	if p.Status != StatusAlive {
		return ErrPlayerNotAlive
	}

	p.Position = position
	p.LastMovement = st.clock()

	st.gateway.BroadcastExcept(s, p.ID, Message{
		Type: "player_moved",
		Data: map[string]interface{}{
			"playerId":    p.ID,
			"position":    p.Position,
			"currentRoom": p.CurrentRoom,
		},
	})
	return nil
}

// ChangeRoom walks a player through a door. The static graph plus any
// active lockdown decides whether the door opens.
func (st *SessionStore) ChangeRoom(playerID, toRoomID string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, p, err := st.locatePlayer(playerID)
	if err != nil {
		return err
	}
	if p.Status != StatusAlive {
		return ErrPlayerNotAlive
	}

	conn := findConnection(p.CurrentRoom, toRoomID)
	if conn == nil {
		return ErrInvalidRoomTransition
	}
	if conn.Locked {
		return ErrRoomLocked
	}

	now := st.clock()
	if s.RoomEffects[p.CurrentRoom].lockedAt(now) || s.RoomEffects[toRoomID].lockedAt(now) {
		return ErrRoomLocked
	}

	p.CurrentRoom = toRoomID
	p.Position = roomSpawnPoint(toRoomID)
	p.LastMovement = now

	st.gateway.BroadcastExcept(s, p.ID, Message{
		Type: "player_moved",
		Data: map[string]interface{}{
			"playerId":    p.ID,
			"position":    p.Position,
			"currentRoom": p.CurrentRoom,
		},
	})
	return nil
}

// UseAbility validates and executes one ability use.
func (st *SessionStore) UseAbility(playerID, abilityID, targetID string) (AbilityResult, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, p, err := st.locatePlayer(playerID)
	if err != nil {
		return AbilityResult{AbilityID: abilityID}, err
	}
	return st.resolveAbility(s, p, abilityID, targetID, st.clock())
}

// SendChat relays a chat line, either to the whole session or privately.
func (st *SessionStore) SendChat(playerID, text, scope, targetID string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, p, err := st.locatePlayer(playerID)
	if err != nil {
		return err
	}
	if text == "" {
		return ErrEmptyMessage
	}

	msg := ChatMessage{
		ID:         "msg_" + uuid.NewString(),
		PlayerID:   p.ID,
		PlayerName: p.Username,
		Message:    text,
		Timestamp:  st.clock().UnixMilli(),
		Type:       "public",
	}

	if scope == "private" && targetID != "" {
		target := s.player(targetID)
		if target == nil {
			return ErrPlayerNotFound
		}
		msg.Type = "private"
		st.gateway.Send(target.ID, Message{Type: "private_message", Data: msg})
		st.gateway.Send(p.ID, Message{Type: "private_message", Data: msg})
		return nil
	}

	st.gateway.Broadcast(s, Message{Type: "chat_message", Data: msg})
	return nil
}

func (st *SessionStore) locatePlayer(playerID string) (*Session, *Player, error) {
	sessionID, ok := st.playerIndex[playerID]
	if !ok {
		return nil, nil, ErrPlayerNotFound
	}
	s := st.sessions[sessionID]
	if s == nil {
		return nil, nil, ErrSessionNotFound
	}
	p := s.player(playerID)
	if p == nil {
		return nil, nil, ErrPlayerNotFound
	}
	return s, p, nil
}
