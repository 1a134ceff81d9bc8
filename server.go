package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // The Discord Activity iframe origin varies per deployment
	},
}

func wsHandler(st *SessionStore, gw *wsGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Query("username")
		if username == "" {
			username = "Anonymous"
		}
		sessionID := c.Query("room")
		requestHost := c.Query("host") == "true"

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}
		defer conn.Close()

		_, player, err := st.CreateOrJoinSession(sessionID, username, requestHost)
		if err != nil {
			payload, _ := json.Marshal(Message{
				Type: "error",
				Data: map[string]interface{}{
					"code":    errorCode(err),
					"message": err.Error(),
				},
			})
			conn.WriteMessage(websocket.TextMessage, payload)
			return
		}

		// Joined before registering would drop room_joined, so the gateway
		// learns about the connection first and join re-sends the snapshot.
		gw.register(player.ID, conn)
		st.sendJoinSnapshot(player.ID)

		defer func() {
			st.LeaveSession(player.ID)
			gw.unregister(player.ID)
		}()

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				log.Printf("read error for %s: %v\n", player.ID, err)
				return
			}

			var msg Message
			if err := json.Unmarshal(raw, &msg); err != nil {
				log.Printf("unmarshal error from %s: %v\n", player.ID, err)
				continue
			}

			handleClientMessage(st, gw, player.ID, msg)
		}
	}
}

// handleClientMessage dispatches one inbound envelope. Failures go back to
// the acting player only; nobody else hears about them.
func handleClientMessage(st *SessionStore, gw EventGateway, playerID string, msg Message) {
	data, _ := msg.Data.(map[string]interface{})

	var err error
	switch msg.Type {
	case "start_game":
		err = st.StartGame(playerID)

	case "player_move":
		pos, ok := data["position"].(map[string]interface{})
		if !ok {
			return
		}
		x, _ := pos["x"].(float64)
		y, _ := pos["y"].(float64)
		err = st.MovePlayer(playerID, Vector2D{X: x, Y: y})

	case "change_room":
		roomID, ok := data["roomId"].(string)
		if !ok || roomID == "" {
			return
		}
		err = st.ChangeRoom(playerID, roomID)

	case "use_ability":
		abilityID, ok := data["abilityId"].(string)
		if !ok || abilityID == "" {
			return
		}
		targetID, _ := data["targetId"].(string)
		_, err = st.UseAbility(playerID, abilityID, targetID)

	case "send_message":
		text, _ := data["message"].(string)
		scope, _ := data["type"].(string)
		targetID, _ := data["targetId"].(string)
		err = st.SendChat(playerID, text, scope, targetID)

	default:
		log.Printf("🤔 Unknown message type %q from %s\n", msg.Type, playerID)
	}

	if err != nil {
		log.Printf("⚠️ %s from %s rejected: %v\n", msg.Type, playerID, err)
		gw.Send(playerID, Message{
			Type: "error",
			Data: map[string]interface{}{
				"code":    errorCode(err),
				"message": err.Error(),
			},
		})
	}
}

// sendJoinSnapshot re-emits room_joined once the connection is registered.
func (st *SessionStore) sendJoinSnapshot(playerID string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, p, err := st.locatePlayer(playerID)
	if err != nil {
		return
	}
	st.gateway.Send(p.ID, Message{
		Type: "room_joined",
		Data: map[string]interface{}{
			"roomId": s.ID,
			"player": p.view(true),
			"room":   s.view(p.ID, st.clock()),
		},
	})
}

func setupRouter(st *SessionStore, gw *wsGateway) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(gin.LoggerWithWriter(os.Stdout))
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/ws", wsHandler(st, gw))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, st.ListSessions())
	})

	return router
}

func main() {
	cfg := loadConfig()

	gateway := newWSGateway()
	store := OpenSessionStore(gateway)
	defer store.Close()

	go store.runTicker(cfg.TickInterval)

	log.Printf("🎭 Masquerade Mansion server starting on port %s\n", cfg.Port)

	router := setupRouter(store, gateway)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
