package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"photo-hunt/internal/feed"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	wsWriteTimeout = 10 * time.Second
	refreshTimeout = 10 * time.Second
)

type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) send(payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// wsHub groups websocket clients by game. The first client of a game opens
// a feed subscription and the last one to leave cancels it.
type wsHub struct {
	mu      sync.Mutex
	groups  map[uint]map[*wsClient]struct{}
	cancels map[uint]func()
}

func newWSHub() *wsHub {
	return &wsHub{
		groups:  make(map[uint]map[*wsClient]struct{}),
		cancels: make(map[uint]func()),
	}
}

func (h *wsHub) Add(gameID uint, client *wsClient, subscribe func() func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[gameID]
	if group == nil {
		group = make(map[*wsClient]struct{})
		h.groups[gameID] = group
		if subscribe != nil {
			h.cancels[gameID] = subscribe()
		}
	}
	group[client] = struct{}{}
}

func (h *wsHub) Remove(gameID uint, client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[gameID]
	if group == nil {
		return
	}
	if _, ok := group[client]; !ok {
		return
	}
	delete(group, client)
	_ = client.conn.Close()
	if len(group) > 0 {
		return
	}
	delete(h.groups, gameID)
	if cancel := h.cancels[gameID]; cancel != nil {
		cancel()
	}
	delete(h.cancels, gameID)
}

func (h *wsHub) Count(gameID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.groups[gameID])
}

func (h *wsHub) Broadcast(gameID uint, payload any) {
	h.mu.Lock()
	group := h.groups[gameID]
	clients := make([]*wsClient, 0, len(group))
	for client := range group {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	for _, client := range clients {
		if err := client.send(payload); err != nil {
			h.Remove(gameID, client)
		}
	}
}

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (s *Server) handleWebsocket(c *gin.Context) {
	game, err := s.findGameByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeStoreError(c, err, "failed to load game")
		return
	}
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	log.Printf("ws connected game_id=%d remote=%s", game.ID, c.Request.RemoteAddr)
	client := &wsClient{conn: conn}
	gameID := game.ID
	s.ws.Add(gameID, client, func() func() {
		if s.feed == nil {
			return nil
		}
		return s.feed.Subscribe(gameID, s.onClaimChange)
	})
	state, err := s.loadGameState(c.Request.Context(), gameID)
	if err != nil {
		log.Printf("ws snapshot failed game_id=%d error=%v", gameID, err)
		s.ws.Remove(gameID, client)
		return
	}
	message := s.snapshot(game, state)
	message["type"] = "snapshot"
	if err := client.send(message); err != nil {
		s.ws.Remove(gameID, client)
		return
	}
	go s.readWS(gameID, client)
}

func (s *Server) readWS(gameID uint, client *wsClient) {
	defer s.ws.Remove(gameID, client)
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			log.Printf("ws disconnected game_id=%d error=%v", gameID, err)
			return
		}
	}
}

func (s *Server) onClaimChange(change feed.ClaimChange) {
	go s.refreshClaims(change.GameID)
}

// refreshClaims re-reads every claim of the game and pushes claims and
// scores to its clients. Refreshes run one at a time so the last push
// always reflects the latest committed state.
func (s *Server) refreshClaims(gameID uint) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	if s.ws.Count(gameID) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	state, err := s.loadGameState(ctx, gameID)
	if err != nil {
		log.Printf("claims refresh failed game_id=%d error=%v", gameID, err)
		return
	}
	s.ws.Broadcast(gameID, s.claimsMessage(state))
}

// refreshGame pushes a full snapshot after admin edits that change what
// players see or how claims score, such as keyword points or the team list.
func (s *Server) refreshGame(gameID uint) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	if s.ws.Count(gameID) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	game, err := s.findGameByID(ctx, gameID)
	if err != nil {
		log.Printf("game refresh failed game_id=%d error=%v", gameID, err)
		return
	}
	state, err := s.loadGameState(ctx, gameID)
	if err != nil {
		log.Printf("game refresh failed game_id=%d error=%v", gameID, err)
		return
	}
	message := s.snapshot(game, state)
	message["type"] = "snapshot"
	s.ws.Broadcast(gameID, message)
}
