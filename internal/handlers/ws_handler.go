package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/spincrate/backend/internal/middleware"
	"github.com/spincrate/backend/internal/realtime"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades clients into the realtime notification channel
type WSHandler struct {
	hub *realtime.Hub
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(hub *realtime.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// RegisterWSRoutes registers the realtime endpoint
func (h *WSHandler) RegisterWSRoutes(g *echo.Group) {
	g.GET("/ws", h.Connect)
}

// Connect authenticates the token query parameter, joins the account's
// room, and holds the connection until the client disconnects. The server
// never expects inbound messages; the read loop only detects closure.
func (h *WSHandler) Connect(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
	}

	claims, err := middleware.ParseToken(token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("realtime: failed to upgrade websocket: %v", err)
		return err
	}
	defer ws.Close()

	h.hub.Register(claims.UserID, ws)
	defer h.hub.Unregister(claims.UserID, ws)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
	return nil
}
