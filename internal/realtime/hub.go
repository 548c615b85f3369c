// Package realtime pushes booking events to the dashboards of the hotel
// owner over websockets.
package realtime

import (
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/olahol/melody"

	"github.com/iliyamo/hotel-booking-admin/internal/queue"
	"github.com/iliyamo/hotel-booking-admin/internal/utils"
)

const adminKey = "admin_id"

// Hub authenticates websocket clients with their access token and fans
// booking events out to the owner's sessions only.
type Hub struct {
	m      *melody.Melody
	secret string
	log    *log.Logger
}

func NewHub(secret string, logger *log.Logger) *Hub {
	m := melody.New()
	h := &Hub{m: m, secret: secret, log: logger}
	m.HandleConnect(func(s *melody.Session) {
		id, _ := s.Get(adminKey)
		h.log.Debugf("ws: admin %v connected", id)
	})
	m.HandleError(func(s *melody.Session, err error) {
		h.log.Debugf("ws: session error: %v", err)
	})
	return h
}

// Handle upgrades GET /ws?token=<jwt>.  Browsers cannot set headers on a
// websocket handshake, so the token travels in the query string.
func (h *Hub) Handle(c echo.Context) error {
	claims, err := utils.ParseAccessToken(h.secret, c.QueryParam("token"))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}
	return h.m.HandleRequestWithKeys(c.Response(), c.Request(), map[string]any{adminKey: claims.AdminID})
}

// HandleBookingEvent implements queue.Sink.
func (h *Hub) HandleBookingEvent(ev queue.BookingEvent) error {
	msg, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return h.m.BroadcastFilter(msg, func(s *melody.Session) bool {
		return sessionOwner(s) == ev.OwnerID
	})
}

func sessionOwner(s *melody.Session) uint64 {
	v, ok := s.Get(adminKey)
	if !ok {
		return 0
	}
	id, _ := v.(uint64)
	return id
}

// Sessions returns the number of connected clients.
func (h *Hub) Sessions() int { return h.m.Len() }

// Close disconnects every client.
func (h *Hub) Close() error { return h.m.Close() }
