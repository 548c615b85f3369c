package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/iliyamo/hotel-booking-admin/internal/queue"
	"github.com/iliyamo/hotel-booking-admin/internal/utils"
)

const secret = "test-secret"

func newServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(secret, log.New("test"))
	e := echo.New()
	e.GET("/ws", hub.Handle)
	srv := httptest.NewServer(e)
	t.Cleanup(func() {
		_ = hub.Close()
		srv.Close()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, adminID uint64) *websocket.Conn {
	t.Helper()
	tok, err := utils.NewAccessToken(secret, adminID, "ADMIN", 5)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + tok.Token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHandleRejectsMissingToken(t *testing.T) {
	hub := NewHub(secret, log.New("test"))
	defer hub.Close()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/ws?token=garbage", nil)
	rec := httptest.NewRecorder()
	if err := hub.Handle(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestEventsReachOnlyTheOwner(t *testing.T) {
	hub, srv := newServer(t)
	owner := dial(t, srv, 1)
	other := dial(t, srv, 2)

	deadline := time.Now().Add(2 * time.Second)
	for hub.Sessions() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.Sessions() != 2 {
		t.Fatalf("sessions = %d, want 2", hub.Sessions())
	}

	if err := hub.HandleBookingEvent(queue.BookingEvent{Type: queue.EventBookingCreated, BookingID: 9, OwnerID: 1}); err != nil {
		t.Fatalf("HandleBookingEvent: %v", err)
	}

	_ = owner.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := owner.ReadMessage()
	if err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if !strings.Contains(string(msg), `"booking_id":9`) {
		t.Fatalf("message = %s", msg)
	}

	_ = other.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := other.ReadMessage(); err == nil {
		t.Fatalf("another admin received the event")
	}
}
