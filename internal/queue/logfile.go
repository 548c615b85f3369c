package queue

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileSink appends one human-friendly line per event to <dir>/booking.log.
type FileSink struct {
	path string
	mu   sync.Mutex
}

// NewFileSink returns a sink writing to dir/booking.log.  The directory is
// created on first write.
func NewFileSink(dir string) *FileSink {
	return &FileSink{path: filepath.Join(dir, "booking.log")}
}

// Path returns the log file location.
func (s *FileSink) Path() string { return s.path }

func (s *FileSink) HandleBookingEvent(ev BookingEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(FormatLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLine renders ev as a single newline-terminated log line.
func FormatLine(ev BookingEvent) string {
	verb := "Booking created"
	if ev.Type == EventBookingCancelled {
		verb = "Booking cancelled"
	}
	rooms := make([]string, len(ev.RoomNumbers))
	for i, n := range ev.RoomNumbers {
		rooms[i] = fmt.Sprint(n)
	}
	return fmt.Sprintf("[%s] %s | booking_id=%d | hotel_id=%d | hotel=%q | room_type=%q | rooms=[%s] | stay=%s..%s | customer=%q | total=%d paise\n",
		ev.OccurredAt, verb, ev.BookingID, ev.HotelID, ev.HotelName, ev.RoomType,
		strings.Join(rooms, ","), ev.StartDate, ev.EndDate, ev.CustomerName, ev.TotalAmountCents)
}
