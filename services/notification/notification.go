package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// Tên các event được phát ra
const (
	EventUserRegistered         = "user.registered"
	EventPasswordResetRequested = "password.reset_requested"
	EventProviderSubmitted      = "provider.submitted"
	EventProviderReviewed       = "provider.reviewed"
)

type Event struct {
	Name       string                 `json:"event"`
	OccurredAt time.Time              `json:"occurredAt"`
	Payload    map[string]interface{} `json:"payload"`
}

func NewEvent(name string, payload map[string]interface{}) Event {
	return Event{Name: name, OccurredAt: time.Now().UTC(), Payload: payload}
}

// Publisher phát event ra ngoài. Lỗi publish không được làm hỏng request.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// MultiPublisher gửi event tới tất cả publisher, trả về lỗi đầu tiên
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, evt Event) error {
	var first error
	for _, p := range m {
		if err := p.Publish(ctx, evt); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// MelodyService đẩy event tới các websocket session của admin
type MelodyService struct {
	m      *melody.Melody
	topics map[string]bool
}

func NewMelodyService(m *melody.Melody, topics ...string) *MelodyService {
	set := make(map[string]bool, len(topics))
	for _, t := range topics {
		set[t] = true
	}
	return &MelodyService{m: m, topics: set}
}

func (s *MelodyService) Publish(_ context.Context, evt Event) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	if len(s.topics) > 0 && !s.topics[evt.Name] {
		return nil
	}
	msg, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return s.m.BroadcastFilter(msg, func(sess *melody.Session) bool {
		role, ok := sess.Get("role")
		return ok && role == "admin"
	})
}
