package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType names the mutation an EntryEvent reports.
type EventType string

const (
	EntryCreated EventType = "entry.created"
	EntryUpdated EventType = "entry.updated"
	EntryDeleted EventType = "entry.deleted"
)

func (t EventType) Valid() bool {
	switch t {
	case EntryCreated, EntryUpdated, EntryDeleted:
		return true
	}
	return false
}

// EntryEvent is a lightweight change notification. It carries only the id;
// consumers fetch the current entry from the store.
type EntryEvent struct {
	Type      EventType `json:"type"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEntryEvent(t EventType, id string) *EntryEvent {
	return &EntryEvent{
		Type:      t,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *EntryEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// EntryEventFromJSON decodes and checks a message body.
func EntryEventFromJSON(data []byte) (*EntryEvent, error) {
	var msg EntryEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if !msg.Type.Valid() {
		return nil, fmt.Errorf("unknown event type %q", msg.Type)
	}
	if msg.ID == "" {
		return nil, fmt.Errorf("event without id")
	}
	return &msg, nil
}
