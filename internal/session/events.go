package session

import (
	"encoding/json"
	"time"

	"github.com/mark3labs/drafter/internal/nats"
)

// Event is one entry in the append-only session event log. Every mutating
// session operation is recorded as an event; replaying the log through
// Apply reconstructs the session state.
type Event struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Session   string          `json:"session"`
	Type      string          `json:"type"`   // content, message, control
	Action    string          `json:"action"` // set, commit, undo, redo, clear, append, stream, finalize, reset
	Meta      json.RawMessage `json:"meta,omitempty"`
	Data      string          `json:"data,omitempty"`
}

// Content event actions.
const (
	ActionSet    = "set"
	ActionCommit = "commit"
	ActionUndo   = "undo"
	ActionRedo   = "redo"
	ActionClear  = "clear"
)

// Message event actions.
const (
	ActionAppend   = "append"
	ActionStream   = "stream"
	ActionFinalize = "finalize"
)

// Control event actions.
const (
	ActionReset = "reset"
)

// Apply reduces one event into the session state. Unknown types and
// actions are ignored so newer logs replay on older binaries.
func (s *Session) Apply(event Event) {
	switch event.Type {
	case nats.EventTypeContent:
		s.applyContentEvent(event)
	case nats.EventTypeMessage:
		s.applyMessageEvent(event)
	case nats.EventTypeControl:
		s.applyControlEvent(event)
	}
}

func (s *Session) applyContentEvent(event Event) {
	switch event.Action {
	case ActionSet:
		s.SetContent(event.Data)
	case ActionCommit:
		// Commit events carry the committed content so a replay does not
		// depend on a preceding set event having survived retention.
		s.SetContent(event.Data)
		s.Commit()
	case ActionUndo:
		s.Undo()
	case ActionRedo:
		s.Redo()
	case ActionClear:
		s.Clear()
	}
}

func (s *Session) applyMessageEvent(event Event) {
	switch event.Action {
	case ActionAppend:
		var meta struct {
			ID   string `json:"id"`
			Role Role   `json:"role"`
		}
		json.Unmarshal(event.Meta, &meta)
		if meta.Role == "" {
			meta.Role = RoleUser
		}
		s.AppendMessage(ChatMessage{
			ID:        meta.ID,
			Role:      meta.Role,
			Content:   event.Data,
			Timestamp: event.Timestamp,
		})

	case ActionStream:
		s.upsertStreaming(event.Data, event.Timestamp)

	case ActionFinalize:
		var meta struct {
			ID string `json:"id"`
		}
		json.Unmarshal(event.Meta, &meta)
		s.finalizeLast(meta.ID, event.Data, event.Timestamp)

	case ActionClear:
		s.ClearMessages()
	}
}

func (s *Session) applyControlEvent(event Event) {
	switch event.Action {
	case ActionReset:
		s.Clear()
		s.ClearMessages()
	}
}
