package session

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry in the session's chat list. An in-progress
// assistant reply is tagged with Streaming instead of a reserved ID value;
// streaming messages carry an empty ID and at most one exists in the list,
// always as the last element. Finalization assigns a fresh unique ID and
// clears the flag.
type ChatMessage struct {
	ID        string    `json:"id,omitempty"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Streaming bool      `json:"streaming,omitempty"`
}

// Messages returns a copy of the message list.
func (s *Session) Messages() []ChatMessage {
	out := make([]ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// AppendMessage appends a fully-formed message to the end of the list and
// returns the updated list. Messages without an ID are assigned one.
func (s *Session) AppendMessage(msg ChatMessage) []ChatMessage {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	s.messages = append(s.messages, msg)
	return s.Messages()
}

// UpsertStreamingAssistant merges a cumulative partial assistant reply into
// the list: if the last message is the streaming placeholder its content is
// replaced in place, otherwise a new placeholder is appended. Callers pass
// the cumulative text, not a delta, so repeating the same state is
// idempotent. Returns the updated list.
func (s *Session) UpsertStreamingAssistant(partialText string) []ChatMessage {
	return s.upsertStreaming(partialText, time.Now())
}

func (s *Session) upsertStreaming(partialText string, ts time.Time) []ChatMessage {
	if n := len(s.messages); n > 0 && s.messages[n-1].Streaming {
		s.messages[n-1].Content = partialText
		return s.Messages()
	}
	s.messages = append(s.messages, ChatMessage{
		Role:      RoleAssistant,
		Content:   partialText,
		Timestamp: ts,
		Streaming: true,
	})
	return s.Messages()
}

// ReplaceLastAssistantMessage finalizes the last message as a permanent
// assistant entry with a fresh unique ID, removing any streaming
// placeholder. On an empty list the finalized message is appended instead;
// this is the documented choice for that otherwise unspecified case.
// Returns the updated list.
func (s *Session) ReplaceLastAssistantMessage(finalText string) []ChatMessage {
	return s.finalizeLast(uuid.NewString(), finalText, time.Now())
}

func (s *Session) finalizeLast(id, finalText string, ts time.Time) []ChatMessage {
	msg := ChatMessage{ID: id, Role: RoleAssistant, Content: finalText, Timestamp: ts}
	if len(s.messages) == 0 {
		s.messages = append(s.messages, msg)
	} else {
		s.messages[len(s.messages)-1] = msg
	}
	return s.Messages()
}

// ClearMessages empties the message list only; content and history are
// independent fields and remain untouched. Returns the (empty) list.
func (s *Session) ClearMessages() []ChatMessage {
	s.messages = nil
	return s.Messages()
}
