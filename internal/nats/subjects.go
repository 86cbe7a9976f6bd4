// Package nats wraps the embedded NATS server and the JetStream stream that
// holds the drafter event log.
package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

const streamName = "drafter_events"

// Event types published to the log.
const (
	EventTypeContent = "content" // document edits, commits, undo/redo
	EventTypeMessage = "message" // chat message list changes
	EventTypeControl = "control" // session lifecycle
)

// SubjectForSession returns the wildcard subject matching all events in a
// session, e.g. "drafter.mysite.>".
func SubjectForSession(session string) string {
	return fmt.Sprintf("drafter.%s.>", session)
}

// SubjectForEvent returns the subject for one event type in a session,
// e.g. "drafter.mysite.content".
func SubjectForEvent(session, eventType string) string {
	return fmt.Sprintf("drafter.%s.%s", session, eventType)
}

// SetupStream creates or updates the JetStream stream capturing all drafter
// events across sessions, with file storage and 30-day retention.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{"drafter.>"},
		Storage:  jetstream.FileStorage,
		MaxAge:   30 * 24 * time.Hour,
	})
}
