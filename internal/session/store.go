package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/drafter/internal/logger"
	"github.com/mark3labs/drafter/internal/nats"
	"github.com/nats-io/nats.go/jetstream"
)

// Store persists session state through JetStream event sourcing: every
// mutating operation is appended to the event log before it is applied to
// the in-memory session, and LoadSession rebuilds a session by reducing the
// log from the beginning.
type Store struct {
	js     jetstream.JetStream
	stream jetstream.Stream
}

// NewStore creates a Store over the given JetStream context and stream.
func NewStore(js jetstream.JetStream, stream jetstream.Stream) *Store {
	return &Store{js: js, stream: stream}
}

// PublishEvent appends an event to the log under drafter.{session}.{type}.
func (s *Store) PublishEvent(ctx context.Context, event Event) (*jetstream.PubAck, error) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := nats.SubjectForEvent(event.Session, event.Type)
	logger.Debug("Publishing event: session=%s type=%s action=%s", event.Session, event.Type, event.Action)

	ack, err := s.js.Publish(ctx, subject, data)
	if err != nil {
		logger.Error("Failed to publish event to subject %s: %v", subject, err)
		return nil, fmt.Errorf("failed to publish event: %w", err)
	}
	return ack, nil
}

func (s *Store) publish(ctx context.Context, sess *Session, eventType, action, data string, meta any) error {
	var rawMeta json.RawMessage
	if meta != nil {
		m, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("failed to marshal event meta: %w", err)
		}
		rawMeta = m
	}
	_, err := s.PublishEvent(ctx, Event{
		Session: sess.Name,
		Type:    eventType,
		Action:  action,
		Data:    data,
		Meta:    rawMeta,
	})
	return err
}

// SetContent records a live edit and applies it to the session.
func (s *Store) SetContent(ctx context.Context, sess *Session, text string) (HistoryView, error) {
	if err := s.publish(ctx, sess, nats.EventTypeContent, ActionSet, text, nil); err != nil {
		return sess.History(), err
	}
	return sess.SetContent(text), nil
}

// Commit records the current content as a new snapshot.
func (s *Store) Commit(ctx context.Context, sess *Session) (HistoryView, error) {
	if err := s.publish(ctx, sess, nats.EventTypeContent, ActionCommit, sess.Content(), nil); err != nil {
		return sess.History(), err
	}
	return sess.Commit(), nil
}

// Undo records and applies an undo step.
func (s *Store) Undo(ctx context.Context, sess *Session) (HistoryView, error) {
	if err := s.publish(ctx, sess, nats.EventTypeContent, ActionUndo, "", nil); err != nil {
		return sess.History(), err
	}
	return sess.Undo(), nil
}

// Redo records and applies a redo step.
func (s *Store) Redo(ctx context.Context, sess *Session) (HistoryView, error) {
	if err := s.publish(ctx, sess, nats.EventTypeContent, ActionRedo, "", nil); err != nil {
		return sess.History(), err
	}
	return sess.Redo(), nil
}

// ClearContent records and applies a content/history reset.
func (s *Store) ClearContent(ctx context.Context, sess *Session) (HistoryView, error) {
	if err := s.publish(ctx, sess, nats.EventTypeContent, ActionClear, "", nil); err != nil {
		return sess.History(), err
	}
	return sess.Clear(), nil
}

// AppendMessage records and appends a fully-formed message.
func (s *Store) AppendMessage(ctx context.Context, sess *Session, role Role, content string) ([]ChatMessage, error) {
	msg := ChatMessage{ID: uuid.NewString(), Role: role, Content: content, Timestamp: time.Now()}
	meta := map[string]any{"id": msg.ID, "role": msg.Role}
	if err := s.publish(ctx, sess, nats.EventTypeMessage, ActionAppend, content, meta); err != nil {
		return sess.Messages(), err
	}
	return sess.AppendMessage(msg), nil
}

// UpsertStreaming records and merges a cumulative partial assistant reply.
func (s *Store) UpsertStreaming(ctx context.Context, sess *Session, partialText string) ([]ChatMessage, error) {
	if err := s.publish(ctx, sess, nats.EventTypeMessage, ActionStream, partialText, nil); err != nil {
		return sess.Messages(), err
	}
	return sess.UpsertStreamingAssistant(partialText), nil
}

// FinalizeStreaming records and applies finalization of the in-flight
// assistant reply, assigning its permanent ID.
func (s *Store) FinalizeStreaming(ctx context.Context, sess *Session, finalText string) ([]ChatMessage, error) {
	id := uuid.NewString()
	meta := map[string]any{"id": id}
	if err := s.publish(ctx, sess, nats.EventTypeMessage, ActionFinalize, finalText, meta); err != nil {
		return sess.Messages(), err
	}
	return sess.finalizeLast(id, finalText, time.Now()), nil
}

// ClearMessages records and applies a message list reset.
func (s *Store) ClearMessages(ctx context.Context, sess *Session) ([]ChatMessage, error) {
	if err := s.publish(ctx, sess, nats.EventTypeMessage, ActionClear, "", nil); err != nil {
		return sess.Messages(), err
	}
	return sess.ClearMessages(), nil
}

// LoadSession rebuilds a session by reducing its event log from the
// beginning. A session with no events loads empty.
func (s *Store) LoadSession(ctx context.Context, name string, historyLimit int) (*Session, error) {
	logger.Debug("Loading session: %s", name)

	consumer, err := s.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject: nats.SubjectForSession(name),
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	sess := New(name)
	sess.SetHistoryLimit(historyLimit)

	const batchSize = 1000
	malformed := 0
	total := 0
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			break
		}

		count := 0
		for msg := range msgs.Messages() {
			count++
			total++
			var event Event
			if err := json.Unmarshal(msg.Data(), &event); err != nil {
				malformed++
				meta, _ := msg.Metadata()
				logger.Warn("Skipping malformed event (seq=%d): %v", meta.Sequence.Stream, err)
				msg.Ack()
				continue
			}
			sess.Apply(event)
			msg.Ack()
		}

		if count < batchSize {
			break
		}
	}

	if malformed > 0 {
		logger.Warn("Skipped %d malformed events while loading session %s", malformed, name)
	}
	logger.Debug("Session %s loaded: %d events, past=%d future=%d messages=%d",
		name, total, len(sess.past), len(sess.future), len(sess.messages))

	return sess, nil
}

// ListSessions returns the distinct session names present in the event log,
// sorted alphabetically.
func (s *Store) ListSessions(ctx context.Context) ([]string, error) {
	consumer, err := s.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	seen := make(map[string]struct{})
	const batchSize = 1000
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			break
		}

		count := 0
		for msg := range msgs.Messages() {
			count++
			// The session name is the second subject token:
			// drafter.{session}.{type}.
			parts := strings.Split(msg.Subject(), ".")
			if len(parts) >= 3 {
				seen[parts[1]] = struct{}{}
			}
			msg.Ack()
		}

		if count < batchSize {
			break
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ResetSession purges all events for a session from the log. The in-memory
// session, if any, is the caller's to reset.
func (s *Store) ResetSession(ctx context.Context, name string) error {
	if err := s.stream.Purge(ctx, jetstream.WithPurgeSubject(nats.SubjectForSession(name))); err != nil {
		return fmt.Errorf("failed to purge session %s: %w", name, err)
	}
	logger.Info("Session %s reset", name)
	return nil
}
