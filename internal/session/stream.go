package session

import (
	"context"

	"github.com/mark3labs/drafter/internal/logger"
)

// Streamer reconciles incrementally-arriving AI output into the session's
// single streaming placeholder. Updates carry cumulative text, in
// increasing-cumulative order; the caller owns that ordering guarantee.
type Streamer struct {
	store *Store
	sess  *Session
}

// NewStreamer creates a streamer bound to one session. A nil store runs
// in-memory only.
func NewStreamer(store *Store, sess *Session) *Streamer {
	return &Streamer{store: store, sess: sess}
}

// Update merges one cumulative partial reply into the placeholder.
func (st *Streamer) Update(ctx context.Context, cumulative string) ([]ChatMessage, error) {
	if st.store == nil {
		return st.sess.UpsertStreamingAssistant(cumulative), nil
	}
	return st.store.UpsertStreaming(ctx, st.sess, cumulative)
}

// Finalize replaces the placeholder with a permanent assistant entry.
func (st *Streamer) Finalize(ctx context.Context, finalText string) ([]ChatMessage, error) {
	if st.store == nil {
		return st.sess.ReplaceLastAssistantMessage(finalText), nil
	}
	return st.store.FinalizeStreaming(ctx, st.sess, finalText)
}

// Run consumes cumulative updates from a channel until it closes, then
// finalizes the placeholder with the last value received. If the context is
// cancelled first, the stream is abandoned without finalizing: the
// placeholder stays behind for the next stream to overwrite, mirroring an
// interrupted network stream. Returns the final message list.
func (st *Streamer) Run(ctx context.Context, updates <-chan string) ([]ChatMessage, error) {
	var last string
	received := false

	for {
		select {
		case <-ctx.Done():
			logger.Warn("Stream abandoned for session %s: %v", st.sess.Name, ctx.Err())
			return st.sess.Messages(), ctx.Err()
		case cumulative, ok := <-updates:
			if !ok {
				if !received {
					return st.sess.Messages(), nil
				}
				return st.Finalize(ctx, last)
			}
			last = cumulative
			received = true
			if _, err := st.Update(ctx, cumulative); err != nil {
				return st.sess.Messages(), err
			}
		}
	}
}
