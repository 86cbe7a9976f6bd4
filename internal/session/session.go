// Package session owns editor session state: the current document content,
// the undo/redo snapshot stacks, and the chat message list. A Session is an
// explicitly constructed handle; collaborators receive it by reference and
// there is no process-wide instance. All mutating methods run to completion
// on the owning goroutine, so each call is atomic with respect to the
// session (see Store for the persisted event log).
package session

// DefaultHistoryLimit bounds the undo stack depth. When a commit would
// exceed it, the oldest snapshot is evicted.
const DefaultHistoryLimit = 100

// Snapshot is an immutable captured copy of document content at a commit
// point. Strings are immutable in Go, so a snapshot can never be mutated
// after creation; only stack membership changes.
type Snapshot string

// Session holds the state of one editing session. The history fields and
// the message list are disjoint: clearing one never touches the other.
type Session struct {
	Name string

	content      string
	past         []Snapshot // oldest -> newest committed snapshots
	future       []Snapshot // redo stack, nearest undo at the end
	messages     []ChatMessage
	historyLimit int
}

// New creates an empty session with the default history retention bound.
func New(name string) *Session {
	return &Session{Name: name, historyLimit: DefaultHistoryLimit}
}

// SetHistoryLimit overrides the undo stack retention bound. Values below 1
// are ignored.
func (s *Session) SetHistoryLimit(n int) {
	if n > 0 {
		s.historyLimit = n
	}
}

// HistoryView is the observable shape of the history state returned by
// every history operation.
type HistoryView struct {
	Content   string `json:"content"`
	PastLen   int    `json:"past_len"`
	FutureLen int    `json:"future_len"`
}

func (s *Session) view() HistoryView {
	return HistoryView{Content: s.content, PastLen: len(s.past), FutureLen: len(s.future)}
}

// History returns the current history state without mutating it.
func (s *Session) History() HistoryView {
	return s.view()
}

// Content returns the current document content.
func (s *Session) Content() string {
	return s.content
}

// LastSnapshot returns the most recently committed snapshot, if any.
func (s *Session) LastSnapshot() (string, bool) {
	if len(s.past) == 0 {
		return "", false
	}
	return string(s.past[len(s.past)-1]), true
}

// SetContent replaces the current content without creating a snapshot.
// Intended for live, uncommitted edits such as streaming AI output.
func (s *Session) SetContent(text string) HistoryView {
	s.content = text
	return s.view()
}

// Commit records the current content as a new undoable snapshot and clears
// the redo stack: a new branch invalidates any pending redo. Repeated
// commits with unchanged content still grow the undo stack; deciding
// whether a commit is warranted is the caller's job. If the stack exceeds
// the retention bound, the oldest snapshot is evicted.
func (s *Session) Commit() HistoryView {
	s.past = append(s.past, Snapshot(s.content))
	if len(s.past) > s.historyLimit {
		s.past = s.past[1:]
	}
	s.future = nil
	return s.view()
}

// Undo moves the most recent snapshot onto the redo stack and restores the
// snapshot beneath it, or the empty document when none remains. Uncommitted
// live edits are discarded. Silent no-op when there is nothing to undo.
func (s *Session) Undo() HistoryView {
	if len(s.past) == 0 {
		return s.view()
	}
	top := s.past[len(s.past)-1]
	s.past = s.past[:len(s.past)-1]
	s.future = append(s.future, top)
	if len(s.past) > 0 {
		s.content = string(s.past[len(s.past)-1])
	} else {
		s.content = ""
	}
	return s.view()
}

// Redo is the inverse of Undo: it moves the nearest redo snapshot back onto
// the undo stack and restores it as the current content. Silent no-op when
// there is nothing to redo.
func (s *Session) Redo() HistoryView {
	if len(s.future) == 0 {
		return s.view()
	}
	top := s.future[len(s.future)-1]
	s.future = s.future[:len(s.future)-1]
	s.past = append(s.past, top)
	s.content = string(top)
	return s.view()
}

// Clear resets content and both stacks. The message list is untouched.
func (s *Session) Clear() HistoryView {
	s.content = ""
	s.past = nil
	s.future = nil
	return s.view()
}
