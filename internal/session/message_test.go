package session

import "testing"

func TestAppendMessageAssignsID(t *testing.T) {
	s := New("test")

	msgs := s.AppendMessage(ChatMessage{Role: RoleUser, Content: "hello"})
	if len(msgs) != 1 {
		t.Fatalf("message count = %d, want 1", len(msgs))
	}
	if msgs[0].ID == "" {
		t.Error("append should assign an ID when none is set")
	}
	if msgs[0].Timestamp.IsZero() {
		t.Error("append should assign a timestamp when none is set")
	}

	msgs = s.AppendMessage(ChatMessage{ID: "fixed", Role: RoleUser, Content: "again"})
	if msgs[1].ID != "fixed" {
		t.Errorf("append should keep an existing ID, got %q", msgs[1].ID)
	}
}

func TestUpsertStreamingAppendsPlaceholder(t *testing.T) {
	s := New("test")
	s.AppendMessage(ChatMessage{Role: RoleUser, Content: "write a poem"})

	msgs := s.UpsertStreamingAssistant("Roses")
	if len(msgs) != 2 {
		t.Fatalf("message count = %d, want 2", len(msgs))
	}
	last := msgs[len(msgs)-1]
	if !last.Streaming || last.Role != RoleAssistant || last.Content != "Roses" {
		t.Errorf("unexpected placeholder: %+v", last)
	}
	if last.ID != "" {
		t.Errorf("placeholder should carry no ID, got %q", last.ID)
	}
}

func TestUpsertStreamingReplacesInPlace(t *testing.T) {
	s := New("test")
	s.AppendMessage(ChatMessage{Role: RoleUser, Content: "hi"})

	s.UpsertStreamingAssistant("Ro")
	s.UpsertStreamingAssistant("Roses are")
	msgs := s.UpsertStreamingAssistant("Roses are red")

	if len(msgs) != 2 {
		t.Fatalf("message count = %d, want 2", len(msgs))
	}
	if msgs[1].Content != "Roses are red" {
		t.Errorf("placeholder content = %q, want cumulative text", msgs[1].Content)
	}
}

func TestUpsertStreamingIdempotent(t *testing.T) {
	s := New("test")
	s.UpsertStreamingAssistant("partial")
	before := s.Messages()

	after := s.UpsertStreamingAssistant("partial")
	if len(after) != len(before) {
		t.Fatalf("repeated upsert changed length: %d -> %d", len(before), len(after))
	}
	if after[0].Content != before[0].Content {
		t.Errorf("repeated upsert changed content: %q -> %q", before[0].Content, after[0].Content)
	}
}

func TestReplaceLastAssistantFinalizes(t *testing.T) {
	s := New("test")
	s.AppendMessage(ChatMessage{Role: RoleUser, Content: "hi"})
	s.UpsertStreamingAssistant("Roses are")

	msgs := s.ReplaceLastAssistantMessage("Roses are red.")
	if len(msgs) != 2 {
		t.Fatalf("message count = %d, want 2", len(msgs))
	}
	for _, m := range msgs {
		if m.Streaming {
			t.Errorf("no message should remain streaming after finalization: %+v", m)
		}
		if m.ID == "" {
			t.Errorf("finalized messages must carry an ID: %+v", m)
		}
	}
	final := msgs[1]
	if final.Role != RoleAssistant || final.Content != "Roses are red." {
		t.Errorf("unexpected final message: %+v", final)
	}
}

func TestReplaceLastAssistantUniqueIDs(t *testing.T) {
	s := New("test")

	s.UpsertStreamingAssistant("a")
	first := s.ReplaceLastAssistantMessage("a")[0]

	s.UpsertStreamingAssistant("b")
	msgs := s.ReplaceLastAssistantMessage("b")
	second := msgs[len(msgs)-1]

	if first.ID == second.ID {
		t.Errorf("finalized messages share ID %q", first.ID)
	}
}

func TestReplaceLastAssistantOnEmptyListAppends(t *testing.T) {
	s := New("test")

	msgs := s.ReplaceLastAssistantMessage("done")
	if len(msgs) != 1 {
		t.Fatalf("message count = %d, want 1", len(msgs))
	}
	if msgs[0].Role != RoleAssistant || msgs[0].Content != "done" || msgs[0].Streaming {
		t.Errorf("unexpected appended message: %+v", msgs[0])
	}
}

func TestClearMessagesLeavesContent(t *testing.T) {
	s := New("test")
	s.SetContent("doc")
	s.Commit()
	s.AppendMessage(ChatMessage{Role: RoleUser, Content: "hi"})

	msgs := s.ClearMessages()
	if len(msgs) != 0 {
		t.Errorf("message list should be empty, got %d", len(msgs))
	}
	if s.Content() != "doc" || s.History().PastLen != 1 {
		t.Error("clearing messages should not touch content or history")
	}
}

func TestMessagesReturnsCopy(t *testing.T) {
	s := New("test")
	s.AppendMessage(ChatMessage{Role: RoleUser, Content: "hi"})

	msgs := s.Messages()
	msgs[0].Content = "mutated"

	if s.Messages()[0].Content != "hi" {
		t.Error("mutating the returned slice should not affect the session")
	}
}
