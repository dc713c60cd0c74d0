package app

import "testing"

func TestTimeline_AppendOrder(t *testing.T) {
	tl := NewTimeline()
	tl.Append(RoleUser, "first")
	tl.Append(RoleBot, "second")
	tl.Append(RoleUser, "third")

	msgs := tl.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	wantTexts := []string{"first", "second", "third"}
	wantRoles := []Role{RoleUser, RoleBot, RoleUser}
	for i := range msgs {
		if msgs[i].Text != wantTexts[i] || msgs[i].Role != wantRoles[i] {
			t.Fatalf("message %d = %+v, want %s %q", i, msgs[i], wantRoles[i], wantTexts[i])
		}
		if msgs[i].ID != "" {
			t.Fatalf("ordinary message %d carries an id: %+v", i, msgs[i])
		}
	}
}

func TestTimeline_PlaceholderRemoval(t *testing.T) {
	tl := NewTimeline()
	tl.Append(RoleUser, "hello")
	id := tl.AppendPlaceholder(RoleBot, TypingText)
	if id == "" {
		t.Fatal("placeholder id must not be empty")
	}
	tl.Append(RoleBot, "hi")

	tl.RemovePlaceholder(id)
	msgs := tl.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages after removal, got %v", msgs)
	}
	for _, m := range msgs {
		if m.ID != "" {
			t.Fatalf("placeholder survived removal: %+v", m)
		}
	}
}

func TestTimeline_RemoveUnknownIDIsNoOp(t *testing.T) {
	tl := NewTimeline()
	tl.Append(RoleUser, "hello")
	tl.RemovePlaceholder("not-there")
	tl.RemovePlaceholder("")
	if tl.Len() != 1 {
		t.Fatalf("no-op removal changed the timeline: %v", tl.Messages())
	}

	// Removing twice covers a placeholder already cleared.
	id := tl.AppendPlaceholder(RoleBot, TypingText)
	tl.RemovePlaceholder(id)
	tl.RemovePlaceholder(id)
	if tl.Len() != 1 {
		t.Fatalf("double removal changed the timeline: %v", tl.Messages())
	}
}

func TestTimeline_OnChangeFiresPerMutation(t *testing.T) {
	tl := NewTimeline()
	var fired int
	tl.OnChange(func() { fired++ })

	tl.Append(RoleUser, "a")
	id := tl.AppendPlaceholder(RoleBot, TypingText)
	tl.RemovePlaceholder(id)
	tl.RemovePlaceholder("missing") // no mutation, no notification

	if fired != 3 {
		t.Fatalf("expected 3 change notifications, got %d", fired)
	}
}

func TestTimeline_PlaceholderIDsAreUnique(t *testing.T) {
	tl := NewTimeline()
	a := tl.AppendPlaceholder(RoleBot, TypingText)
	b := tl.AppendPlaceholder(RoleBot, TypingText)
	if a == b {
		t.Fatalf("placeholder ids collided: %q", a)
	}
}
