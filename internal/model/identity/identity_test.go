package identity

import "testing"

func TestFromNameIsDeterministic(t *testing.T) {
	a := FromName("Ana")
	b := FromName("Ana")
	if a != b {
		t.Fatalf("same name produced different identities: %v vs %v", a, b)
	}
	if a.ID != "user_ana" {
		t.Fatalf("unexpected id: %s", a.ID)
	}
	if a.DisplayName != "Ana" {
		t.Fatalf("unexpected display name: %s", a.DisplayName)
	}
}

func TestFromNameTrimsWhitespace(t *testing.T) {
	id := FromName("  Ana  ")
	if id.ID != "user_ana" {
		t.Fatalf("unexpected id: %s", id.ID)
	}
}

func TestFromNameEmptyIsInvalid(t *testing.T) {
	if FromName("   ").Valid() {
		t.Fatal("expected whitespace-only name to be invalid")
	}
}
