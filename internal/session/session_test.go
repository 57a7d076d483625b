package session

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestGetWithoutSession(t *testing.T) {
	_, err := Get(t.TempDir())
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("err = %v, want ErrNoSession", err)
	}
}

func TestGetOrCreateReusesSession(t *testing.T) {
	dir := t.TempDir()
	first, err := GetOrCreate(dir, "ada")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if !strings.HasPrefix(first.ID, sessionPrefix) {
		t.Errorf("ID = %q, want %s prefix", first.ID, sessionPrefix)
	}
	if _, err := uuid.Parse(strings.TrimPrefix(first.ID, sessionPrefix)); err != nil {
		t.Errorf("ID %q does not carry a uuid: %v", first.ID, err)
	}

	second, err := GetOrCreate(dir, "someone-else")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if second.ID != first.ID || second.UserName != "ada" {
		t.Errorf("got %+v, want reuse of %+v", second, first)
	}
	if !second.StartedAt.Equal(first.StartedAt) {
		t.Errorf("StartedAt = %v, want %v", second.StartedAt, first.StartedAt)
	}
}

func TestLogout(t *testing.T) {
	dir := t.TempDir()
	if _, err := GetOrCreate(dir, "ada"); err != nil {
		t.Fatal(err)
	}
	if err := Logout(dir); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := Get(dir); !errors.Is(err, ErrNoSession) {
		t.Errorf("session still present after logout: %v", err)
	}
	if err := Logout(dir); err != nil {
		t.Errorf("second Logout should be a no-op, got %v", err)
	}
}
