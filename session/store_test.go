package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

func tokenPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), ".cisbosium_token")
}

func TestLoginPersistsToken(t *testing.T) {
	path := tokenPath(t)
	store := NewStore(NewFileStorage(path), zap.NewNop())

	if store.Authenticated() {
		t.Fatal("TestLoginPersistsToken: fresh store reports authenticated")
	}

	if err := store.Login("tok1"); err != nil {
		t.Fatalf("TestLoginPersistsToken: Login: %v", err)
	}
	if got := store.CurrentToken(); got != "tok1" {
		t.Errorf("TestLoginPersistsToken: CurrentToken = %q, want %q", got, "tok1")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("TestLoginPersistsToken: token file: %v", err)
	}
	if string(raw) != "tok1" {
		t.Errorf("TestLoginPersistsToken: persisted = %q, want %q", raw, "tok1")
	}
}

func TestStartupReadsPersistedToken(t *testing.T) {
	path := tokenPath(t)
	first := NewStore(NewFileStorage(path), zap.NewNop())
	if err := first.Login("tok1"); err != nil {
		t.Fatalf("TestStartupReadsPersistedToken: Login: %v", err)
	}

	// Simulates an application restart.
	second := NewStore(NewFileStorage(path), zap.NewNop())
	if got := second.CurrentToken(); got != "tok1" {
		t.Errorf("TestStartupReadsPersistedToken: CurrentToken after restart = %q, want %q", got, "tok1")
	}
}

func TestLogoutClearsPersistence(t *testing.T) {
	path := tokenPath(t)
	store := NewStore(NewFileStorage(path), zap.NewNop())
	if err := store.Login("tok1"); err != nil {
		t.Fatalf("TestLogoutClearsPersistence: Login: %v", err)
	}

	if err := store.Logout(); err != nil {
		t.Fatalf("TestLogoutClearsPersistence: Logout: %v", err)
	}
	if store.Authenticated() {
		t.Error("TestLogoutClearsPersistence: store still authenticated after logout")
	}

	// A fresh start must land on the login surface.
	restarted := NewStore(NewFileStorage(path), zap.NewNop())
	if restarted.Authenticated() {
		t.Error("TestLogoutClearsPersistence: restart after logout still authenticated")
	}
}

func TestUsernameFromClaims(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "trader7",
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("TestUsernameFromClaims: sign: %v", err)
	}

	tests := []struct {
		desc  string
		token string
		want  string
	}{
		{desc: "claim present", token: signed, want: "trader7"},
		{desc: "opaque token", token: "not-a-jwt", want: ""},
		{desc: "no session", token: "", want: ""},
	}

	for _, test := range tests {
		store := NewStore(NewFileStorage(tokenPath(t)), zap.NewNop())
		if test.token != "" {
			if err := store.Login(test.token); err != nil {
				t.Fatalf("TestUsernameFromClaims(%s): Login: %v", test.desc, err)
			}
		}
		if got := store.Username(); got != test.want {
			t.Errorf("TestUsernameFromClaims(%s): Username = %q, want %q", test.desc, got, test.want)
		}
	}
}
