package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"fig-tracker/internal/auth"
	apperrors "fig-tracker/internal/errors"
)

type memCredentials struct {
	login, password string
}

func (m *memCredentials) Match(_ context.Context, login, password string) (bool, error) {
	return login == m.login && password == m.password, nil
}

func newTestController(ttl time.Duration) *Controller {
	svc := auth.NewService(nil, &memCredentials{login: "trader01", password: "secret1"},
		"FIGADM", "FIGADM", zerolog.Nop())
	return NewController(svc, ttl, zerolog.Nop())
}

func TestLoginTransitions(t *testing.T) {
	c := newTestController(0)
	defer c.Close()
	ctx := context.Background()

	if c.State() != StateLogin {
		t.Fatalf("fresh controller state = %q", c.State())
	}

	if err := c.Login(ctx, "trader01", "secret1"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if c.State() != StateOperator || c.CurrentLogin() != "TRADER01" {
		t.Errorf("state=%q login=%q after operator login", c.State(), c.CurrentLogin())
	}

	c.Logout()
	if c.State() != StateLogin || c.CurrentLogin() != "" {
		t.Errorf("logout should return to the login view")
	}

	if err := c.LoginAdmin("figadm", "figadm"); err != nil {
		t.Fatalf("LoginAdmin: %v", err)
	}
	if c.State() != StateAdmin {
		t.Errorf("state = %q after admin login", c.State())
	}
}

func TestFailedLoginFlagClears(t *testing.T) {
	c := newTestController(30 * time.Millisecond)
	defer c.Close()

	err := c.Login(context.Background(), "trader01", "wrong")
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if c.State() != StateLogin {
		t.Error("failed login must stay on the login view")
	}
	if !c.Failed() {
		t.Fatal("failed login should raise the error flag")
	}

	deadline := time.Now().Add(time.Second)
	for c.Failed() {
		if time.Now().After(deadline) {
			t.Fatal("error flag never cleared")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSuccessfulLoginClearsFlag(t *testing.T) {
	c := newTestController(time.Hour)
	defer c.Close()
	ctx := context.Background()

	_ = c.Login(ctx, "trader01", "wrong")
	if !c.Failed() {
		t.Fatal("flag should be raised")
	}

	if err := c.Login(ctx, "trader01", "secret1"); err != nil {
		t.Fatal(err)
	}
	if c.Failed() {
		t.Error("successful login should clear the error flag immediately")
	}
}

func TestRequireGuards(t *testing.T) {
	c := newTestController(0)
	defer c.Close()
	ctx := context.Background()

	if err := c.RequireOperator(); !errors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Errorf("login view should refuse operator actions, got %v", err)
	}
	if err := c.RequireAdmin(); !errors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Errorf("login view should refuse admin actions, got %v", err)
	}

	if err := c.Login(ctx, "trader01", "secret1"); err != nil {
		t.Fatal(err)
	}
	if err := c.RequireOperator(); err != nil {
		t.Errorf("operator view should pass the operator guard: %v", err)
	}
	if err := c.RequireAdmin(); !errors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Errorf("operator view should refuse admin actions, got %v", err)
	}
}

func TestSaveRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	c := newTestController(0)
	if err := c.Login(context.Background(), "trader01", "secret1"); err != nil {
		t.Fatal(err)
	}
	if err := c.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	c.Close()

	restored := newTestController(0)
	defer restored.Close()
	restored.Restore(path)
	if restored.State() != StateOperator || restored.CurrentLogin() != "TRADER01" {
		t.Errorf("restored state=%q login=%q", restored.State(), restored.CurrentLogin())
	}

	// A missing file leaves the login view untouched.
	fresh := newTestController(0)
	defer fresh.Close()
	fresh.Restore(filepath.Join(t.TempDir(), "nope.json"))
	if fresh.State() != StateLogin {
		t.Errorf("missing session file should leave the login view, got %q", fresh.State())
	}
}
