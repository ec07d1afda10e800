package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	apperrors "fig-tracker/internal/errors"
	"fig-tracker/internal/models"
)

// memStore implements the operator half of store.JournalStore for tests.
type memStore struct {
	users []models.OperatorUser
}

func (m *memStore) SaveEntries(context.Context, []models.DayEntry) error { return nil }
func (m *memStore) GetEntries(context.Context) ([]models.DayEntry, error) {
	return nil, nil
}
func (m *memStore) ClearEntries(context.Context) error { return nil }

func (m *memStore) SaveOperator(_ context.Context, user models.OperatorUser) error {
	for i, u := range m.users {
		if u.ID == user.ID {
			m.users[i] = user
			return nil
		}
	}
	m.users = append(m.users, user)
	return nil
}

func (m *memStore) DeleteOperator(_ context.Context, id string) error {
	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memStore) GetOperators(context.Context) ([]models.OperatorUser, error) {
	return append([]models.OperatorUser(nil), m.users...), nil
}

func (m *memStore) SetInitialCapital(context.Context, float64) error { return nil }
func (m *memStore) GetInitialCapital(context.Context) (float64, bool, error) {
	return 0, false, nil
}
func (m *memStore) Close() error { return nil }

type stubRemote struct {
	login, password string
}

func (s *stubRemote) Match(_ context.Context, login, password string) (bool, error) {
	return models.NormalizeCredential(login) == s.login &&
		models.NormalizeCredential(password) == s.password, nil
}

func newTestService(st *memStore) *Service {
	return NewService(st, nil, "FIGADM", "FIGADM", zerolog.Nop())
}

func TestEnsurePermanentOperator(t *testing.T) {
	st := &memStore{}
	svc := newTestService(st)
	ctx := context.Background()

	if err := svc.EnsurePermanentOperator(ctx); err != nil {
		t.Fatalf("EnsurePermanentOperator: %v", err)
	}
	if len(st.users) != 1 || st.users[0].Login != models.PermanentLogin {
		t.Fatalf("permanent operator not seeded: %+v", st.users)
	}

	// Idempotent on a second run.
	if err := svc.EnsurePermanentOperator(ctx); err != nil {
		t.Fatal(err)
	}
	if len(st.users) != 1 {
		t.Errorf("seeding must be idempotent, got %d users", len(st.users))
	}
}

func TestVerifyOperator(t *testing.T) {
	st := &memStore{}
	svc := newTestService(st)
	ctx := context.Background()
	if err := svc.EnsurePermanentOperator(ctx); err != nil {
		t.Fatal(err)
	}

	ok, err := svc.VerifyOperator(ctx, "samueltavares", "amplifield1#")
	if err != nil || !ok {
		t.Errorf("permanent credentials should verify case-insensitively: ok=%v err=%v", ok, err)
	}

	ok, err = svc.VerifyOperator(ctx, "samueltavares", "wrong")
	if err != nil || ok {
		t.Errorf("wrong password must fail: ok=%v err=%v", ok, err)
	}
}

func TestVerifyOperatorRemoteFallback(t *testing.T) {
	svc := NewService(&memStore{}, &stubRemote{login: "SHEETUSER", password: "SHEETPASS"},
		"FIGADM", "FIGADM", zerolog.Nop())

	ok, err := svc.VerifyOperator(context.Background(), "sheetuser", "sheetpass")
	if err != nil || !ok {
		t.Errorf("remote credentials should verify: ok=%v err=%v", ok, err)
	}
}

func TestVerifyAdmin(t *testing.T) {
	svc := newTestService(&memStore{})

	if !svc.VerifyAdmin("figadm", "figadm") {
		t.Error("admin pair should verify case-insensitively")
	}
	if svc.VerifyAdmin("figadm", "nope") {
		t.Error("wrong admin password must fail")
	}
	if svc.VerifyAdmin("samueltavares", "amplifield1#") {
		t.Error("operator credentials must not open the admin panel")
	}
}

func TestAddOperator(t *testing.T) {
	st := &memStore{}
	svc := newTestService(st)
	ctx := context.Background()

	user, err := svc.AddOperator(ctx, "trader01", "secret1")
	if err != nil {
		t.Fatalf("AddOperator: %v", err)
	}
	if user.Login != "TRADER01" {
		t.Errorf("login should be normalized, got %q", user.Login)
	}

	if _, err := svc.AddOperator(ctx, "Trader01", "other"); !errors.Is(err, apperrors.ErrDuplicateOperator) {
		t.Errorf("duplicate login should be refused, got %v", err)
	}

	if _, err := svc.AddOperator(ctx, " ", "x"); err == nil {
		t.Error("blank login should be refused")
	}
}

func TestRemoveOperator(t *testing.T) {
	st := &memStore{}
	svc := newTestService(st)
	ctx := context.Background()
	if err := svc.EnsurePermanentOperator(ctx); err != nil {
		t.Fatal(err)
	}
	user, err := svc.AddOperator(ctx, "trader01", "secret1")
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.RemoveOperator(ctx, user.ID); err != nil {
		t.Fatalf("RemoveOperator: %v", err)
	}

	var permID string
	for _, u := range st.users {
		if u.Permanent() {
			permID = u.ID
		}
	}
	if err := svc.RemoveOperator(ctx, permID); !errors.Is(err, apperrors.ErrPermanentOperator) {
		t.Errorf("permanent operator removal should be refused, got %v", err)
	}

	if err := svc.RemoveOperator(ctx, "ghost"); !errors.Is(err, apperrors.ErrOperatorNotFound) {
		t.Errorf("unknown id should report not found, got %v", err)
	}
}
