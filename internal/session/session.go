// Package session tracks which view of the dashboard is active: the login
// screen, the operator dashboard, or the admin panel.
package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"fig-tracker/internal/auth"
	apperrors "fig-tracker/internal/errors"
	"fig-tracker/internal/models"
)

// State is the active view.
type State string

const (
	StateLogin    State = "login"
	StateOperator State = "operator"
	StateAdmin    State = "admin"
)

// DefaultErrorTTL is how long a failed-login flag stays raised before it
// clears on its own.
const DefaultErrorTTL = 2 * time.Second

// Controller is the view state machine. Failed logins raise a transient
// error flag that clears itself after the configured TTL.
type Controller struct {
	auth   *auth.Service
	ttl    time.Duration
	logger zerolog.Logger

	mu     sync.Mutex
	state  State
	login  string
	failed bool
	timer  *time.Timer
}

// NewController creates a controller starting at the login view.
func NewController(authSvc *auth.Service, errorTTL time.Duration, logger zerolog.Logger) *Controller {
	if errorTTL <= 0 {
		errorTTL = DefaultErrorTTL
	}
	return &Controller{
		auth:   authSvc,
		ttl:    errorTTL,
		logger: logger.With().Str("component", "session").Logger(),
		state:  StateLogin,
	}
}

// State returns the active view.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentLogin returns the normalized login of the active operator, empty
// on the login view.
func (c *Controller) CurrentLogin() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.login
}

// Failed reports whether the transient login-error flag is raised.
func (c *Controller) Failed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failed
}

// Login verifies operator credentials and, on success, switches to the
// operator view. On failure it raises the transient error flag and returns
// ErrInvalidCredentials.
func (c *Controller) Login(ctx context.Context, login, password string) error {
	ok, err := c.auth.VerifyOperator(ctx, login, password)
	if err != nil {
		return err
	}
	if !ok {
		c.raiseError()
		c.logger.Warn().Str("login", models.NormalizeCredential(login)).Msg("Login rejected")
		return apperrors.ErrInvalidCredentials
	}

	c.mu.Lock()
	c.state = StateOperator
	c.login = models.NormalizeCredential(login)
	c.clearErrorLocked()
	c.mu.Unlock()

	c.logger.Info().Str("login", models.NormalizeCredential(login)).Msg("Operator logged in")
	return nil
}

// LoginAdmin verifies the admin pair and switches to the admin view.
func (c *Controller) LoginAdmin(login, password string) error {
	if !c.auth.VerifyAdmin(login, password) {
		c.raiseError()
		return apperrors.ErrInvalidCredentials
	}

	c.mu.Lock()
	c.state = StateAdmin
	c.login = models.NormalizeCredential(login)
	c.clearErrorLocked()
	c.mu.Unlock()

	c.logger.Info().Msg("Admin logged in")
	return nil
}

// Logout returns to the login view from any state.
func (c *Controller) Logout() {
	c.mu.Lock()
	c.state = StateLogin
	c.login = ""
	c.clearErrorLocked()
	c.mu.Unlock()
}

// Close stops the pending error-clear timer, if any.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearErrorLocked()
}

func (c *Controller) raiseError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.failed = true
	c.timer = time.AfterFunc(c.ttl, func() {
		c.mu.Lock()
		c.failed = false
		c.timer = nil
		c.mu.Unlock()
	})
}

func (c *Controller) clearErrorLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.failed = false
}

// persisted is the on-disk session shape shared between CLI invocations.
type persisted struct {
	State State  `json:"state"`
	Login string `json:"login"`
}

// Save writes the current view and login to path so the next invocation
// resumes where this one left off.
func (c *Controller) Save(path string) error {
	c.mu.Lock()
	p := persisted{State: c.state, Login: c.login}
	c.mu.Unlock()

	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Restore loads a previously saved session. A missing or malformed file
// leaves the controller at the login view.
func (c *Controller) Restore(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		c.logger.Debug().Err(err).Msg("Discarding malformed session file")
		return
	}
	if p.State != StateOperator && p.State != StateAdmin {
		return
	}

	c.mu.Lock()
	c.state = p.State
	c.login = p.Login
	c.mu.Unlock()
}

// RequireOperator returns ErrNotLoggedIn unless an operator or the admin
// is signed in.
func (c *Controller) RequireOperator() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateLogin {
		return apperrors.ErrNotLoggedIn
	}
	return nil
}

// RequireAdmin returns ErrNotLoggedIn unless the admin view is active.
func (c *Controller) RequireAdmin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateAdmin {
		return apperrors.ErrNotLoggedIn
	}
	return nil
}
