// Package auth implements the credential store: the operator list checked
// at login plus the separate fixed admin pair.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "fig-tracker/internal/errors"
	"fig-tracker/internal/feed"
	"fig-tracker/internal/models"
	"fig-tracker/internal/store"
)

// permanentPassword is the password of the built-in operator seeded on
// first run.
const permanentPassword = "AMPLIFIELD1#"

// Service verifies credentials against the local operator list and,
// when configured, a remote credential sheet.
type Service struct {
	store         store.JournalStore
	remote        feed.CredentialSource
	adminLogin    string
	adminPassword string
	logger        zerolog.Logger
}

// NewService creates a credential service. store and remote are each
// optional; at least one should be present for operator logins to succeed.
func NewService(st store.JournalStore, remote feed.CredentialSource, adminLogin, adminPassword string, logger zerolog.Logger) *Service {
	return &Service{
		store:         st,
		remote:        remote,
		adminLogin:    models.NormalizeCredential(adminLogin),
		adminPassword: models.NormalizeCredential(adminPassword),
		logger:        logger.With().Str("component", "auth").Logger(),
	}
}

// EnsurePermanentOperator seeds the built-in operator if it is missing.
func (s *Service) EnsurePermanentOperator(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	users, err := s.store.GetOperators(ctx)
	if err != nil {
		return apperrors.NewStoreError("list operators", err)
	}
	for _, u := range users {
		if u.Permanent() {
			return nil
		}
	}

	perm := models.NewOperatorUser("perm-user-001", models.PermanentLogin, permanentPassword,
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local))
	if err := s.store.SaveOperator(ctx, perm); err != nil {
		return apperrors.NewStoreError("seed permanent operator", err)
	}
	s.logger.Debug().Str("login", perm.Login).Msg("Permanent operator seeded")
	return nil
}

// VerifyOperator checks submitted credentials against the operator list,
// falling through to the remote credential sheet when no local match is
// found. Comparison is case-insensitive via normalization.
func (s *Service) VerifyOperator(ctx context.Context, login, password string) (bool, error) {
	if s.store != nil {
		users, err := s.store.GetOperators(ctx)
		if err != nil {
			return false, apperrors.NewStoreError("list operators", err)
		}
		for _, u := range users {
			if u.Matches(login, password) {
				return true, nil
			}
		}
	}

	if s.remote != nil {
		return s.remote.Match(ctx, login, password)
	}
	return false, nil
}

// VerifyAdmin checks the fixed admin pair. The admin path is independent
// of the operator list.
func (s *Service) VerifyAdmin(login, password string) bool {
	return s.adminLogin != "" &&
		models.NormalizeCredential(login) == s.adminLogin &&
		models.NormalizeCredential(password) == s.adminPassword
}

// AddOperator creates a new operator with normalized credentials.
func (s *Service) AddOperator(ctx context.Context, login, password string) (models.OperatorUser, error) {
	if s.store == nil {
		return models.OperatorUser{}, apperrors.NewStoreError("add operator", apperrors.ErrDatabaseError)
	}
	if strings.TrimSpace(login) == "" || strings.TrimSpace(password) == "" {
		return models.OperatorUser{}, apperrors.NewValidationError("login", login, "login and password are required")
	}

	normalized := models.NormalizeCredential(login)
	users, err := s.store.GetOperators(ctx)
	if err != nil {
		return models.OperatorUser{}, apperrors.NewStoreError("list operators", err)
	}
	for _, u := range users {
		if u.Login == normalized {
			return models.OperatorUser{}, apperrors.ErrDuplicateOperator
		}
	}

	now := time.Now()
	user := models.NewOperatorUser(fmt.Sprintf("op-%d", now.UnixNano()), login, password, now)
	if err := s.store.SaveOperator(ctx, user); err != nil {
		return models.OperatorUser{}, apperrors.NewStoreError("save operator", err)
	}

	s.logger.Info().Str("login", user.Login).Msg("Operator added")
	return user, nil
}

// RemoveOperator deletes an operator by id. The permanent operator is
// refused.
func (s *Service) RemoveOperator(ctx context.Context, id string) error {
	if s.store == nil {
		return apperrors.NewStoreError("remove operator", apperrors.ErrDatabaseError)
	}
	users, err := s.store.GetOperators(ctx)
	if err != nil {
		return apperrors.NewStoreError("list operators", err)
	}

	for _, u := range users {
		if u.ID != id {
			continue
		}
		if u.Permanent() {
			return apperrors.ErrPermanentOperator
		}
		if err := s.store.DeleteOperator(ctx, id); err != nil {
			return apperrors.NewStoreError("delete operator", err)
		}
		s.logger.Info().Str("login", u.Login).Msg("Operator removed")
		return nil
	}
	return apperrors.ErrOperatorNotFound
}

// Operators lists all operators.
func (s *Service) Operators(ctx context.Context) ([]models.OperatorUser, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.GetOperators(ctx)
}
