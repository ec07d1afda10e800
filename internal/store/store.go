// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"fig-tracker/internal/models"
)

// JournalStore defines the interface for local persistence. It covers the
// three durable blobs the tracker keeps: the entry snapshot, the operator
// list, and the initial-capital scalar.
type JournalStore interface {
	// Entries
	SaveEntries(ctx context.Context, entries []models.DayEntry) error
	GetEntries(ctx context.Context) ([]models.DayEntry, error)
	ClearEntries(ctx context.Context) error

	// Operators
	SaveOperator(ctx context.Context, user models.OperatorUser) error
	DeleteOperator(ctx context.Context, id string) error
	GetOperators(ctx context.Context) ([]models.OperatorUser, error)

	// Capital
	SetInitialCapital(ctx context.Context, amount float64) error
	GetInitialCapital(ctx context.Context) (float64, bool, error)

	// Lifecycle
	Close() error
}
