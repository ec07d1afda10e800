package feed

import (
	"bytes"
	"context"
	"encoding/csv"

	apperrors "fig-tracker/internal/errors"
	"fig-tracker/internal/models"
	"fig-tracker/pkg/utils"
)

// CredentialCSV scans a two-column (login, password) sheet export for a
// credential match. The sheet has no header row; every row is a candidate.
type CredentialCSV struct {
	client *Client
	url    string
}

// NewCredentialCSV creates a credential feed for the given export URL.
func NewCredentialCSV(client *Client, url string) *CredentialCSV {
	return &CredentialCSV{client: client, url: url}
}

// Match reports whether any row equals the submitted credentials after
// normalization on both sides, making the comparison case-insensitive.
func (s *CredentialCSV) Match(ctx context.Context, login, password string) (bool, error) {
	body, err := s.client.get(ctx, "credentials-csv", s.url)
	if err != nil {
		return false, err
	}

	// The credential sheet is headerless two-column rows, which gocsv's
	// header-driven mapping cannot express; the stdlib reader handles the
	// quoted cells directly.
	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return false, apperrors.NewFeedError("credentials-csv", "parsing csv", err)
	}

	wantLogin := models.NormalizeCredential(login)
	wantPass := models.NormalizeCredential(password)
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		if models.NormalizeCredential(row[0]) == wantLogin &&
			models.NormalizeCredential(row[1]) == wantPass {
			return true, nil
		}
	}
	return false, nil
}

// CapitalCSV reads the initial-capital scalar from a one-cell sheet export
// (first data row, first column, currency-formatted).
type CapitalCSV struct {
	client *Client
	url    string
}

// NewCapitalCSV creates a capital feed for the given export URL.
func NewCapitalCSV(client *Client, url string) *CapitalCSV {
	return &CapitalCSV{client: client, url: url}
}

// FetchCapital returns the parsed capital cell, 0 when the cell is missing
// or malformed.
func (s *CapitalCSV) FetchCapital(ctx context.Context) (float64, error) {
	body, err := s.client.get(ctx, "capital-csv", s.url)
	if err != nil {
		return 0, err
	}

	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return 0, apperrors.NewFeedError("capital-csv", "parsing csv", err)
	}

	// Header row then the value row, matching the sheet layout.
	if len(rows) < 2 || len(rows[1]) == 0 {
		return 0, nil
	}
	return utils.ParseBRL(rows[1][0]), nil
}
