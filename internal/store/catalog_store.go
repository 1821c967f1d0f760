package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nhle/fieldservice/internal/model"
)

// UpsertCustomers inserts or replaces customers. Slice order becomes the
// listing order.
func (s *SQLiteStore) UpsertCustomers(ctx context.Context, customers []model.Customer) error {
	if len(customers) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `
		INSERT OR REPLACE INTO customers (
			id, company_name, contact_name, logo_initial, sort_order
		) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing customer upsert: %w", err)
	}
	defer stmt.Close()

	for i, c := range customers {
		if _, err := stmt.ExecContext(ctx,
			c.ID, c.CompanyName, c.ContactName, c.LogoInitial, i,
		); err != nil {
			return fmt.Errorf("upserting customer %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing customers: %w", err)
	}
	return nil
}

// GetCustomers returns every customer in listing order.
func (s *SQLiteStore) GetCustomers(ctx context.Context) ([]model.Customer, error) {
	return s.SearchCustomers(ctx, "")
}

// GetCustomerByID returns the customer with id, or ErrNotFound.
func (s *SQLiteStore) GetCustomerByID(ctx context.Context, id string) (*model.Customer, error) {
	var c model.Customer
	err := s.db.GetContext(ctx, &c, `
		SELECT id, company_name, contact_name, logo_initial
		FROM customers WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying customer %s: %w", id, err)
	}
	return &c, nil
}

// SearchCustomers returns customers whose company or contact name contains
// query.
func (s *SQLiteStore) SearchCustomers(ctx context.Context, query string) ([]model.Customer, error) {
	pattern := likePattern(query)

	var customers []model.Customer
	err := s.db.SelectContext(ctx, &customers, `
		SELECT id, company_name, contact_name, logo_initial
		FROM customers
		WHERE LOWER(company_name) LIKE ? ESCAPE '\'
		   OR LOWER(contact_name) LIKE ? ESCAPE '\'
		ORDER BY sort_order, id`, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("searching customers: %w", err)
	}
	return customers, nil
}

// engineerRow is the stored shape of an engineer; list columns hold JSON.
type engineerRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Initials    string `db:"initials"`
	Tags        string `db:"tags"`
	Color       string `db:"color"`
	Specialties string `db:"specialties"`
}

func (r engineerRow) toModel() (model.Engineer, error) {
	e := model.Engineer{
		ID:       r.ID,
		Name:     r.Name,
		Initials: r.Initials,
		Color:    r.Color,
	}
	if err := json.Unmarshal([]byte(r.Tags), &e.Tags); err != nil {
		return model.Engineer{}, fmt.Errorf("decoding tags for engineer %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.Specialties), &e.Specialties); err != nil {
		return model.Engineer{}, fmt.Errorf("decoding specialties for engineer %s: %w", r.ID, err)
	}
	return e, nil
}

// UpsertEngineers inserts or replaces engineers. Slice order becomes the
// listing order.
func (s *SQLiteStore) UpsertEngineers(ctx context.Context, engineers []model.Engineer) error {
	if len(engineers) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `
		INSERT OR REPLACE INTO engineers (
			id, name, initials, tags, color, specialties, sort_order
		) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing engineer upsert: %w", err)
	}
	defer stmt.Close()

	for i, e := range engineers {
		tags, err := json.Marshal(nonNil(e.Tags))
		if err != nil {
			return fmt.Errorf("encoding tags for engineer %s: %w", e.ID, err)
		}
		specialties, err := json.Marshal(nonNil(e.Specialties))
		if err != nil {
			return fmt.Errorf("encoding specialties for engineer %s: %w", e.ID, err)
		}

		if _, err := stmt.ExecContext(ctx,
			e.ID, e.Name, e.Initials, string(tags), e.Color, string(specialties), i,
		); err != nil {
			return fmt.Errorf("upserting engineer %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing engineers: %w", err)
	}
	return nil
}

// GetEngineers returns every engineer in listing order.
func (s *SQLiteStore) GetEngineers(ctx context.Context) ([]model.Engineer, error) {
	return s.SearchEngineers(ctx, "")
}

// GetEngineerByID returns the engineer with id, or ErrNotFound.
func (s *SQLiteStore) GetEngineerByID(ctx context.Context, id string) (*model.Engineer, error) {
	var row engineerRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, initials, tags, color, specialties
		FROM engineers WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("engineer %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying engineer %s: %w", id, err)
	}

	e, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// SearchEngineers returns engineers whose name contains query.
func (s *SQLiteStore) SearchEngineers(ctx context.Context, query string) ([]model.Engineer, error) {
	var rows []engineerRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, initials, tags, color, specialties
		FROM engineers
		WHERE LOWER(name) LIKE ? ESCAPE '\'
		ORDER BY sort_order, id`, likePattern(query))
	if err != nil {
		return nil, fmt.Errorf("searching engineers: %w", err)
	}

	engineers := make([]model.Engineer, 0, len(rows))
	for _, r := range rows {
		e, err := r.toModel()
		if err != nil {
			return nil, err
		}
		engineers = append(engineers, e)
	}
	return engineers, nil
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
