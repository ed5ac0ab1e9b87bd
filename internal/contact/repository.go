package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/account360/account360-api/internal/database"
)

var ErrNotFound = errors.New("contact not found")

// Repository handles contact data persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows List results. Zero values mean no filtering.
type ListFilter struct {
	Profession string
	Search     string // matches name or email, case-insensitive substring
}

// List returns contacts newest first, optionally filtered
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]*Contact, error) {
	var dbContacts []*database.Contact

	q := r.db.NewSelect().
		Model(&dbContacts).
		Order("created_at DESC")

	if filter.Profession != "" {
		q = q.Where("profession = ?", filter.Profession)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.WhereOr("name ILIKE ?", pattern).
				WhereOr("email ILIKE ?", pattern)
		})
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	contacts := make([]*Contact, 0, len(dbContacts))
	for _, dbc := range dbContacts {
		contacts = append(contacts, mapDBContactToModel(dbc))
	}

	return contacts, nil
}

// GetByID retrieves a contact by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Contact, error) {
	dbContact := new(database.Contact)
	err := r.db.NewSelect().
		Model(dbContact).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact by id: %w", err)
	}

	return mapDBContactToModel(dbContact), nil
}

// Create inserts a new contact
func (r *Repository) Create(ctx context.Context, c *Contact) (*Contact, error) {
	dbContact := &database.Contact{
		Name:       c.Name,
		Email:      c.Email,
		Contact:    c.Contact,
		Profession: c.Profession,
	}

	_, err := r.db.NewInsert().
		Model(dbContact).
		Returning("*").
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return mapDBContactToModel(dbContact), nil
}

// Update replaces all mutable fields of a contact and returns the fresh record
func (r *Repository) Update(ctx context.Context, id uuid.UUID, c *Contact) (*Contact, error) {
	result, err := r.db.NewUpdate().
		Model((*database.Contact)(nil)).
		Set("name = ?", c.Name).
		Set("email = ?", c.Email).
		Set("contact = ?", c.Contact).
		Set("profession = ?", c.Profession).
		Set("updated_at = NOW()").
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete removes a contact record
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*database.Contact)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// mapDBContactToModel converts database model to domain model
func mapDBContactToModel(dbc *database.Contact) *Contact {
	return &Contact{
		ID:         dbc.ID,
		Name:       dbc.Name,
		Email:      dbc.Email,
		Contact:    dbc.Contact,
		Profession: dbc.Profession,
		CreatedAt:  dbc.CreatedAt,
		UpdatedAt:  dbc.UpdatedAt,
	}
}
