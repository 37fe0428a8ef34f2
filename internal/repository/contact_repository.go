package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/database"
)

const contactColumns = `id, full_name, mobile_no, kind, customer, is_primary`

const (
	ContactKindContact  = "Contact"
	ContactKindCustomer = "Customer"
)

type ContactRepository struct {
	db *sqlx.DB
}

func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) FindByName(ctx context.Context, name string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM wa_contacts WHERE full_name LIKE ? ORDER BY id LIMIT 1`
	return r.findOne(ctx, query, "%"+name+"%")
}

// FindByPhone matches stored numbers containing phone.
func (r *ContactRepository) FindByPhone(ctx context.Context, phone string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM wa_contacts WHERE mobile_no LIKE ? ORDER BY id LIMIT 1`
	return r.findOne(ctx, query, "%"+phone+"%")
}

func (r *ContactRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	return r.findOne(ctx, `SELECT `+contactColumns+` FROM wa_contacts WHERE id = ?`, id)
}

func (r *ContactRepository) findOne(ctx context.Context, query string, arg any) (*domain.Contact, error) {
	var contact domain.Contact
	if err := r.db.GetContext(ctx, &contact, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find contact: %w", err)
	}

	return &contact, nil
}

// Search matches name or number and only returns contacts that have a number.
func (r *ContactRepository) Search(ctx context.Context, q string, limit int) ([]domain.Contact, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM wa_contacts
		WHERE mobile_no <> '' AND (full_name LIKE ? OR mobile_no LIKE ?)
		ORDER BY full_name ASC, id ASC
		LIMIT ?
	`

	pattern := "%" + q + "%"
	contacts := []domain.Contact{}
	if err := r.db.SelectContext(ctx, &contacts, query, pattern, pattern, limit); err != nil {
		return nil, fmt.Errorf("failed to search contacts: %w", err)
	}

	return contacts, nil
}

// PrimaryContactPhone returns the number of the customer's primary contact,
// falling back to the customer record itself.
func (r *ContactRepository) PrimaryContactPhone(ctx context.Context, customer string) (string, bool, error) {
	if customer == "" {
		return "", false, nil
	}

	var mobile string
	query := `
		SELECT mobile_no FROM wa_contacts
		WHERE customer = ? AND mobile_no <> ''
		ORDER BY is_primary DESC, id ASC
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &mobile, query, customer)
	if err == nil {
		return mobile, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", false, fmt.Errorf("failed to get customer contact: %w", err)
	}

	err = r.db.GetContext(ctx, &mobile,
		`SELECT mobile_no FROM wa_contacts WHERE id = ? AND kind = ? AND mobile_no <> ''`,
		customer, ContactKindCustomer,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get customer mobile: %w", err)
	}

	return mobile, true, nil
}

// Upsert inserts c or refreshes the stored name and number.
func (r *ContactRepository) Upsert(ctx context.Context, c domain.Contact) error {
	if c.Kind == "" {
		c.Kind = ContactKindContact
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO wa_contacts (id, full_name, mobile_no, kind, customer, is_primary) VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.FullName, c.MobileNo, c.Kind, c.Customer, c.IsPrimary,
	)
	if err == nil {
		return nil
	}
	if !database.IsUniqueViolation(err) {
		return fmt.Errorf("failed to insert contact: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE wa_contacts SET full_name = ?, mobile_no = ?, kind = ?, customer = ?, is_primary = ? WHERE id = ?`,
		c.FullName, c.MobileNo, c.Kind, c.Customer, c.IsPrimary, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}

	return nil
}
