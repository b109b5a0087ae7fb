package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rolodex-cli/rolodex/internal/contact"
)

var (
	ErrNotFound       = errors.New("storage: contact not found")
	ErrDuplicateEmail = errors.New("storage: duplicate email")
	ErrInvalidField   = errors.New("storage: invalid query field")
)

// Field selects the column used to match rows for find/update/delete.
// Each variant maps to a fixed query; no column name is ever built from
// user input.
type Field int

const (
	FieldName Field = iota + 1
	FieldEmail
)

func ParseField(raw string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "name":
		return FieldName, nil
	case "email":
		return FieldEmail, nil
	default:
		return 0, fmt.Errorf("%w: %q (use name or email)", ErrInvalidField, raw)
	}
}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldEmail:
		return "email"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

type ContactRepository interface {
	// Create inserts a contact and returns the generated row id.
	Create(ctx context.Context, c contact.Contact) (int64, error)
	// List returns all contacts ordered by name ascending.
	List(ctx context.Context) ([]contact.Contact, error)
	// Find returns the first contact matching field = value.
	Find(ctx context.Context, field Field, value string) (contact.Contact, error)
	// UpdatePhone sets the phone on every row matching field = value and
	// returns the number of rows changed. Zero matches is ErrNotFound.
	UpdatePhone(ctx context.Context, field Field, value, phone string) (int64, error)
	// Delete removes every row matching field = value with the same
	// zero-match semantics as UpdatePhone.
	Delete(ctx context.Context, field Field, value string) (int64, error)
}
