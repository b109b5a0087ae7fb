package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/rolodex-cli/rolodex/internal/contact"
)

// MySQL error 1062: duplicate entry for a unique key. The only unique key
// on contacts is email.
const mysqlErrDuplicateEntry = 1062

const (
	insertContactQuery = `INSERT INTO contacts (name, email, phone) VALUES (?, ?, ?)`
	listContactsQuery  = `SELECT name, email, phone FROM contacts ORDER BY name ASC`

	findByNameQuery  = `SELECT name, email, phone FROM contacts WHERE name = ? LIMIT 1`
	findByEmailQuery = `SELECT name, email, phone FROM contacts WHERE email = ? LIMIT 1`

	updatePhoneByNameQuery  = `UPDATE contacts SET phone = ? WHERE name = ?`
	updatePhoneByEmailQuery = `UPDATE contacts SET phone = ? WHERE email = ?`

	deleteByNameQuery  = `DELETE FROM contacts WHERE name = ?`
	deleteByEmailQuery = `DELETE FROM contacts WHERE email = ?`
)

type contactRepository struct {
	db *sql.DB
}

func (r *contactRepository) Create(ctx context.Context, c contact.Contact) (int64, error) {
	result, err := r.db.ExecContext(ctx, insertContactQuery, c.Name, c.Email, c.Phone)
	if err != nil {
		if isDuplicateEntry(err) {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateEmail, c.Email)
		}
		return 0, fmt.Errorf("create contact: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create contact: last insert id: %w", err)
	}
	return id, nil
}

func (r *contactRepository) List(ctx context.Context) ([]contact.Contact, error) {
	rows, err := r.db.QueryContext(ctx, listContactsQuery)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var out []contact.Contact
	for rows.Next() {
		var c contact.Contact
		if err := rows.Scan(&c.Name, &c.Email, &c.Phone); err != nil {
			return nil, fmt.Errorf("list contacts: scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: iterate: %w", err)
	}
	return out, nil
}

func (r *contactRepository) Find(ctx context.Context, field Field, value string) (contact.Contact, error) {
	query, err := findQuery(field)
	if err != nil {
		return contact.Contact{}, err
	}

	var c contact.Contact
	err = r.db.QueryRowContext(ctx, query, value).Scan(&c.Name, &c.Email, &c.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return contact.Contact{}, fmt.Errorf("%w: %s %q", ErrNotFound, field, value)
		}
		return contact.Contact{}, fmt.Errorf("find contact: %w", err)
	}
	return c, nil
}

func (r *contactRepository) UpdatePhone(ctx context.Context, field Field, value, phone string) (int64, error) {
	query, err := updateQuery(field)
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, query, phone, value)
	if err != nil {
		return 0, fmt.Errorf("update phone: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update phone: rows affected: %w", err)
	}
	if count == 0 {
		return 0, fmt.Errorf("%w: %s %q", ErrNotFound, field, value)
	}
	return count, nil
}

func (r *contactRepository) Delete(ctx context.Context, field Field, value string) (int64, error) {
	query, err := deleteQuery(field)
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, query, value)
	if err != nil {
		return 0, fmt.Errorf("delete contact: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete contact: rows affected: %w", err)
	}
	if count == 0 {
		return 0, fmt.Errorf("%w: %s %q", ErrNotFound, field, value)
	}
	return count, nil
}

func findQuery(field Field) (string, error) {
	switch field {
	case FieldName:
		return findByNameQuery, nil
	case FieldEmail:
		return findByEmailQuery, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidField, field)
	}
}

func updateQuery(field Field) (string, error) {
	switch field {
	case FieldName:
		return updatePhoneByNameQuery, nil
	case FieldEmail:
		return updatePhoneByEmailQuery, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidField, field)
	}
}

func deleteQuery(field Field) (string, error) {
	switch field {
	case FieldName:
		return deleteByNameQuery, nil
	case FieldEmail:
		return deleteByEmailQuery, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidField, field)
	}
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry
}
