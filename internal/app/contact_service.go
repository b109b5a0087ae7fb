// Package app holds the contact operations behind the CLI: input
// validation, phone normalization on writes, and partial-failure-tolerant
// bulk import on top of the storage repository.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rolodex-cli/rolodex/internal/contact"
	"github.com/rolodex-cli/rolodex/internal/storage"
)

type ContactService struct {
	contacts storage.ContactRepository
}

func NewContactService(contacts storage.ContactRepository) *ContactService {
	return &ContactService{contacts: contacts}
}

// Add inserts a single contact, normalizing the phone number. The phone
// may be blank; name and email may not.
func (s *ContactService) Add(ctx context.Context, name, email, phone string) (int64, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return 0, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if email == "" {
		return 0, fmt.Errorf("%w: email is required", ErrValidation)
	}

	return s.contacts.Create(ctx, contact.New(name, email, phone))
}

// ImportFile reads a JSON contact list and inserts each valid record.
// Duplicate emails and failed inserts skip the record and keep going; the
// batch never aborts part-way.
func (s *ContactService) ImportFile(ctx context.Context, path string) (ImportReport, error) {
	batch, err := contact.ReadImportFile(path)
	if err != nil {
		return ImportReport{}, err
	}

	report := ImportReport{Found: batch.Found, Invalid: batch.Invalid}
	for _, c := range batch.Contacts {
		if _, err := s.contacts.Create(ctx, c); err != nil {
			if errors.Is(err, storage.ErrDuplicateEmail) {
				report.Duplicates++
			} else {
				report.Failed++
			}
			continue
		}
		report.Imported++
	}
	return report, nil
}

func (s *ContactService) List(ctx context.Context) ([]contact.Contact, error) {
	return s.contacts.List(ctx)
}

func (s *ContactService) Find(ctx context.Context, field storage.Field, value string) (contact.Contact, error) {
	return s.contacts.Find(ctx, field, value)
}

// UpdatePhone normalizes the new number before writing it to every row
// matching field = value.
func (s *ContactService) UpdatePhone(ctx context.Context, field storage.Field, value, phone string) error {
	_, err := s.contacts.UpdatePhone(ctx, field, value, contact.NormalizePhone(phone))
	return err
}

func (s *ContactService) Delete(ctx context.Context, field storage.Field, value string) error {
	_, err := s.contacts.Delete(ctx, field, value)
	return err
}
