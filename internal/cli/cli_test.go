package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rolodex-cli/rolodex/internal/config"
	"github.com/rolodex-cli/rolodex/internal/contact"
	"github.com/rolodex-cli/rolodex/internal/storage"
)

func testBuildInfo() BuildInfo {
	return BuildInfo{Version: "1.2.3", Commit: "abc123", BuildTime: "2026-08-24T00:00:00Z"}
}

// runCLI executes the command tree against a fake repository, bypassing
// config files and the MySQL server.
func runCLI(t *testing.T, stdin string, repo storage.ContactRepository, args ...string) (string, error) {
	t.Helper()

	origLoad := loadConfigFn
	origOpen := openStoreFn
	t.Cleanup(func() {
		loadConfigFn = origLoad
		openStoreFn = origOpen
	})
	loadConfigFn = func(config.LoadOptions) (config.Config, error) {
		return config.DefaultConfig(), nil
	}
	openStoreFn = func(context.Context, storage.Config) (*storage.Store, error) {
		return &storage.Store{Contacts: repo}, nil
	}

	var out bytes.Buffer
	cmd := NewRootCommand(strings.NewReader(stdin), &out, testBuildInfo())
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func exitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}
	var withExit interface{ ExitCode() int }
	if errors.As(err, &withExit) {
		return withExit.ExitCode()
	}
	return ExitCodeGeneric
}

// fakeRepository is an in-memory ContactRepository with the same matching
// and zero-row semantics as the MySQL one.
type fakeRepository struct {
	contacts   []contact.Contact
	nextID     int64
	failCreate error
}

func (f *fakeRepository) Create(_ context.Context, c contact.Contact) (int64, error) {
	if f.failCreate != nil {
		return 0, f.failCreate
	}
	for _, existing := range f.contacts {
		if existing.Email == c.Email {
			return 0, fmt.Errorf("create contact: %w", storage.ErrDuplicateEmail)
		}
	}
	f.contacts = append(f.contacts, c)
	f.nextID++
	return f.nextID, nil
}

func (f *fakeRepository) List(context.Context) ([]contact.Contact, error) {
	return append([]contact.Contact(nil), f.contacts...), nil
}

func (f *fakeRepository) Find(_ context.Context, field storage.Field, value string) (contact.Contact, error) {
	for _, c := range f.contacts {
		if matches(c, field, value) {
			return c, nil
		}
	}
	return contact.Contact{}, fmt.Errorf("find contact: %w", storage.ErrNotFound)
}

func (f *fakeRepository) UpdatePhone(_ context.Context, field storage.Field, value, phone string) (int64, error) {
	var changed int64
	for i, c := range f.contacts {
		if matches(c, field, value) {
			f.contacts[i].Phone = phone
			changed++
		}
	}
	if changed == 0 {
		return 0, fmt.Errorf("update phone: %w", storage.ErrNotFound)
	}
	return changed, nil
}

func (f *fakeRepository) Delete(_ context.Context, field storage.Field, value string) (int64, error) {
	kept := f.contacts[:0]
	var removed int64
	for _, c := range f.contacts {
		if matches(c, field, value) {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	f.contacts = kept
	if removed == 0 {
		return 0, fmt.Errorf("delete contact: %w", storage.ErrNotFound)
	}
	return removed, nil
}

func matches(c contact.Contact, field storage.Field, value string) bool {
	switch field {
	case storage.FieldName:
		return c.Name == value
	case storage.FieldEmail:
		return c.Email == value
	default:
		return false
	}
}
