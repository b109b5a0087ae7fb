package contact

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrImportFile classifies failures to read or decode an import file as a
// whole. Individual bad records are skipped and counted, never fatal.
var ErrImportFile = errors.New("contact: unreadable import file")

type importDocument struct {
	Contacts []importRecord `json:"contacts"`
}

type importRecord struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ImportBatch is the result of decoding an import file: the records that
// passed validation, built with normalized phone numbers, plus counts for
// reporting.
type ImportBatch struct {
	Contacts []Contact
	Found    int
	Invalid  int
}

// ReadImportFile loads a JSON document of the form
// {"contacts": [{"name","email","phone"}, ...]}. Records missing a name,
// email, or phone are skipped and counted as invalid. A missing file or a
// document that does not parse returns an error wrapping ErrImportFile.
func ReadImportFile(path string) (ImportBatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportBatch{}, fmt.Errorf("%w: %v", ErrImportFile, err)
	}

	var doc importDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return ImportBatch{}, fmt.Errorf("%w: parse %q: %v", ErrImportFile, path, err)
	}

	batch := ImportBatch{Found: len(doc.Contacts)}
	for _, record := range doc.Contacts {
		if !record.valid() {
			batch.Invalid++
			continue
		}
		batch.Contacts = append(batch.Contacts, New(record.Name, record.Email, record.Phone))
	}
	return batch, nil
}

func (r importRecord) valid() bool {
	return strings.TrimSpace(r.Name) != "" &&
		strings.TrimSpace(r.Email) != "" &&
		strings.TrimSpace(r.Phone) != ""
}
