package app

import "errors"

var ErrValidation = errors.New("app: validation failed")

// ImportReport summarizes one bulk import: how many records the file held,
// how many were inserted, and why the rest were skipped.
type ImportReport struct {
	Found      int `json:"found"`
	Imported   int `json:"imported"`
	Duplicates int `json:"duplicates"`
	Invalid    int `json:"invalid"`
	Failed     int `json:"failed"`
}
