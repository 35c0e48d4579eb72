// Package storage persists the patient collection and exports snapshots of it.
// Stores never keep a reference to the slice they are handed.
package storage

import (
	"errors"

	"github.com/ariebrainware/hospital-patient-manager/model"
)

// ErrNoDB is returned when a database-backed store is built without a connection.
var ErrNoDB = errors.New("storage: database connection is nil")

// Storage is the persistence contract the record manager depends on.
type Storage interface {
	// LoadAll returns every stored patient. Missing or unreadable data yields an empty slice.
	LoadAll() []*model.Patient
	// SaveAll replaces the stored collection with patients.
	SaveAll(patients []*model.Patient) error
	// ExportCSV writes a CSV snapshot and reports whether it succeeded.
	ExportCSV(patients []*model.Patient, filename string) bool
}
