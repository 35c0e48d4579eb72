package manager

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ariebrainware/hospital-patient-manager/model"
	"github.com/ariebrainware/hospital-patient-manager/storage"
)

// Compile-time check to ensure MockStorage implements storage.Storage
var _ storage.Storage = (*MockStorage)(nil)

// MockStorage is an in-memory storage.Storage that records every save.
type MockStorage struct {
	Initial     []*model.Patient
	SaveErr     error
	ExportOK    bool
	Saved       [][]model.PatientRecord
	ExportCalls []string
}

func (m *MockStorage) LoadAll() []*model.Patient {
	out := make([]*model.Patient, len(m.Initial))
	copy(out, m.Initial)
	return out
}

func (m *MockStorage) SaveAll(patients []*model.Patient) error {
	snapshot := make([]model.PatientRecord, 0, len(patients))
	for _, p := range patients {
		snapshot = append(snapshot, p.ToRecord())
	}
	m.Saved = append(m.Saved, snapshot)
	return m.SaveErr
}

func (m *MockStorage) ExportCSV(patients []*model.Patient, filename string) bool {
	m.ExportCalls = append(m.ExportCalls, filename)
	return m.ExportOK
}

// LastSaved returns the most recent snapshot handed to SaveAll.
func (m *MockStorage) LastSaved(t *testing.T) []model.PatientRecord {
	t.Helper()
	if len(m.Saved) == 0 {
		t.Fatalf("expected at least one SaveAll call")
	}
	return m.Saved[len(m.Saved)-1]
}

var errDiskFull = errors.New("disk full")

func newJSONManager(t *testing.T, opts ...Option) (*Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patients.json")
	return New(storage.NewJSONStorage(path, nil), opts...), path
}

func patient(id, name, age, gender, condition, admitted, discharged string) *model.Patient {
	p := &model.Patient{
		PatientID:    id,
		Name:         name,
		Age:          age,
		Gender:       gender,
		Condition:    condition,
		AdmittedDate: model.MustParseDate(admitted),
	}
	if discharged != "" {
		d := model.MustParseDate(discharged)
		p.DischargedDate = &d
	}
	return p
}

func strPtr(s string) *string { return &s }
