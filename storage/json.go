package storage

import (
	"fmt"
	"os"

	"github.com/ariebrainware/hospital-patient-manager/model"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// DefaultDataFile is the JSON file used when no path is configured.
const DefaultDataFile = "patients.json"

// JSONStorage keeps the whole collection in one indented JSON array.
type JSONStorage struct {
	filename string
	logger   *zap.Logger
}

// NewJSONStorage returns a store backed by filename. A nil logger discards output.
func NewJSONStorage(filename string, logger *zap.Logger) *JSONStorage {
	if filename == "" {
		filename = DefaultDataFile
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONStorage{filename: filename, logger: logger}
}

// Filename returns the backing file path.
func (s *JSONStorage) Filename() string {
	return s.filename
}

// LoadAll reads the backing file. A missing file or undecodable content yields an empty slice.
func (s *JSONStorage) LoadAll() []*model.Patient {
	data, err := os.ReadFile(s.filename)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("read data file", zap.String("file", s.filename), zap.Error(err))
		}
		return []*model.Patient{}
	}

	var decoded []*model.Patient
	if err := json.Unmarshal(data, &decoded); err != nil {
		s.logger.Warn("decode data file, starting with an empty collection",
			zap.String("file", s.filename), zap.Error(err))
		return []*model.Patient{}
	}

	patients := make([]*model.Patient, 0, len(decoded))
	for _, p := range decoded {
		if p != nil {
			patients = append(patients, p)
		}
	}
	s.logger.Debug("loaded patients", zap.String("file", s.filename), zap.Int("count", len(patients)))
	return patients
}

// SaveAll overwrites the backing file with the full collection.
func (s *JSONStorage) SaveAll(patients []*model.Patient) error {
	records := make([]model.PatientRecord, 0, len(patients))
	for _, p := range patients {
		records = append(records, p.ToRecord())
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("encode patients: %w", err)
	}
	if err := os.WriteFile(s.filename, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.filename, err)
	}
	return nil
}

// ExportCSV writes a CSV snapshot of patients to filename.
func (s *JSONStorage) ExportCSV(patients []*model.Patient, filename string) bool {
	if err := WriteCSV(patients, filename); err != nil {
		s.logger.Error("export csv", zap.String("file", filename), zap.Error(err))
		return false
	}
	return true
}
