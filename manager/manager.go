// Package manager owns the in-memory patient collection. Every mutation is
// persisted through the configured storage.Storage before the call returns.
package manager

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ariebrainware/hospital-patient-manager/model"
	"github.com/ariebrainware/hospital-patient-manager/storage"
	"github.com/ariebrainware/hospital-patient-manager/util"
	"go.uber.org/zap"
)

// DefaultTotalBeds is the ward capacity used when none is configured.
const DefaultTotalBeds = 50

// Manager is the single owner of the patient collection. It is not safe for
// concurrent use; callers that serve several clients must serialize access.
type Manager struct {
	store     storage.Storage
	patients  []*model.Patient
	lastID    int
	totalBeds int
	dailyRate int
	logger    *zap.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithTotalBeds sets the ward capacity used by BedAvailability.
func WithTotalBeds(n int) Option {
	return func(m *Manager) { m.totalBeds = n }
}

// WithDailyRate sets the per-day charge used by BillFor.
func WithDailyRate(rate int) Option {
	return func(m *Manager) { m.dailyRate = rate }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New loads the collection from store and seeds the ID counter with the
// largest all-digit patient ID found.
func New(store storage.Storage, opts ...Option) *Manager {
	m := &Manager{
		store:     store,
		totalBeds: DefaultTotalBeds,
		dailyRate: model.DefaultDailyRate,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.patients = store.LoadAll()
	for _, p := range m.patients {
		if id, ok := numericID(p.PatientID); ok && id > m.lastID {
			m.lastID = id
		}
	}
	m.logger.Info("patient collection loaded",
		zap.Int("patients", len(m.patients)),
		zap.Int("last_id", m.lastID))
	return m
}

func numericID(id string) (int, bool) {
	if id == "" {
		return 0, false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (m *Manager) persist(op string) error {
	if err := m.store.SaveAll(m.patients); err != nil {
		m.logger.Error("persist patients", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%s: save patients: %w", op, err)
	}
	return nil
}

// CreatePatient admits a new patient under the next sequential ID.
// The returned error only reports a persistence failure; the patient is kept in memory either way.
func (m *Manager) CreatePatient(name, age, gender, condition string, admitted model.Date) (*model.Patient, error) {
	m.lastID++
	patient := &model.Patient{
		PatientID:    fmt.Sprintf("%04d", m.lastID),
		Name:         name,
		Age:          age,
		Gender:       gender,
		Condition:    condition,
		AdmittedDate: admitted,
	}
	m.patients = append(m.patients, patient)
	util.LogPatientCreated(patient)
	return patient, m.persist("create patient")
}

// ListPatients returns every patient ordered by patient ID.
func (m *Manager) ListPatients() []*model.Patient {
	sorted := make([]*model.Patient, len(m.patients))
	copy(sorted, m.patients)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PatientID < sorted[j].PatientID
	})
	return sorted
}

// SearchByID returns the patient with exactly this ID, or nil.
func (m *Manager) SearchByID(id string) *model.Patient {
	for _, p := range m.patients {
		if p.PatientID == id {
			return p
		}
	}
	return nil
}

// SearchByName returns patients whose name contains term, ignoring case.
func (m *Manager) SearchByName(term string) []*model.Patient {
	return m.filter(term, func(p *model.Patient) string { return p.Name })
}

// SearchByCondition returns patients whose condition contains term, ignoring case.
func (m *Manager) SearchByCondition(term string) []*model.Patient {
	return m.filter(term, func(p *model.Patient) string { return p.Condition })
}

func (m *Manager) filter(term string, field func(*model.Patient) string) []*model.Patient {
	needle := strings.ToLower(term)
	matches := []*model.Patient{}
	for _, p := range m.patients {
		if strings.Contains(strings.ToLower(field(p)), needle) {
			matches = append(matches, p)
		}
	}
	return matches
}

// UpdatePatient applies the present slots of req. It reports false when no patient has this ID.
func (m *Manager) UpdatePatient(id string, req model.UpdatePatientRequest) (bool, error) {
	patient := m.SearchByID(id)
	if patient == nil {
		return false, nil
	}
	req.Apply(patient)
	util.LogPatientUpdated(id, updatedFields(req))
	return true, m.persist("update patient")
}

func updatedFields(req model.UpdatePatientRequest) []string {
	fields := []string{}
	for name, slot := range map[string]*string{"name": req.Name, "age": req.Age, "gender": req.Gender, "condition": req.Condition} {
		if slot != nil && *slot != "" {
			fields = append(fields, name)
		}
	}
	sort.Strings(fields)
	return fields
}

// DischargePatient records the discharge date once. It reports false when the
// patient is unknown or already discharged, without saying which.
// The date is not checked against the admission date.
func (m *Manager) DischargePatient(id string, date model.Date) (bool, error) {
	patient := m.SearchByID(id)
	if patient == nil || patient.IsDischarged() {
		return false, nil
	}
	discharged := date
	patient.DischargedDate = &discharged
	util.LogPatientDischarged(id, date)
	return true, m.persist("discharge patient")
}

// DeletePatient removes the patient from the collection. It reports false when no patient has this ID.
func (m *Manager) DeletePatient(id string) (bool, error) {
	for i, p := range m.patients {
		if p.PatientID != id {
			continue
		}
		m.patients = append(m.patients[:i], m.patients[i+1:]...)
		util.LogPatientDeleted(id)
		return true, m.persist("delete patient")
	}
	return false, nil
}

// BillFor returns the bill of a patient at the configured daily rate.
// ok is false when the patient is unknown or not yet discharged.
func (m *Manager) BillFor(id string) (string, bool) {
	patient := m.SearchByID(id)
	if patient == nil {
		return "", false
	}
	return patient.CalculateBill(m.dailyRate)
}

// BedAvailability reports free beds as "Available: free/total beds".
// The free count goes negative when more patients are admitted than there are beds.
func (m *Manager) BedAvailability() string {
	used := 0
	for _, p := range m.patients {
		if !p.IsDischarged() {
			used++
		}
	}
	return fmt.Sprintf("Available: %d/%d beds", m.totalBeds-used, m.totalBeds)
}

// DefaultExportFile is the export target when no filename is given.
const DefaultExportFile = "patients_export.csv"

// ErrExportFailed reports that the storage could not write the CSV export.
var ErrExportFailed = errors.New("export failed")

// ExportCSV writes the collection to a CSV file.
func (m *Manager) ExportCSV(filename string) error {
	ok := m.store.ExportCSV(m.patients, filename)
	util.LogDataExported(filename, len(m.patients), ok)
	if !ok {
		return fmt.Errorf("export %s: %w", filename, ErrExportFailed)
	}
	return nil
}

// ExportData writes the collection to a CSV file and returns a message for the user.
func (m *Manager) ExportData(filename string) string {
	return exportMessage(filename, m.ExportCSV(filename))
}

// ExportParquetFile writes the collection to a Parquet file.
func (m *Manager) ExportParquetFile(filename string) error {
	err := storage.WriteParquet(m.patients, filename)
	util.LogDataExported(filename, len(m.patients), err == nil)
	if err != nil {
		m.logger.Error("export parquet", zap.String("file", filename), zap.Error(err))
		return fmt.Errorf("export %s: %w", filename, err)
	}
	return nil
}

// ExportParquet writes the collection to a Parquet file and returns a message for the user.
func (m *Manager) ExportParquet(filename string) string {
	return exportMessage(filename, m.ExportParquetFile(filename))
}

func exportMessage(filename string, err error) string {
	if err != nil {
		return fmt.Sprintf("Error: Could not export data to %s", filename)
	}
	return fmt.Sprintf("Data successfully exported to %s", filename)
}
