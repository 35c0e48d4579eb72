package storage

import (
	"fmt"

	"github.com/ariebrainware/hospital-patient-manager/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBStorage mirrors the collection into the patients table.
type DBStorage struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewDBStorage migrates the patients table and returns a store over db.
func NewDBStorage(db *gorm.DB, logger *zap.Logger) (*DBStorage, error) {
	if db == nil {
		return nil, ErrNoDB
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := db.AutoMigrate(&model.PatientRecord{}); err != nil {
		return nil, fmt.Errorf("migrate patients table: %w", err)
	}
	return &DBStorage{db: db, logger: logger}, nil
}

// LoadAll reads every row. Query or decode failures yield an empty slice.
func (s *DBStorage) LoadAll() []*model.Patient {
	var records []model.PatientRecord
	if err := s.db.Order("patient_id ASC").Find(&records).Error; err != nil {
		s.logger.Warn("load patients from database", zap.Error(err))
		return []*model.Patient{}
	}

	patients := make([]*model.Patient, 0, len(records))
	for _, r := range records {
		p, err := model.PatientFromRecord(r)
		if err != nil {
			s.logger.Warn("decode patient row, starting with an empty collection", zap.Error(err))
			return []*model.Patient{}
		}
		patients = append(patients, p)
	}
	return patients
}

// SaveAll replaces every row with the given collection in one transaction.
func (s *DBStorage) SaveAll(patients []*model.Patient) error {
	records := make([]model.PatientRecord, 0, len(patients))
	for _, p := range patients {
		records = append(records, p.ToRecord())
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.PatientRecord{}).Error; err != nil {
			return fmt.Errorf("clear patients table: %w", err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.Create(&records).Error; err != nil {
			return fmt.Errorf("insert patients: %w", err)
		}
		return nil
	})
}

// ExportCSV writes a CSV snapshot of patients to filename.
func (s *DBStorage) ExportCSV(patients []*model.Patient, filename string) bool {
	if err := WriteCSV(patients, filename); err != nil {
		s.logger.Error("export csv", zap.String("file", filename), zap.Error(err))
		return false
	}
	return true
}
