package util

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ariebrainware/hospital-patient-manager/model"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityEventType represents the kinds of patient record events that get logged
type ActivityEventType string

const (
	EventPatientCreated    ActivityEventType = "PATIENT_CREATED"
	EventPatientUpdated    ActivityEventType = "PATIENT_UPDATED"
	EventPatientDischarged ActivityEventType = "PATIENT_DISCHARGED"
	EventPatientDeleted    ActivityEventType = "PATIENT_DELETED"
	EventDataExported      ActivityEventType = "DATA_EXPORTED"
	EventEndpointCall      ActivityEventType = "ENDPOINT_CALL"
)

// ActivityEvent represents a record event to be logged
type ActivityEvent struct {
	EventType ActivityEventType
	PatientID string
	Message   string
	Details   map[string]interface{}
}

var activityLogger = zap.NewNop()
var activityDB *gorm.DB

// SetActivityLogger sets the zap logger events are written to. Nil restores the no-op logger.
func SetActivityLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	activityLogger = logger.Named("activity")
}

// SetActivityLoggerDB sets a gorm DB instance events are also persisted to.
// Call this during startup after the DB has been opened; nil disables persistence.
func SetActivityLoggerDB(db *gorm.DB) error {
	activityDB = db
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&model.ActivityLog{})
}

const maxLogValueRunes = 200

// sanitizeLogValue removes newlines and other characters that could break log parsing
func sanitizeLogValue(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	if utf8.RuneCountInString(value) > maxLogValueRunes {
		value = string([]rune(value)[:maxLogValueRunes]) + "..."
	}
	return value
}

// LogActivityEvent logs a record event and best-effort persists it.
func LogActivityEvent(event ActivityEvent) {
	fields := []zap.Field{
		zap.String("event", sanitizeLogValue(string(event.EventType))),
		zap.String("patient_id", sanitizeLogValue(event.PatientID)),
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}
	activityLogger.Info(sanitizeLogValue(event.Message), fields...)

	if activityDB == nil {
		return
	}

	var details datatypes.JSON
	if event.Details != nil {
		if b, err := json.Marshal(event.Details); err == nil {
			details = datatypes.JSON(b)
		}
	}
	entry := model.ActivityLog{
		EventType: string(event.EventType),
		PatientID: sanitizeLogValue(event.PatientID),
		Message:   sanitizeLogValue(event.Message),
		Details:   details,
	}
	if err := activityDB.Create(&entry).Error; err != nil {
		activityLogger.Warn("failed to persist activity event", zap.Error(err))
	}
}

// LogPatientCreated logs an admission
func LogPatientCreated(p *model.Patient) {
	LogActivityEvent(ActivityEvent{
		EventType: EventPatientCreated,
		PatientID: p.PatientID,
		Message:   fmt.Sprintf("Patient %s admitted", p.Name),
		Details: map[string]interface{}{
			"condition":     p.Condition,
			"admitted_date": p.AdmittedDate.String(),
		},
	})
}

// LogPatientUpdated logs which fields of a patient changed
func LogPatientUpdated(patientID string, fields []string) {
	LogActivityEvent(ActivityEvent{
		EventType: EventPatientUpdated,
		PatientID: patientID,
		Message:   "Patient details updated",
		Details:   map[string]interface{}{"fields": fields},
	})
}

// LogPatientDischarged logs a discharge
func LogPatientDischarged(patientID string, date model.Date) {
	LogActivityEvent(ActivityEvent{
		EventType: EventPatientDischarged,
		PatientID: patientID,
		Message:   fmt.Sprintf("Patient discharged on %s", date),
	})
}

// LogPatientDeleted logs a record removal
func LogPatientDeleted(patientID string) {
	LogActivityEvent(ActivityEvent{
		EventType: EventPatientDeleted,
		PatientID: patientID,
		Message:   "Patient record deleted",
	})
}

// LogDataExported logs an export attempt and its outcome
func LogDataExported(filename string, count int, ok bool) {
	LogActivityEvent(ActivityEvent{
		EventType: EventDataExported,
		Message:   fmt.Sprintf("Export to %s", filename),
		Details: map[string]interface{}{
			"patients": count,
			"success":  ok,
		},
	})
}
