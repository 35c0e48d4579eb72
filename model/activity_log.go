package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityLog represents a persisted patient record event
type ActivityLog struct {
	gorm.Model
	EventType string         `json:"event_type" gorm:"column:event_type;type:varchar(64);index"`
	PatientID string         `json:"patient_id" gorm:"column:patient_id;type:varchar(32);index"`
	Message   string         `json:"message" gorm:"column:message;type:text"`
	Details   datatypes.JSON `json:"details" gorm:"column:details;type:json"`
}
