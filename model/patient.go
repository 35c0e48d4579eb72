package model

import (
	"fmt"

	"github.com/goccy/go-json"
)

// DefaultDailyRate is the per-day hospitalization charge used when none is configured.
const DefaultDailyRate = 150

// Gender codes accepted for a patient.
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

// Patient is one hospitalization episode. PatientID never changes once assigned.
type Patient struct {
	PatientID      string
	Name           string
	Age            string
	Gender         string
	Condition      string
	AdmittedDate   Date
	DischargedDate *Date
}

// PatientRecord is the flat, primitive-only form of a Patient. It is the shape
// written to the JSON data file and to the patients table.
type PatientRecord struct {
	PatientID      string  `json:"patient_id" gorm:"column:patient_id;primaryKey;size:32" example:"0001"`
	Name           string  `json:"name" gorm:"column:name;not null" example:"Jane Doe"`
	Age            string  `json:"age" gorm:"column:age;size:3" example:"45"`
	Gender         string  `json:"gender" gorm:"column:gender;size:1" example:"F"`
	Condition      string  `json:"condition" gorm:"column:condition;not null" example:"Flu"`
	AdmittedDate   *string `json:"admitted_date" gorm:"column:admitted_date;size:10" example:"2024-01-01"`
	DischargedDate *string `json:"discharged_date" gorm:"column:discharged_date;size:10" example:"2024-01-05"`
}

// looseText decodes a JSON string, number or null into its text form.
type looseText string

func (t *looseText) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = looseText(s)
		return nil
	}
	if len(data) == 0 || (data[0] != '-' && (data[0] < '0' || data[0] > '9')) {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*t = looseText(n.String())
	return nil
}

// UnmarshalJSON accepts numeric patient_id and age values written by older files.
func (r *PatientRecord) UnmarshalJSON(data []byte) error {
	var wire struct {
		PatientID      looseText `json:"patient_id"`
		Name           string    `json:"name"`
		Age            looseText `json:"age"`
		Gender         string    `json:"gender"`
		Condition      string    `json:"condition"`
		AdmittedDate   *string   `json:"admitted_date"`
		DischargedDate *string   `json:"discharged_date"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*r = PatientRecord{
		PatientID:      string(wire.PatientID),
		Name:           wire.Name,
		Age:            string(wire.Age),
		Gender:         wire.Gender,
		Condition:      wire.Condition,
		AdmittedDate:   wire.AdmittedDate,
		DischargedDate: wire.DischargedDate,
	}
	return nil
}

// TableName pins the table name so the mirror stays readable by other tools.
func (PatientRecord) TableName() string {
	return "patients"
}

// IsDischarged reports whether the patient has a discharge date.
func (p *Patient) IsDischarged() bool {
	return p.DischargedDate != nil && !p.DischargedDate.IsZero()
}

// LengthOfStay returns the raw number of days between admission and
// discharge. It reports false while either date is missing.
func (p *Patient) LengthOfStay() (int, bool) {
	if !p.IsDischarged() || p.AdmittedDate.IsZero() {
		return 0, false
	}
	return p.DischargedDate.DaysSince(p.AdmittedDate), true
}

// CalculateBill returns the final bill text. A same-day discharge is billed as one day.
// When the patient has not been discharged the returned text explains why and ok is false.
func (p *Patient) CalculateBill(dailyRate int) (string, bool) {
	days, ok := p.LengthOfStay()
	if !ok {
		return "Cannot calculate bill, patient not yet discharged.", false
	}
	if days < 1 {
		days = 1
	}
	return fmt.Sprintf("$%d (%d days at $%d/day)", days*dailyRate, days, dailyRate), true
}

// String renders the fixed-width one line summary used by list views.
func (p *Patient) String() string {
	status := "Status: Admitted"
	if p.IsDischarged() {
		status = fmt.Sprintf("Discharged on %s", p.DischargedDate)
	}
	return fmt.Sprintf("ID: %s | Name: %-20s | Gender: %s | Age: %-3s | Condition: %-20s | %s",
		p.PatientID, p.Name, p.Gender, p.Age, p.Condition, status)
}

// ToRecord flattens the patient for serialization.
func (p *Patient) ToRecord() PatientRecord {
	record := PatientRecord{
		PatientID:    p.PatientID,
		Name:         p.Name,
		Age:          p.Age,
		Gender:       p.Gender,
		Condition:    p.Condition,
		AdmittedDate: datePointer(p.AdmittedDate),
	}
	if p.IsDischarged() {
		record.DischargedDate = datePointer(*p.DischargedDate)
	}
	return record
}

// PatientFromRecord rebuilds a Patient, parsing both dates.
func PatientFromRecord(record PatientRecord) (*Patient, error) {
	admitted, err := parseDatePointer(record.AdmittedDate)
	if err != nil {
		return nil, fmt.Errorf("patient %s admitted_date: %w", record.PatientID, err)
	}
	discharged, err := parseDatePointer(record.DischargedDate)
	if err != nil {
		return nil, fmt.Errorf("patient %s discharged_date: %w", record.PatientID, err)
	}

	patient := &Patient{
		PatientID:    record.PatientID,
		Name:         record.Name,
		Age:          record.Age,
		Gender:       record.Gender,
		Condition:    record.Condition,
		AdmittedDate: admitted,
	}
	if !discharged.IsZero() {
		patient.DischargedDate = &discharged
	}
	return patient, nil
}

// MarshalJSON encodes the patient as its flat record.
func (p Patient) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToRecord())
}

// UnmarshalJSON decodes a flat record into the patient.
func (p *Patient) UnmarshalJSON(data []byte) error {
	var record PatientRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return err
	}
	decoded, err := PatientFromRecord(record)
	if err != nil {
		return err
	}
	*p = *decoded
	return nil
}
