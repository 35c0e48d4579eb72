package storage

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ariebrainware/hospital-patient-manager/model"
)

// CSVHeader is the first row of every export.
var CSVHeader = []string{"ID", "Name", "Age", "Gender", "Condition", "Admitted", "Discharged", "Status"}

// WriteCSV writes the header and one row per patient to filename, replacing any existing file.
func WriteCSV(patients []*model.Patient, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create %s: %w", filename, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(CSVHeader); err != nil {
		f.Close()
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range patients {
		if err := w.Write(csvRow(p)); err != nil {
			f.Close()
			return fmt.Errorf("write csv row %s: %w", p.PatientID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}

func csvRow(p *model.Patient) []string {
	discharged := "N/A"
	status := "Admitted"
	if p.IsDischarged() {
		discharged = p.DischargedDate.String()
		status = "Discharged"
	}
	return []string{
		p.PatientID,
		p.Name,
		p.Age,
		p.Gender,
		p.Condition,
		p.AdmittedDate.String(),
		discharged,
		status,
	}
}
