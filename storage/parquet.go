package storage

import (
	"fmt"
	"os"

	"github.com/ariebrainware/hospital-patient-manager/model"
	"github.com/parquet-go/parquet-go"
)

// PatientRow is the Parquet schema for an exported patient.
type PatientRow struct {
	PatientID      string  `parquet:"patient_id"`
	Name           string  `parquet:"name"`
	Age            string  `parquet:"age"`
	Gender         string  `parquet:"gender"`
	Condition      string  `parquet:"condition"`
	AdmittedDate   *string `parquet:"admitted_date,optional"`
	DischargedDate *string `parquet:"discharged_date,optional"`
	Status         string  `parquet:"status"`
}

// WriteParquet writes one row per patient to filename with Snappy compression.
func WriteParquet(patients []*model.Patient, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}

	writer := parquet.NewGenericWriter[PatientRow](file,
		parquet.Compression(&parquet.Snappy),
	)

	rows := make([]PatientRow, 0, len(patients))
	for _, p := range patients {
		record := p.ToRecord()
		status := "Admitted"
		if p.IsDischarged() {
			status = "Discharged"
		}
		rows = append(rows, PatientRow{
			PatientID:      record.PatientID,
			Name:           record.Name,
			Age:            record.Age,
			Gender:         record.Gender,
			Condition:      record.Condition,
			AdmittedDate:   record.AdmittedDate,
			DischargedDate: record.DischargedDate,
			Status:         status,
		})
	}

	if _, err := writer.Write(rows); err != nil {
		file.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		file.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return file.Close()
}
