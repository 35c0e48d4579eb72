package storage

import (
	"testing"

	"github.com/ariebrainware/hospital-patient-manager/model"
)

func samplePatients(t *testing.T) []*model.Patient {
	t.Helper()
	discharged := model.MustParseDate("2024-01-05")
	return []*model.Patient{
		{
			PatientID:      "0001",
			Name:           "Jane Doe",
			Age:            "45",
			Gender:         model.GenderFemale,
			Condition:      "Flu",
			AdmittedDate:   model.MustParseDate("2024-01-01"),
			DischargedDate: &discharged,
		},
		{
			PatientID:    "0002",
			Name:         "Smith, John",
			Age:          "61",
			Gender:       model.GenderMale,
			Condition:    "Broken \"left\" arm",
			AdmittedDate: model.MustParseDate("2024-02-10"),
		},
	}
}
