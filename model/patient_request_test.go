package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestUpdatePatientRequestApply(t *testing.T) {
	p := newTestPatient("")

	UpdatePatientRequest{
		Name:      strPtr("Jane Roe"),
		Age:       strPtr(""),
		Condition: strPtr("Pneumonia"),
	}.Apply(p)

	assert.Equal(t, "Jane Roe", p.Name)
	assert.Equal(t, "45", p.Age, "empty slot must leave age untouched")
	assert.Equal(t, GenderFemale, p.Gender, "absent slot must leave gender untouched")
	assert.Equal(t, "Pneumonia", p.Condition)
	assert.Equal(t, "0001", p.PatientID)
}

func TestUpdatePatientRequestIsEmpty(t *testing.T) {
	assert.True(t, UpdatePatientRequest{}.IsEmpty())
	assert.True(t, UpdatePatientRequest{Name: strPtr("")}.IsEmpty())
	assert.False(t, UpdatePatientRequest{Gender: strPtr("O")}.IsEmpty())
}
