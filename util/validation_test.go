package util

import (
	"testing"

	"github.com/ariebrainware/hospital-patient-manager/model"
	"github.com/stretchr/testify/assert"
)

func TestValidateCreatePatientRequest(t *testing.T) {
	valid := model.CreatePatientRequest{
		Name:         "Jane Doe",
		Age:          "45",
		Gender:       "F",
		Condition:    "Flu",
		AdmittedDate: "2024-01-01",
	}
	assert.NoError(t, ValidateStruct(valid))

	tests := []struct {
		name    string
		mutate  func(r *model.CreatePatientRequest)
		message string
	}{
		{name: "missing name", mutate: func(r *model.CreatePatientRequest) { r.Name = "" }, message: "name is required"},
		{name: "age too high", mutate: func(r *model.CreatePatientRequest) { r.Age = "131" }, message: "age must be between 0 and 130"},
		{name: "age not numeric", mutate: func(r *model.CreatePatientRequest) { r.Age = "forty" }, message: "age must be a number"},
		{name: "bad gender", mutate: func(r *model.CreatePatientRequest) { r.Gender = "X" }, message: "gender must be one of M, F, O"},
		{name: "bad date", mutate: func(r *model.CreatePatientRequest) { r.AdmittedDate = "01/01/2024" }, message: "admitted_date must be a date in YYYY-MM-DD format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := ValidateStruct(req)
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestValidateUpdatePatientRequest(t *testing.T) {
	empty := ""
	bad := "Z"
	assert.NoError(t, ValidateStruct(model.UpdatePatientRequest{}))
	assert.NoError(t, ValidateStruct(model.UpdatePatientRequest{Gender: &empty}))
	assert.Error(t, ValidateStruct(model.UpdatePatientRequest{Gender: &bad}))
}

func TestParseAge(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr error
	}{
		{input: "45", want: "45"},
		{input: " 0 ", want: "0"},
		{input: "007", want: "7"},
		{input: "130", want: "130"},
		{input: "131", wantErr: ErrAgeOutOfRange},
		{input: "-1", wantErr: ErrAgeOutOfRange},
		{input: "abc", wantErr: ErrAgeNotNumber},
		{input: "", wantErr: ErrAgeNotNumber},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAge(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseGender(t *testing.T) {
	g, err := ParseGender(" f ")
	assert.NoError(t, err)
	assert.Equal(t, "F", g)

	_, err = ParseGender("male")
	assert.Error(t, err)
}
