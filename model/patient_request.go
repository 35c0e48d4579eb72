package model

// CreatePatientRequest carries admission input at the caller boundary.
// @Description Patient admission payload
type CreatePatientRequest struct {
	Name         string `json:"name" validate:"required" example:"Jane Doe"`
	Age          string `json:"age" validate:"required,numeric,age" example:"45"`
	Gender       string `json:"gender" validate:"required,oneof=M F O" example:"F"`
	Condition    string `json:"condition" validate:"required" example:"Flu"`
	AdmittedDate string `json:"admitted_date" validate:"required,datetime=2006-01-02" example:"2024-01-01"`
}

// UpdatePatientRequest holds one optional slot per mutable field.
// A nil or empty slot leaves the field unchanged.
// @Description Partial patient update payload
type UpdatePatientRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty" example:"Jane Roe"`
	Age       *string `json:"age,omitempty" validate:"omitempty,numeric,age" example:"46"`
	Gender    *string `json:"gender,omitempty" validate:"omitempty,oneof=M F O" example:"F"`
	Condition *string `json:"condition,omitempty" validate:"omitempty" example:"Pneumonia"`
}

// IsEmpty reports whether no slot carries a value.
func (r UpdatePatientRequest) IsEmpty() bool {
	return !present(r.Name) && !present(r.Age) && !present(r.Gender) && !present(r.Condition)
}

// Apply copies every present, non-empty slot onto the patient.
func (r UpdatePatientRequest) Apply(p *Patient) {
	if present(r.Name) {
		p.Name = *r.Name
	}
	if present(r.Age) {
		p.Age = *r.Age
	}
	if present(r.Gender) {
		p.Gender = *r.Gender
	}
	if present(r.Condition) {
		p.Condition = *r.Condition
	}
}

func present(s *string) bool {
	return s != nil && *s != ""
}
