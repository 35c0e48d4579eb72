package endpoint

import (
	"fmt"
	"strings"

	"github.com/ariebrainware/hospital-patient-manager/manager"
	"github.com/ariebrainware/hospital-patient-manager/middleware"
	"github.com/ariebrainware/hospital-patient-manager/model"
	"github.com/ariebrainware/hospital-patient-manager/util"
	"github.com/gin-gonic/gin"
)

type dischargePatientRequest struct {
	DischargedDate string `json:"discharged_date" validate:"required,datetime=2006-01-02" example:"2024-01-05"`
}

// patientDetail is a patient plus the bill once it can be computed.
type patientDetail struct {
	Patient *model.Patient `json:"patient"`
	Bill    string         `json:"bill,omitempty"`
}

func getManager(c *gin.Context) *manager.Manager {
	m := middleware.GetManager(c)
	if m == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Patient manager not available",
			Err: fmt.Errorf("manager is nil"),
		})
	}
	return m
}

func detailOf(m *manager.Manager, p *model.Patient) patientDetail {
	detail := patientDetail{Patient: p}
	if bill, ok := m.BillFor(p.PatientID); ok {
		detail.Bill = bill
	}
	return detail
}

func intersect(a, b []*model.Patient) []*model.Patient {
	keep := make(map[string]struct{}, len(b))
	for _, p := range b {
		keep[p.PatientID] = struct{}{}
	}
	result := []*model.Patient{}
	for _, p := range a {
		if _, ok := keep[p.PatientID]; ok {
			result = append(result, p)
		}
	}
	return result
}

// ListPatients godoc
// @Summary      List patients
// @Description  List every patient ordered by ID, or search by name and/or condition
// @Tags         Patient
// @Produce      json
// @Param        name query string false "Case-insensitive name fragment"
// @Param        condition query string false "Case-insensitive condition fragment"
// @Success      200 {object} util.APIResponse{data=object} "Patients retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patient [get]
func ListPatients(c *gin.Context) {
	m := getManager(c)
	if m == nil {
		return
	}

	all := m.ListPatients()
	name := strings.TrimSpace(c.Query("name"))
	condition := strings.TrimSpace(c.Query("condition"))

	patients := all
	switch {
	case name != "" && condition != "":
		patients = intersect(m.SearchByName(name), m.SearchByCondition(condition))
	case name != "":
		patients = m.SearchByName(name)
	case condition != "":
		patients = m.SearchByCondition(condition)
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patients retrieved",
		Data: map[string]interface{}{"total": len(all), "total_fetched": len(patients), "patients": patients},
	})
}

// GetPatientInfo godoc
// @Summary      Get patient information
// @Description  Get a patient by ID, with the final bill when discharged
// @Tags         Patient
// @Produce      json
// @Param        id path string true "Patient ID"
// @Success      200 {object} util.APIResponse{data=patientDetail} "Patient retrieved"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /patient/{id} [get]
func GetPatientInfo(c *gin.Context) {
	m := getManager(c)
	if m == nil {
		return
	}

	patient := m.SearchByID(c.Param("id"))
	if patient == nil {
		callPatientNotFound(c)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient retrieved",
		Data: detailOf(m, patient),
	})
}

func callPatientNotFound(c *gin.Context) {
	util.CallErrorNotFound(c, util.APIErrorParams{
		Msg: "Patient not found",
		Err: fmt.Errorf("no patient with ID %q", c.Param("id")),
	})
}

// CreatePatient godoc
// @Summary      Admit a new patient
// @Description  Register a patient under the next sequential ID
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        request body model.CreatePatientRequest true "Patient information"
// @Success      201 {object} util.APIResponse{data=model.Patient} "Patient created"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patient [post]
func CreatePatient(c *gin.Context) {
	req := model.CreatePatientRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}

	req.Name = util.NormalizeName(req.Name)
	req.Condition = strings.TrimSpace(req.Condition)
	req.Gender = strings.ToUpper(strings.TrimSpace(req.Gender))
	req.Age = strings.TrimSpace(req.Age)
	if err := util.ValidateStruct(req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Patient payload is empty or missing required fields",
			Err: err,
		})
		return
	}

	// Both already passed validation.
	age, _ := util.ParseAge(req.Age)
	admitted, _ := model.ParseDate(req.AdmittedDate)

	m := getManager(c)
	if m == nil {
		return
	}
	patient, err := m.CreatePatient(req.Name, age, req.Gender, req.Condition, admitted)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Patient admitted but could not be saved",
			Err: err,
		})
		return
	}

	util.CallCreated(c, util.APISuccessParams{
		Msg:  "Patient created",
		Data: patient,
	})
}

// UpdatePatient godoc
// @Summary      Update patient information
// @Description  Change any of name, age, gender and condition; empty fields are left unchanged
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        id path string true "Patient ID"
// @Param        request body model.UpdatePatientRequest true "Updated patient information"
// @Success      200 {object} util.APIResponse{data=model.Patient} "Patient updated"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patient/{id} [patch]
func UpdatePatient(c *gin.Context) {
	req := model.UpdatePatientRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}

	normalizeUpdate(&req)
	if err := util.ValidateStruct(req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid patient fields",
			Err: err,
		})
		return
	}
	if req.IsEmpty() {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "No changes were made",
			Err: fmt.Errorf("update payload is empty"),
		})
		return
	}
	if req.Age != nil && *req.Age != "" {
		age, _ := util.ParseAge(*req.Age)
		req.Age = &age
	}

	m := getManager(c)
	if m == nil {
		return
	}
	found, err := m.UpdatePatient(c.Param("id"), req)
	if !found {
		callPatientNotFound(c)
		return
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to update patient",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient updated",
		Data: m.SearchByID(c.Param("id")),
	})
}

func normalizeUpdate(req *model.UpdatePatientRequest) {
	trim := func(s *string, normalize func(string) string) *string {
		if s == nil {
			return nil
		}
		v := normalize(*s)
		return &v
	}
	req.Name = trim(req.Name, util.NormalizeName)
	req.Age = trim(req.Age, strings.TrimSpace)
	req.Gender = trim(req.Gender, func(s string) string { return strings.ToUpper(strings.TrimSpace(s)) })
	req.Condition = trim(req.Condition, strings.TrimSpace)
}

// DischargePatient godoc
// @Summary      Discharge a patient
// @Description  Record the discharge date once and return the final bill
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        id path string true "Patient ID"
// @Param        request body dischargePatientRequest true "Discharge date"
// @Success      200 {object} util.APIResponse{data=patientDetail} "Patient discharged"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      409 {object} util.APIResponse "Patient already discharged"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patient/{id}/discharge [post]
func DischargePatient(c *gin.Context) {
	req := dischargePatientRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}
	req.DischargedDate = strings.TrimSpace(req.DischargedDate)
	if err := util.ValidateStruct(req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid discharge date",
			Err: err,
		})
		return
	}
	date, _ := model.ParseDate(req.DischargedDate)

	m := getManager(c)
	if m == nil {
		return
	}
	id := c.Param("id")
	patient := m.SearchByID(id)
	if patient == nil {
		callPatientNotFound(c)
		return
	}

	discharged, err := m.DischargePatient(id, date)
	if !discharged {
		util.CallConflict(c, util.APIErrorParams{
			Msg: "Patient already discharged",
			Err: fmt.Errorf("patient %s was discharged on %s", id, patient.DischargedDate),
		})
		return
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to discharge patient",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient discharged",
		Data: detailOf(m, patient),
	})
}

// DeletePatient godoc
// @Summary      Delete a patient
// @Description  Permanently remove a patient record
// @Tags         Patient
// @Produce      json
// @Param        id path string true "Patient ID"
// @Success      200 {object} util.APIResponse "Patient deleted"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patient/{id} [delete]
func DeletePatient(c *gin.Context) {
	m := getManager(c)
	if m == nil {
		return
	}

	deleted, err := m.DeletePatient(c.Param("id"))
	if !deleted {
		callPatientNotFound(c)
		return
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to delete patient",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Patient deleted",
	})
}
