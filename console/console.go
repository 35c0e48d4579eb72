// Package console runs the interactive hospital menu on top of a manager.Manager.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ariebrainware/hospital-patient-manager/manager"
	"github.com/ariebrainware/hospital-patient-manager/model"
	"github.com/ariebrainware/hospital-patient-manager/util"
)

const menu = `

=== HOSPITAL PATIENT MANAGER ===
 1. Add Patient         2. View All Patients
 3. Search Patient      4. Search by Condition
 5. Update Patient      6. Discharge Patient
 7. Delete Patient      8. View Statistics
 9. Bed Availability   10. Export Data to CSV
 0. Exit
==============================
`

// Console reads menu choices from in and writes everything to out.
type Console struct {
	manager *manager.Manager
	in      *bufio.Reader
	out     io.Writer
}

// New builds a Console over m.
func New(m *manager.Manager, in io.Reader, out io.Writer) *Console {
	return &Console{manager: m, in: bufio.NewReader(in), out: out}
}

// Run shows the menu until the user exits or the input ends.
func (c *Console) Run() error {
	for {
		fmt.Fprint(c.out, menu)
		choice, err := c.readLine("\nEnter choice (0-10): ")
		if err != nil {
			return ignoreEOF(err)
		}

		choice = strings.TrimSpace(choice)
		action, ok := c.actions()[choice]
		switch {
		case choice == "0":
			fmt.Fprintln(c.out, "Exiting system. Goodbye!")
			return nil
		case !ok:
			fmt.Fprintln(c.out, "Invalid choice. Please enter a number between 0 and 10.")
		default:
			if err := action(); err != nil {
				return ignoreEOF(err)
			}
		}

		if _, err := c.readLine("\nPress Enter to continue..."); err != nil {
			return ignoreEOF(err)
		}
	}
}

func (c *Console) actions() map[string]func() error {
	return map[string]func() error{
		"1":  c.addPatient,
		"2":  c.viewAll,
		"3":  c.searchPatient,
		"4":  c.searchByCondition,
		"5":  c.updatePatient,
		"6":  c.dischargePatient,
		"7":  c.deletePatient,
		"8":  c.showStatistics,
		"9":  c.showBeds,
		"10": c.exportData,
	}
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// readLine prints prompt and returns the next line without its line ending.
func (c *Console) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) warnSave(err error) {
	if err != nil {
		fmt.Fprintf(c.out, "Warning: changes could not be saved: %v\n", err)
	}
}

func (c *Console) addPatient() error {
	fmt.Fprintln(c.out, "\n--- Add New Patient ---")
	name, err := c.promptString("Name: ")
	if err != nil {
		return err
	}
	age, err := c.promptAge("Age: ")
	if err != nil {
		return err
	}
	gender, err := c.promptGender("Gender (M/F/O): ")
	if err != nil {
		return err
	}
	condition, err := c.promptString("Condition: ")
	if err != nil {
		return err
	}
	admitted, err := c.promptDate("Admitted Date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}

	patient, err := c.manager.CreatePatient(name, age, gender, condition, admitted)
	c.warnSave(err)
	fmt.Fprintf(c.out, "\nSuccess! Patient '%s' added with ID: %s\n", patient.Name, patient.PatientID)
	return nil
}

func (c *Console) viewAll() error {
	c.printList(c.manager.ListPatients())
	return nil
}

func (c *Console) searchPatient() error {
	term, err := c.promptString("Enter Patient ID or Name to search: ")
	if err != nil {
		return err
	}
	if isDigits(term) {
		c.printPatient(c.manager.SearchByID(term))
		return nil
	}
	c.printList(c.manager.SearchByName(term))
	return nil
}

func (c *Console) searchByCondition() error {
	condition, err := c.promptString("Enter condition to search for: ")
	if err != nil {
		return err
	}
	c.printList(c.manager.SearchByCondition(condition))
	return nil
}

func (c *Console) updatePatient() error {
	id, err := c.promptString("Enter the ID of the patient to update: ")
	if err != nil {
		return err
	}
	patient := c.manager.SearchByID(id)
	if patient == nil {
		fmt.Fprintln(c.out, "Patient not found.")
		return nil
	}

	fmt.Fprintf(c.out, "\n--- Updating Patient: %s (%s) ---\n", patient.Name, patient.PatientID)
	fmt.Fprintln(c.out, "(Press Enter to keep current value)")

	var req model.UpdatePatientRequest
	name, err := c.readLine(fmt.Sprintf("New name (current: %s): ", patient.Name))
	if err != nil {
		return err
	}
	if name = strings.TrimSpace(name); name != "" {
		req.Name = &name
	}

	ageInput, err := c.readLine(fmt.Sprintf("New age (current: %s): ", patient.Age))
	if err != nil {
		return err
	}
	if ageInput = strings.TrimSpace(ageInput); ageInput != "" {
		age, err := util.ParseAge(ageInput)
		switch {
		case errors.Is(err, util.ErrAgeOutOfRange):
			fmt.Fprintln(c.out, "Invalid age. Age not updated.")
		case err != nil:
			fmt.Fprintln(c.out, "Invalid input for age. Age not updated.")
		default:
			req.Age = &age
		}
	}

	genderInput, err := c.readLine(fmt.Sprintf("New gender (current: %s): ", patient.Gender))
	if err != nil {
		return err
	}
	if strings.TrimSpace(genderInput) != "" {
		if gender, err := util.ParseGender(genderInput); err != nil {
			fmt.Fprintln(c.out, "Invalid gender. Gender not updated.")
		} else {
			req.Gender = &gender
		}
	}

	condition, err := c.readLine(fmt.Sprintf("New condition (current: %s): ", patient.Condition))
	if err != nil {
		return err
	}
	if condition = strings.TrimSpace(condition); condition != "" {
		req.Condition = &condition
	}

	if req.IsEmpty() {
		fmt.Fprintln(c.out, "\nNo changes were made.")
		return nil
	}
	updated, err := c.manager.UpdatePatient(id, req)
	c.warnSave(err)
	if updated {
		fmt.Fprintln(c.out, "\nPatient details updated successfully!")
	}
	return nil
}

func (c *Console) dischargePatient() error {
	id, err := c.promptString("Enter Patient ID to discharge: ")
	if err != nil {
		return err
	}
	date, err := c.promptDate("Enter Discharge Date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}

	discharged, err := c.manager.DischargePatient(id, date)
	c.warnSave(err)
	if !discharged {
		fmt.Fprintln(c.out, "Failed to discharge patient. They may not exist or are already discharged.")
		return nil
	}
	fmt.Fprintln(c.out, "Patient discharged successfully!")
	c.printPatient(c.manager.SearchByID(id))
	return nil
}

func (c *Console) deletePatient() error {
	id, err := c.promptString("Enter Patient ID to DELETE: ")
	if err != nil {
		return err
	}
	patient := c.manager.SearchByID(id)
	if patient == nil {
		fmt.Fprintln(c.out, "Patient not found.")
		return nil
	}

	confirm, err := c.readLine(fmt.Sprintf("Are you sure you want to PERMANENTLY DELETE %s (%s)? (y/n): ", patient.Name, patient.PatientID))
	if err != nil {
		return err
	}
	if strings.ToLower(confirm) != "y" {
		fmt.Fprintln(c.out, "Deletion cancelled.")
		return nil
	}

	deleted, err := c.manager.DeletePatient(id)
	c.warnSave(err)
	if deleted {
		fmt.Fprintln(c.out, "Patient record deleted successfully.")
	} else {
		fmt.Fprintln(c.out, "Error: Could not delete patient.")
	}
	return nil
}

func (c *Console) showStatistics() error {
	PrintStatistics(c.out, c.manager.GetStatistics())
	return nil
}

func (c *Console) showBeds() error {
	fmt.Fprintf(c.out, "\nBed Status: %s\n", c.manager.BedAvailability())
	return nil
}

func (c *Console) exportData() error {
	filename, err := c.readLine("Enter filename for the CSV export (e.g., patients_export.csv): ")
	if err != nil {
		return err
	}
	if filename = strings.TrimSpace(filename); filename == "" {
		filename = manager.DefaultExportFile
	}
	fmt.Fprintf(c.out, "\n%s\n", c.manager.ExportData(util.EnsureCSVExtension(filename)))
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
