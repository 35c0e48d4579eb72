package console

import (
	"fmt"
	"io"

	"github.com/ariebrainware/hospital-patient-manager/model"
)

func (c *Console) printList(patients []*model.Patient) {
	PrintPatients(c.out, patients)
}

func (c *Console) printPatient(p *model.Patient) {
	if p == nil {
		fmt.Fprintln(c.out, "No patient found with the given term.")
		return
	}
	fmt.Fprintln(c.out, "\n--- Patient Details ---")
	fmt.Fprintln(c.out, p)
	if p.IsDischarged() {
		bill, _ := c.manager.BillFor(p.PatientID)
		fmt.Fprintf(c.out, "Final Bill: %s\n", bill)
	}
	fmt.Fprintln(c.out, "-----------------------")
}

// PrintPatients writes one display line per patient, or a notice when there are none.
func PrintPatients(w io.Writer, patients []*model.Patient) {
	if len(patients) == 0 {
		fmt.Fprintln(w, "No patients found.")
		return
	}
	fmt.Fprintln(w, "\n--- Patient List ---")
	for _, p := range patients {
		fmt.Fprintln(w, p)
	}
	fmt.Fprintln(w, "--------------------")
}

// PrintStatistics writes the statistics report.
func PrintStatistics(w io.Writer, stats model.Statistics) {
	fmt.Fprintln(w, "\n--- HOSPITAL STATISTICS ---")
	fmt.Fprintf(w, "Total Patients (All Time): %d\n", stats.TotalPatients)
	fmt.Fprintf(w, "Active (Admitted) Patients: %d\n", stats.ActivePatients)
	fmt.Fprintf(w, "Average Length of Stay: %.2f days\n", stats.AverageStayDays)
	fmt.Fprintln(w, "\nGender Distribution:")
	fmt.Fprintf(w, "  - Male: %d, Female: %d, Other: %d\n", stats.MalePatients, stats.FemalePatients, stats.OtherGender)
	fmt.Fprintln(w, "\nAge Groups:")
	for _, label := range model.AgeGroupLabels {
		fmt.Fprintf(w, "  - %s: %d\n", label, stats.AgeGroups[label])
	}
	fmt.Fprintln(w, "\nTop 3 Most Common Conditions:")
	if len(stats.TopConditions) == 0 {
		fmt.Fprintln(w, "  - Not enough data.")
	}
	for i, cc := range stats.TopConditions {
		fmt.Fprintf(w, "  %d. %s (%d cases)\n", i+1, cc.Condition, cc.Count)
	}
	fmt.Fprintln(w, "---------------------------")
}
