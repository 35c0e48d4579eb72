package manager

import (
	"path/filepath"
	"testing"

	"github.com/ariebrainware/hospital-patient-manager/model"
	"github.com/ariebrainware/hospital-patient-manager/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeedsCounterFromNumericIDs(t *testing.T) {
	store := &MockStorage{Initial: []*model.Patient{
		patient("0003", "A", "10", "M", "Flu", "2024-01-01", ""),
		patient("legacy-9", "B", "10", "M", "Flu", "2024-01-01", ""),
		patient("0012", "C", "10", "F", "Flu", "2024-01-01", ""),
	}}
	m := New(store)

	p, err := m.CreatePatient("D", "20", "O", "Cold", model.MustParseDate("2024-02-01"))
	require.NoError(t, err)
	assert.Equal(t, "0013", p.PatientID)
}

func TestNewWithoutNumericIDsStartsAtOne(t *testing.T) {
	m := New(&MockStorage{Initial: []*model.Patient{
		patient("abc", "A", "10", "M", "Flu", "2024-01-01", ""),
	}})

	p, err := m.CreatePatient("B", "20", "F", "Cold", model.MustParseDate("2024-02-01"))
	require.NoError(t, err)
	assert.Equal(t, "0001", p.PatientID)
}

func TestCreatePatientAssignsSequentialIDs(t *testing.T) {
	store := &MockStorage{}
	m := New(store)

	var ids []string
	for i := 0; i < 5; i++ {
		p, err := m.CreatePatient("Patient", "30", "M", "Flu", model.MustParseDate("2024-01-01"))
		require.NoError(t, err)
		ids = append(ids, p.PatientID)
	}

	assert.Equal(t, []string{"0001", "0002", "0003", "0004", "0005"}, ids)
	assert.Len(t, store.Saved, 5, "every create persists the collection")
	assert.Len(t, store.LastSaved(t), 5)
}

func TestCreatePatientBeyondFourDigits(t *testing.T) {
	m := New(&MockStorage{Initial: []*model.Patient{
		patient("9999", "A", "10", "M", "Flu", "2024-01-01", ""),
	}})

	p, err := m.CreatePatient("B", "20", "F", "Cold", model.MustParseDate("2024-02-01"))
	require.NoError(t, err)
	assert.Equal(t, "10000", p.PatientID)
}

func TestCreatePatientSaveFailure(t *testing.T) {
	store := &MockStorage{SaveErr: errDiskFull}
	m := New(store)

	p, err := m.CreatePatient("Jane", "45", "F", "Flu", model.MustParseDate("2024-01-01"))
	assert.ErrorIs(t, err, errDiskFull)
	require.NotNil(t, p)
	assert.Same(t, p, m.SearchByID("0001"))
}

func TestListPatientsSortedByID(t *testing.T) {
	m := New(&MockStorage{Initial: []*model.Patient{
		patient("0003", "C", "10", "M", "Flu", "2024-01-01", ""),
		patient("0001", "A", "10", "M", "Flu", "2024-01-01", ""),
		patient("0002", "B", "10", "M", "Flu", "2024-01-01", ""),
	}})

	list := m.ListPatients()
	require.Len(t, list, 3)
	assert.Equal(t, "0001", list[0].PatientID)
	assert.Equal(t, "0002", list[1].PatientID)
	assert.Equal(t, "0003", list[2].PatientID)

	// the internal order is untouched
	assert.Equal(t, "0003", m.patients[0].PatientID)
}

func TestSearch(t *testing.T) {
	m := New(&MockStorage{Initial: []*model.Patient{
		patient("0001", "Jane Doe", "45", "F", "Influenza", "2024-01-01", ""),
		patient("0002", "John Doe", "50", "M", "Broken arm", "2024-01-01", ""),
		patient("0003", "Mary Major", "30", "F", "flu", "2024-01-01", ""),
	}})

	t.Run("by id", func(t *testing.T) {
		assert.Equal(t, "Jane Doe", m.SearchByID("0001").Name)
		assert.Nil(t, m.SearchByID("1"))
		assert.Nil(t, m.SearchByID("9999"))
	})

	t.Run("by name", func(t *testing.T) {
		matches := m.SearchByName("DOE")
		require.Len(t, matches, 2)
		assert.Equal(t, "0001", matches[0].PatientID)
		assert.Equal(t, "0002", matches[1].PatientID)
		assert.Empty(t, m.SearchByName("nobody"))
		assert.NotNil(t, m.SearchByName("nobody"))
	})

	t.Run("by condition", func(t *testing.T) {
		matches := m.SearchByCondition("FLU")
		require.Len(t, matches, 2)
		assert.Equal(t, "0001", matches[0].PatientID)
		assert.Equal(t, "0003", matches[1].PatientID)
	})
}

func TestUpdatePatient(t *testing.T) {
	store := &MockStorage{Initial: []*model.Patient{
		patient("0001", "Jane Doe", "45", "F", "Flu", "2024-01-01", ""),
	}}
	m := New(store)

	found, err := m.UpdatePatient("0001", model.UpdatePatientRequest{
		Name:      strPtr("Jane Roe"),
		Age:       strPtr(""),
		Condition: strPtr("Pneumonia"),
	})
	require.NoError(t, err)
	assert.True(t, found)

	p := m.SearchByID("0001")
	assert.Equal(t, "Jane Roe", p.Name)
	assert.Equal(t, "45", p.Age)
	assert.Equal(t, "F", p.Gender)
	assert.Equal(t, "Pneumonia", p.Condition)
	assert.Equal(t, "Jane Roe", store.LastSaved(t)[0].Name)
}

func TestUpdatePatientNotFound(t *testing.T) {
	store := &MockStorage{}
	m := New(store)

	found, err := m.UpdatePatient("0042", model.UpdatePatientRequest{Name: strPtr("X")})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, store.Saved)
}

func TestDischargePatient(t *testing.T) {
	store := &MockStorage{Initial: []*model.Patient{
		patient("0001", "Jane Doe", "45", "F", "Flu", "2024-01-01", ""),
	}}
	m := New(store)

	ok, err := m.DischargePatient("0001", model.MustParseDate("2024-01-05"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2024-01-05", *store.LastSaved(t)[0].DischargedDate)

	// a second discharge fails and keeps the first date
	ok, err = m.DischargePatient("0001", model.MustParseDate("2024-02-01"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "2024-01-05", m.SearchByID("0001").DischargedDate.String())
	assert.Len(t, store.Saved, 1)

	ok, err = m.DischargePatient("0099", model.MustParseDate("2024-02-01"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDischargeBeforeAdmissionIsKept(t *testing.T) {
	m := New(&MockStorage{Initial: []*model.Patient{
		patient("0001", "Jane Doe", "45", "F", "Flu", "2024-01-10", ""),
	}})

	ok, err := m.DischargePatient("0001", model.MustParseDate("2024-01-08"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, -2.0, m.GetStatistics().AverageStayDays)

	bill, ok := m.BillFor("0001")
	assert.True(t, ok)
	assert.Equal(t, "$150 (1 days at $150/day)", bill)
}

func TestDeletePatient(t *testing.T) {
	store := &MockStorage{Initial: []*model.Patient{
		patient("0001", "A", "10", "M", "Flu", "2024-01-01", ""),
		patient("0002", "B", "10", "M", "Flu", "2024-01-01", ""),
	}}
	m := New(store)

	ok, err := m.DeletePatient("0001")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, m.SearchByID("0001"))
	require.Len(t, store.LastSaved(t), 1)
	assert.Equal(t, "0002", store.LastSaved(t)[0].PatientID)

	ok, err = m.DeletePatient("0001")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteDoesNotReuseIDs(t *testing.T) {
	m := New(&MockStorage{})
	_, _ = m.CreatePatient("A", "10", "M", "Flu", model.MustParseDate("2024-01-01"))
	_, _ = m.DeletePatient("0001")

	p, err := m.CreatePatient("B", "10", "M", "Flu", model.MustParseDate("2024-01-01"))
	require.NoError(t, err)
	assert.Equal(t, "0002", p.PatientID)
}

func TestBedAvailability(t *testing.T) {
	m := New(&MockStorage{Initial: []*model.Patient{
		patient("0001", "A", "10", "M", "Flu", "2024-01-01", ""),
		patient("0002", "B", "10", "M", "Flu", "2024-01-01", "2024-01-03"),
	}})
	assert.Equal(t, "Available: 49/50 beds", m.BedAvailability())

	small := New(&MockStorage{Initial: []*model.Patient{
		patient("0001", "A", "10", "M", "Flu", "2024-01-01", ""),
		patient("0002", "B", "10", "M", "Flu", "2024-01-01", ""),
		patient("0003", "C", "10", "M", "Flu", "2024-01-01", ""),
	}}, WithTotalBeds(2))
	assert.Equal(t, "Available: -1/2 beds", small.BedAvailability())
}

func TestBillFor(t *testing.T) {
	m := New(&MockStorage{Initial: []*model.Patient{
		patient("0001", "A", "10", "M", "Flu", "2024-01-01", "2024-01-03"),
		patient("0002", "B", "10", "M", "Flu", "2024-01-01", ""),
	}}, WithDailyRate(200))

	bill, ok := m.BillFor("0001")
	assert.True(t, ok)
	assert.Equal(t, "$400 (2 days at $200/day)", bill)

	_, ok = m.BillFor("0002")
	assert.False(t, ok)
	_, ok = m.BillFor("0404")
	assert.False(t, ok)
}

func TestExportData(t *testing.T) {
	store := &MockStorage{ExportOK: true}
	m := New(store)
	assert.Equal(t, "Data successfully exported to out.csv", m.ExportData("out.csv"))

	store.ExportOK = false
	assert.Equal(t, "Error: Could not export data to out.csv", m.ExportData("out.csv"))
	assert.Equal(t, []string{"out.csv", "out.csv"}, store.ExportCalls)

	assert.ErrorIs(t, m.ExportCSV("again.csv"), ErrExportFailed)
	store.ExportOK = true
	assert.NoError(t, m.ExportCSV("again.csv"))
}

func TestExportParquet(t *testing.T) {
	m, _ := newJSONManager(t)
	_, err := m.CreatePatient("Jane", "45", "F", "Flu", model.MustParseDate("2024-01-01"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "patients.parquet")
	assert.Equal(t, "Data successfully exported to "+path, m.ExportParquet(path))

	bad := filepath.Join(t.TempDir(), "missing", "patients.parquet")
	assert.Equal(t, "Error: Could not export data to "+bad, m.ExportParquet(bad))
	assert.Error(t, m.ExportParquetFile(bad))
}

// Jane Doe is admitted, discharged after four days and deleted, all through the JSON file.
func TestJaneDoeScenario(t *testing.T) {
	m, path := newJSONManager(t)

	p, err := m.CreatePatient("Jane Doe", "45", "F", "Flu", model.MustParseDate("2024-01-01"))
	require.NoError(t, err)
	assert.Equal(t, "0001", p.PatientID)

	ok, err := m.DischargePatient("0001", model.MustParseDate("2024-01-05"))
	require.NoError(t, err)
	require.True(t, ok)

	bill, ok := m.SearchByID("0001").CalculateBill(model.DefaultDailyRate)
	assert.True(t, ok)
	assert.Equal(t, "$600 (4 days at $150/day)", bill)

	// a fresh manager sees the same data
	reloaded := New(storage.NewJSONStorage(path, nil))
	assert.Equal(t, m.ListPatients(), reloaded.ListPatients())

	ok, err = m.DeletePatient("0001")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, m.SearchByID("0001"))
	assert.Empty(t, New(storage.NewJSONStorage(path, nil)).ListPatients())
}

func TestCounterSurvivesRestart(t *testing.T) {
	m, path := newJSONManager(t)
	for i := 0; i < 3; i++ {
		_, err := m.CreatePatient("P", "30", "M", "Flu", model.MustParseDate("2024-01-01"))
		require.NoError(t, err)
	}

	reloaded := New(storage.NewJSONStorage(path, nil))
	p, err := reloaded.CreatePatient("Q", "30", "M", "Flu", model.MustParseDate("2024-01-01"))
	require.NoError(t, err)
	assert.Equal(t, "0004", p.PatientID)
}
