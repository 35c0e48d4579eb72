package endpoint

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ariebrainware/hospital-patient-manager/manager"
	"github.com/ariebrainware/hospital-patient-manager/util"
	"github.com/gin-gonic/gin"
)

// Export formats accepted by POST /export.
const (
	ExportFormatCSV     = "csv"
	ExportFormatParquet = "parquet"
)

type exportRequest struct {
	Filename string `json:"filename" example:"patients_export.csv"`
	Format   string `json:"format" validate:"omitempty,oneof=csv parquet" example:"csv"`
}

// GetStatistics godoc
// @Summary      Hospital statistics
// @Description  Totals, gender split, age groups, average stay and the three most common conditions
// @Tags         Report
// @Produce      json
// @Success      200 {object} util.APIResponse{data=model.Statistics} "Statistics retrieved"
// @Router       /statistics [get]
func GetStatistics(c *gin.Context) {
	m := getManager(c)
	if m == nil {
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Statistics retrieved",
		Data: m.GetStatistics(),
	})
}

// GetBedAvailability godoc
// @Summary      Bed availability
// @Description  Free beds out of the ward capacity
// @Tags         Report
// @Produce      json
// @Success      200 {object} util.APIResponse{data=object} "Bed status"
// @Router       /beds [get]
func GetBedAvailability(c *gin.Context) {
	m := getManager(c)
	if m == nil {
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Bed status",
		Data: map[string]interface{}{"status": m.BedAvailability()},
	})
}

// ExportData godoc
// @Summary      Export patients
// @Description  Write every patient to a CSV (default) or Parquet file in the server's working directory
// @Tags         Report
// @Accept       json
// @Produce      json
// @Param        request body exportRequest false "Target file and format"
// @Success      200 {object} util.APIResponse{data=object} "Data exported"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      500 {object} util.APIResponse "Export failed"
// @Router       /export [post]
func ExportData(c *gin.Context) {
	req := exportRequest{}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			util.CallUserError(c, util.APIErrorParams{
				Msg: "Invalid request body",
				Err: err,
			})
			return
		}
	}
	req.Format = strings.ToLower(strings.TrimSpace(req.Format))
	if err := util.ValidateStruct(req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid export format",
			Err: err,
		})
		return
	}

	filename, err := exportFilename(req)
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid export filename",
			Err: err,
		})
		return
	}

	m := getManager(c)
	if m == nil {
		return
	}
	if req.Format == ExportFormatParquet {
		err = m.ExportParquetFile(filename)
	} else {
		err = m.ExportCSV(filename)
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: fmt.Sprintf("Error: Could not export data to %s", filename),
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  fmt.Sprintf("Data successfully exported to %s", filename),
		Data: map[string]interface{}{"filename": filename, "format": formatOrDefault(req.Format)},
	})
}

func formatOrDefault(format string) string {
	if format == "" {
		return ExportFormatCSV
	}
	return format
}

// exportFilename keeps exports inside the working directory.
func exportFilename(req exportRequest) (string, error) {
	name := strings.TrimSpace(req.Filename)
	if name == "" {
		name = manager.DefaultExportFile
	}
	if filepath.Base(name) != name || name == "." || name == ".." {
		return "", fmt.Errorf("filename %q must not contain a directory", name)
	}
	if formatOrDefault(req.Format) == ExportFormatParquet {
		return util.ReplaceExtension(name, ".csv", ".parquet"), nil
	}
	return util.EnsureCSVExtension(name), nil
}
