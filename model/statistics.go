package model

// Age group labels, in display order.
const (
	AgeGroupChild  = "0-18"
	AgeGroupYoung  = "19-35"
	AgeGroupAdult  = "36-60"
	AgeGroupSenior = "61+"
)

// AgeGroupLabels lists the histogram buckets in display order.
var AgeGroupLabels = []string{AgeGroupChild, AgeGroupYoung, AgeGroupAdult, AgeGroupSenior}

// ConditionCount is one entry of the most-common-conditions ranking.
type ConditionCount struct {
	Condition string `json:"condition" example:"Flu"`
	Count     int    `json:"count" example:"3"`
}

// Statistics is the aggregate view over the whole patient collection.
// @Description Hospital statistics
type Statistics struct {
	TotalPatients   int              `json:"total_patients"`
	ActivePatients  int              `json:"active_patients"`
	MalePatients    int              `json:"male_patients"`
	FemalePatients  int              `json:"female_patients"`
	OtherGender     int              `json:"other_gender"`
	AgeGroups       map[string]int   `json:"age_groups"`
	AverageStayDays float64          `json:"average_stay_days"`
	TopConditions   []ConditionCount `json:"top_conditions"`
}
