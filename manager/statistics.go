package manager

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ariebrainware/hospital-patient-manager/model"
	"github.com/ariebrainware/hospital-patient-manager/util"
)

const topConditionsLimit = 3

// GetStatistics aggregates counts, stay length, age groups and the most common conditions.
func (m *Manager) GetStatistics() model.Statistics {
	stats := model.Statistics{
		TotalPatients: len(m.patients),
		AgeGroups:     ageGroups(m.patients),
		TopConditions: topConditions(m.patients, topConditionsLimit),
	}

	totalDays, stays := 0, 0
	for _, p := range m.patients {
		if !p.IsDischarged() {
			stats.ActivePatients++
		}
		switch p.Gender {
		case model.GenderMale:
			stats.MalePatients++
		case model.GenderFemale:
			stats.FemalePatients++
		case model.GenderOther:
			stats.OtherGender++
		}
		if days, ok := p.LengthOfStay(); ok {
			totalDays += days
			stays++
		}
	}
	if stays > 0 {
		stats.AverageStayDays = float64(totalDays) / float64(stays)
	}
	return stats
}

// ageGroups buckets every patient whose age parses as an integer.
func ageGroups(patients []*model.Patient) map[string]int {
	groups := make(map[string]int, len(model.AgeGroupLabels))
	for _, label := range model.AgeGroupLabels {
		groups[label] = 0
	}
	for _, p := range patients {
		age, err := strconv.Atoi(strings.TrimSpace(p.Age))
		if err != nil {
			continue
		}
		switch {
		case age <= 18:
			groups[model.AgeGroupChild]++
		case age <= 35:
			groups[model.AgeGroupYoung]++
		case age <= 60:
			groups[model.AgeGroupAdult]++
		default:
			groups[model.AgeGroupSenior]++
		}
	}
	return groups
}

// topConditions ranks normalized conditions by count; equal counts keep first-seen order.
func topConditions(patients []*model.Patient, limit int) []model.ConditionCount {
	counts := []model.ConditionCount{}
	index := map[string]int{}
	for _, p := range patients {
		condition := util.NormalizeCondition(p.Condition)
		if i, ok := index[condition]; ok {
			counts[i].Count++
			continue
		}
		index[condition] = len(counts)
		counts = append(counts, model.ConditionCount{Condition: condition, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}
