package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hospguardian/internal/models"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) string {
	return now.AddDate(0, 0, -n).Format("2006-01-02")
}

func daysAhead(n int) string {
	return now.AddDate(0, 0, n).Format("2006-01-02")
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name            string
		lastMaintenance string
		label           string
		score           int
	}{
		{"recent maintenance", daysAgo(10), HealthHealthy, 95},
		{"over ninety days", daysAgo(100), HealthMediumRisk, 60},
		{"over six months", daysAgo(200), HealthHighRisk, 20},
		{"never maintained", "", HealthHealthy, 95},
		{"garbage date", "15/06/2024", HealthHealthy, 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			badge := Health(tt.lastMaintenance, now)
			assert.Equal(t, tt.label, badge.Label)
			assert.Equal(t, tt.score, badge.Score)
		})
	}
}

func TestUrgency(t *testing.T) {
	tests := []struct {
		name            string
		nextMaintenance string
		want            string
	}{
		{"past due", daysAgo(2), UrgencyOverdue},
		{"within a week", daysAhead(5), UrgencyUrgent},
		{"exactly a week", daysAhead(7), UrgencyUrgent},
		{"within a month", daysAhead(20), UrgencyUpcoming},
		{"far out", daysAhead(40), ""},
		{"unscheduled", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Urgency(tt.nextMaintenance, now))
		})
	}
}

func TestDaysUntil(t *testing.T) {
	days, ok := DaysUntil(daysAhead(5), now)
	assert.True(t, ok)
	assert.Equal(t, 5, days)

	days, ok = DaysUntil(daysAgo(3), now)
	assert.True(t, ok)
	assert.Equal(t, -3, days)

	_, ok = DaysUntil("not-a-date", now)
	assert.False(t, ok)
}

func checklist(statuses ...models.ChecklistStatus) []models.ChecklistItem {
	items := make([]models.ChecklistItem, len(statuses))
	for i, s := range statuses {
		items[i] = models.ChecklistItem{Status: s}
	}
	return items
}

func TestComplianceIndex(t *testing.T) {
	assert.Zero(t, ComplianceIndex(nil))
	assert.Equal(t, 100, ComplianceIndex(checklist(models.ChecklistStatusOK, models.ChecklistStatusOK)))
	assert.Equal(t, 67, ComplianceIndex(checklist(
		models.ChecklistStatusOK, models.ChecklistStatusOK, models.ChecklistStatusFail)))
	assert.Zero(t, ComplianceIndex(checklist(models.ChecklistStatusPending)))
}

func TestCategoryBreakdownSortsWorstFirst(t *testing.T) {
	items := []models.ChecklistItem{
		{Category: "ICU", Status: models.ChecklistStatusOK},
		{Category: "ICU", Status: models.ChecklistStatusOK},
		{Category: "ER", Status: models.ChecklistStatusFail},
		{Category: "ER", Status: models.ChecklistStatusOK},
		{Category: "Imaging", Status: models.ChecklistStatusPending},
	}

	breakdown := CategoryBreakdown(items)

	assert.Len(t, breakdown, 3)
	assert.Equal(t, "Imaging", breakdown[0].Name)
	assert.Equal(t, 0, breakdown[0].Percent)
	assert.Equal(t, "ER", breakdown[1].Name)
	assert.Equal(t, 50, breakdown[1].Percent)
	assert.Equal(t, "ICU", breakdown[2].Name)
	assert.Equal(t, 100, breakdown[2].Percent)
	assert.Equal(t, 1, breakdown[1].Fail)
	assert.Equal(t, 1, breakdown[0].Pending)
}

func TestCategoryBreakdownTiesKeepFirstSeenOrder(t *testing.T) {
	items := []models.ChecklistItem{
		{Category: "B", Status: models.ChecklistStatusOK},
		{Category: "A", Status: models.ChecklistStatusOK},
	}

	breakdown := CategoryBreakdown(items)
	assert.Equal(t, "B", breakdown[0].Name)
	assert.Equal(t, "A", breakdown[1].Name)
}

func TestSectorReportText(t *testing.T) {
	items := []models.ChecklistItem{
		{Category: "ICU", Status: models.ChecklistStatusOK},
		{Category: "ER", Status: models.ChecklistStatusFail},
	}

	report := SectorReportText(items, now)

	assert.True(t, strings.HasPrefix(report, "Maintenance Report - 15/06/2024"))
	assert.Contains(t, report, "Compliance: 50% (1 of 2 OK)")
	assert.Contains(t, report, "- ER: 0% OK")
	assert.Contains(t, report, "- ICU: 100% OK")
}
