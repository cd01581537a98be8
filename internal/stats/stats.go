// Package stats holds the derived heuristics for the dashboard: asset
// health scoring, maintenance urgency badges and checklist compliance.
// Everything here is a pure function over a store snapshot.
package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"hospguardian/internal/models"
)

// HealthBadge is the preventive-risk rating of an asset
type HealthBadge struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}

// Health risk labels. Thresholds and scores are fixed, not configurable.
const (
	HealthHighRisk   = "High Risk"
	HealthMediumRisk = "Medium Risk"
	HealthHealthy    = "Healthy"
)

// Maintenance urgency labels
const (
	UrgencyOverdue  = "Overdue"
	UrgencyUrgent   = "Urgent"
	UrgencyUpcoming = "Upcoming"
)

const dateLayout = "2006-01-02"

// Health rates an asset by days since its last maintenance:
// over 180 days is high risk, over 90 medium, anything newer healthy.
// An unparseable date reads as freshly maintained.
func Health(lastMaintenance string, now time.Time) HealthBadge {
	last, err := time.Parse(dateLayout, lastMaintenance)
	if err != nil {
		return HealthBadge{Label: HealthHealthy, Score: 95}
	}
	days := int(math.Ceil(math.Abs(now.Sub(last).Hours() / 24)))
	switch {
	case days > 180:
		return HealthBadge{Label: HealthHighRisk, Score: 20}
	case days > 90:
		return HealthBadge{Label: HealthMediumRisk, Score: 60}
	default:
		return HealthBadge{Label: HealthHealthy, Score: 95}
	}
}

// Urgency classifies an asset by days until its next maintenance date.
// Past due is Overdue, within a week Urgent, within a month Upcoming;
// anything further out (or unparseable) gets no badge.
func Urgency(nextMaintenance string, now time.Time) string {
	next, err := time.Parse(dateLayout, nextMaintenance)
	if err != nil {
		return ""
	}
	days := int(math.Ceil(next.Sub(now).Hours() / 24))
	switch {
	case days < 0:
		return UrgencyOverdue
	case days <= 7:
		return UrgencyUrgent
	case days <= 30:
		return UrgencyUpcoming
	default:
		return ""
	}
}

// DaysUntil returns the whole days from now until a YYYY-MM-DD date,
// rounding up. Used by the maintenance-window alert rule.
func DaysUntil(date string, now time.Time) (int, bool) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0, false
	}
	return int(math.Ceil(d.Sub(now).Hours() / 24)), true
}

// ComplianceIndex is the rounded percentage of checklist items marked OK,
// zero for an empty checklist
func ComplianceIndex(items []models.ChecklistItem) int {
	if len(items) == 0 {
		return 0
	}
	ok := 0
	for _, item := range items {
		if item.Status == models.ChecklistStatusOK {
			ok++
		}
	}
	return int(math.Round(float64(ok) / float64(len(items)) * 100))
}

// CategoryStat is the per-sector slice of the health report
type CategoryStat struct {
	Name    string `json:"name"`
	Total   int    `json:"total"`
	OK      int    `json:"ok"`
	Pending int    `json:"pending"`
	Fail    int    `json:"fail"`
	Percent int    `json:"percent"`
}

// CategoryBreakdown aggregates checklist items per category and sorts
// ascending by percent OK, worst sectors first
func CategoryBreakdown(items []models.ChecklistItem) []CategoryStat {
	index := make(map[string]int)
	var breakdown []CategoryStat

	for _, item := range items {
		i, seen := index[item.Category]
		if !seen {
			i = len(breakdown)
			index[item.Category] = i
			breakdown = append(breakdown, CategoryStat{Name: item.Category})
		}
		breakdown[i].Total++
		switch item.Status {
		case models.ChecklistStatusOK:
			breakdown[i].OK++
		case models.ChecklistStatusPending:
			breakdown[i].Pending++
		case models.ChecklistStatusFail:
			breakdown[i].Fail++
		}
	}

	for i := range breakdown {
		breakdown[i].Percent = int(math.Round(float64(breakdown[i].OK) / float64(breakdown[i].Total) * 100))
	}
	sort.SliceStable(breakdown, func(a, b int) bool {
		return breakdown[a].Percent < breakdown[b].Percent
	})
	return breakdown
}

// SectorReportText renders the shareable plain-text maintenance report
func SectorReportText(items []models.ChecklistItem, now time.Time) string {
	compliance := ComplianceIndex(items)
	ok := 0
	for _, item := range items {
		if item.Status == models.ChecklistStatusOK {
			ok++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Maintenance Report - %s\n", now.Format("02/01/2006"))
	fmt.Fprintf(&b, "Compliance: %d%% (%d of %d OK)\n", compliance, ok, len(items))
	b.WriteString("Sectors:\n")
	for _, cat := range CategoryBreakdown(items) {
		fmt.Fprintf(&b, "- %s: %d%% OK\n", cat.Name, cat.Percent)
	}
	return b.String()
}
