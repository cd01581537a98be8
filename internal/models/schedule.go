package models

// WorkScheduleTask represents a preventive-maintenance calendar entry.
// Occurrences holds the precomputed list of future visit dates.
type WorkScheduleTask struct {
	ID             string         `json:"id"`
	AssetID        string         `json:"assetId,omitempty"`
	AssetName      string         `json:"assetName"`
	Location       string         `json:"location"`
	StartDate      string         `json:"startDate"` // YYYY-MM-DD
	IntervalMonths int            `json:"intervalMonths"`
	Occurrences    []string       `json:"occurrences"`
	Technician     string         `json:"technician,omitempty"`
	Status         ScheduleStatus `json:"status"`
	CreatedAt      string         `json:"createdAt"` // RFC3339
}

// ScheduleStatus represents the state of a scheduled maintenance task
type ScheduleStatus string

const (
	ScheduleStatusPlanned ScheduleStatus = "Planned"
	ScheduleStatusDone    ScheduleStatus = "Done"
	ScheduleStatusLate    ScheduleStatus = "Late"
)
