package models

// ChecklistItem represents a recurring inspection point, conventionally
// tied to one asset (id derived from the asset id)
type ChecklistItem struct {
	ID           string          `json:"id"`
	Label        string          `json:"label"`
	Category     string          `json:"category"`
	Status       ChecklistStatus `json:"status"`
	Observations string          `json:"observations"`
	LastChecked  string          `json:"lastChecked"` // YYYY-MM-DD
}

// ChecklistStatus represents the verification status of a checklist item
type ChecklistStatus string

const (
	ChecklistStatusOK      ChecklistStatus = "OK"
	ChecklistStatusPending ChecklistStatus = "Pending"
	ChecklistStatusFail    ChecklistStatus = "Fail"
)
