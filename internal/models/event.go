package models

// SystemEvent represents an append-only audit entry
type SystemEvent struct {
	ID        string    `json:"id"`
	Timestamp string    `json:"timestamp"` // RFC3339
	Type      EventType `json:"type"`
	User      string    `json:"user"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
}

// EventType represents the subsystem an event originated from
type EventType string

const (
	EventChecklist   EventType = "Checklist"
	EventOrder       EventType = "ServiceOrder"
	EventAlert       EventType = "VoiceAlert"
	EventAsset       EventType = "Asset"
	EventSystem      EventType = "System"
	EventSchedule    EventType = "Schedule"
	EventSecurity    EventType = "Security"
	EventStock       EventType = "Stock"
	EventTelemetry   EventType = "Telemetry"
	EventCalibration EventType = "Calibration"
)

// Severity represents the severity of a system event
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
	SeveritySecurity Severity = "security"
)
