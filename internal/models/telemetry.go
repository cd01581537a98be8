package models

// TelemetryReading represents the latest measurement reported for an asset
type TelemetryReading struct {
	ID         string        `json:"id"`
	AssetID    string        `json:"assetId"`
	Type       TelemetryType `json:"type"`
	Value      float64       `json:"value"`
	Unit       string        `json:"unit"`
	Min        float64       `json:"min"`
	Max        float64       `json:"max"`
	LastUpdate string        `json:"lastUpdate"` // RFC3339
}

// TelemetryType represents the kind of measurement
type TelemetryType string

const (
	TelemetryPressure    TelemetryType = "Pressure"
	TelemetryTemperature TelemetryType = "Temperature"
	TelemetryVibration   TelemetryType = "Vibration"
	TelemetryConsumption TelemetryType = "Consumption"
)

// OutOfRange reports whether the reading is outside its configured thresholds
func (t TelemetryReading) OutOfRange() bool {
	return t.Value < t.Min || t.Value > t.Max
}
