package models

// Asset represents a tracked piece of hospital equipment or infrastructure
type Asset struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Category        AssetCategory      `json:"category"`
	Location        string             `json:"location"` // convention: "Sector - Subsector"
	Manufacturer    string             `json:"manufacturer"`
	Model           string             `json:"model"`
	SerialNumber    string             `json:"serialNumber"`
	WarrantyUntil   string             `json:"warrantyUntil"`   // YYYY-MM-DD
	LastMaintenance string             `json:"lastMaintenance"` // YYYY-MM-DD
	NextMaintenance string             `json:"nextMaintenance"` // YYYY-MM-DD
	Status          AssetStatus        `json:"status"`
	IsCalibratable  bool               `json:"isCalibratable,omitempty"`
	Calibration     *CalibrationRecord `json:"calibration,omitempty"`
	TelemetryOn     bool               `json:"telemetryEnabled,omitempty"`
}

// AssetStatus represents the operational status of an asset.
// Transitions are user-driven; any value may follow any other.
type AssetStatus string

const (
	AssetStatusOperational AssetStatus = "Operational"
	AssetStatusMaintenance AssetStatus = "Maintenance"
	AssetStatusCritical    AssetStatus = "Critical"
	AssetStatusRetired     AssetStatus = "Retired"
)

// AssetCategory represents the category of an asset
type AssetCategory string

const (
	CategoryMedical        AssetCategory = "Medical"
	CategoryInfrastructure AssetCategory = "Infrastructure"
	CategorySafety         AssetCategory = "Safety"
	CategoryComfort        AssetCategory = "Comfort"
)

// CalibrationRecord tracks the calibration certificate of a calibratable asset
type CalibrationRecord struct {
	ID                string `json:"id"`
	Date              string `json:"date"`
	CertificateNumber string `json:"certificateNumber"`
	ValidUntil        string `json:"validUntil"`
	Company           string `json:"company"`
	Status            string `json:"status"`
}
