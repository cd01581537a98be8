package models

// ServiceOrder represents a maintenance work ticket (OS).
// AssetName and Location are a point-in-time snapshot taken at creation;
// later asset edits do not retroactively update historical orders.
type ServiceOrder struct {
	ID                   string        `json:"id"`
	AssetID              string        `json:"assetId,omitempty"`
	AssetName            string        `json:"assetName"`
	Location             string        `json:"location"`
	ServiceType          string        `json:"serviceType"`
	EquipmentReplacement string        `json:"equipmentReplacement,omitempty"`
	PartsUsed            string        `json:"partsUsed,omitempty"`
	RequesterName        string        `json:"requesterName"`
	Technician           string        `json:"technician,omitempty"`
	Status               OrderStatus   `json:"status"`
	Priority             OrderPriority `json:"priority"`
	MaterialNeeds        string        `json:"materialNeeds,omitempty"`
	IsWaitingPurchase    bool          `json:"isWaitingPurchase"`
	Deadline             string        `json:"deadline"`
	Description          string        `json:"description"`
	CreatedAt            string        `json:"createdAt"` // RFC3339
	CompletedAt          string        `json:"completedAt,omitempty"`
	Cost                 float64       `json:"cost,omitempty"`
	EvidencePhoto        string        `json:"evidencePhoto,omitempty"` // data-URI
	DigitalSignature     string        `json:"digitalSignature,omitempty"`
}

// OrderStatus represents the lifecycle state of a service order
type OrderStatus string

const (
	OrderStatusOpen       OrderStatus = "Open"
	OrderStatusInProgress OrderStatus = "InProgress"
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// OrderPriority represents the priority of a service order
type OrderPriority string

const (
	PriorityLow      OrderPriority = "Low"
	PriorityMedium   OrderPriority = "Medium"
	PriorityHigh     OrderPriority = "High"
	PriorityCritical OrderPriority = "Critical"
)
