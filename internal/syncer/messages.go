package syncer

// Change-notification types carried on the cross-view channel
const (
	TypeChecklistUpdated = "CHECKLIST_UPDATED"
	TypeAssetsUpdated    = "ASSETS_UPDATED"
	TypeAssetAdded       = "ASSET_ADDED"
	TypeOrderCreated     = "ORDER_CREATED"
	TypeOrderUpdated     = "ORDER_UPDATED"
	TypeScheduleUpdated  = "SCHEDULE_UPDATED"
	TypeStockUpdated     = "STOCK_UPDATED"
	TypeStockAdded       = "STOCK_ADDED"
	TypeTelemetryUpdated = "TELEMETRY_UPDATED"
	TypeEventLogged      = "EVENT_LOGGED"
	TypeRoleChanged      = "ROLE_CHANGED"
	TypeQueueCleared     = "QUEUE_CLEARED"
)

// Message is a single change notification delivered to every open view
type Message struct {
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"` // unix milliseconds
	Data      interface{} `json:"data,omitempty"`
}

// Notifier is the write-side contract the entity store uses to announce
// changes without depending on the broadcaster implementation
type Notifier interface {
	Notify(eventType string, data interface{})
}
