package store

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"hospguardian/internal/models"
	"hospguardian/internal/monitoring"
	"hospguardian/internal/syncer"
)

// Persisted namespace keys. One key per entity collection, mirroring the
// storage layout of the original registry.
const (
	namespace    = "hospguardian_"
	keyChecklist = namespace + "checklist_data"
	keyAssets    = namespace + "assets_data"
	keyOrders    = namespace + "orders_data"
	keyEvents    = namespace + "events_log"
	keySchedule  = namespace + "work_schedule"
	keyStock     = namespace + "stock_data"
	keyTelemetry = namespace + "telemetry_data"
	keyUserRole  = namespace + "user_role"
)

// maxEvents caps the audit log at the most recent entries
const maxEvents = 500

// bootstrapUser is the acting user recorded on the synthetic first event
const bootstrapUser = "HospGuardian Core"

// Store owns every entity collection. Views hold only transient copies;
// all mutations go through here so they persist and broadcast.
type Store struct {
	kv       *KV
	notifier syncer.Notifier
	metrics  *monitoring.Metrics
	log      zerolog.Logger
	now      func() time.Time

	// mu serializes every read-modify-write on the collections; handlers
	// run concurrently and an unguarded load/mutate/put loses writes.
	// Plain reads go straight to the KV layer.
	mu sync.Mutex
}

// New creates the entity store. notifier and metrics may be nil.
func New(kv *KV, notifier syncer.Notifier, metrics *monitoring.Metrics, log zerolog.Logger) *Store {
	return &Store{
		kv:       kv,
		notifier: notifier,
		metrics:  metrics,
		log:      log,
		now:      time.Now,
	}
}

func (s *Store) notify(eventType string, data interface{}) {
	if s.notifier != nil {
		s.notifier.Notify(eventType, data)
	}
}

func (s *Store) put(key string, v interface{}) {
	if err := s.kv.Put(key, v); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("store write failed")
	}
}

// localDate returns the current date in the local timezone as YYYY-MM-DD
func (s *Store) localDate() string {
	return s.now().Format("2006-01-02")
}

// sanitize strips angle brackets from free text before it reaches the
// audit log or observations fields
func sanitize(v string) string {
	v = strings.ReplaceAll(v, "<", "")
	v = strings.ReplaceAll(v, ">", "")
	return strings.TrimSpace(v)
}

// Role / security

// Role returns the persisted user role, defaulting to Technician
func (s *Store) Role() models.UserRole {
	var role models.UserRole
	if !s.kv.Get(keyUserRole, &role) || role == "" {
		return models.RoleTechnician
	}
	return role
}

// SetRole persists the active role and broadcasts the change
func (s *Store) SetRole(role models.UserRole) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(keyUserRole, role)
	s.notify(syncer.TypeRoleChanged, nil)
}

// Event log

// Events returns the audit log, newest first. A log that has never been
// written (or cannot be read) yields a single synthetic bootstrap entry.
func (s *Store) Events() []models.SystemEvent {
	var events []models.SystemEvent
	if !s.kv.Get(keyEvents, &events) {
		return []models.SystemEvent{{
			ID:        "EV-INIT",
			Timestamp: s.now().Format(time.RFC3339),
			Type:      models.EventSystem,
			User:      bootstrapUser,
			Message:   "Hospital management system activated.",
			Severity:  models.SeveritySecurity,
		}}
	}
	return events
}

// LogEvent prepends a sanitized audit entry and truncates the log to the
// most recent 500 entries
func (s *Store) LogEvent(eventType models.EventType, message string, severity models.Severity) models.SystemEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.Events()
	event := models.SystemEvent{
		ID:        newEventID(s.now()),
		Timestamp: s.now().Format(time.RFC3339),
		Type:      eventType,
		User:      string(s.Role()),
		Message:   sanitize(message),
		Severity:  severity,
	}
	events = append([]models.SystemEvent{event}, events...)
	if len(events) > maxEvents {
		events = events[:maxEvents]
	}
	s.put(keyEvents, events)
	s.metrics.RecordEvent(string(severity))
	s.notify(syncer.TypeEventLogged, event)
	return event
}

// Checklist

// Checklist returns all checklist items
func (s *Store) Checklist() []models.ChecklistItem {
	var items []models.ChecklistItem
	s.kv.Get(keyChecklist, &items)
	return items
}

// SaveChecklistItem upserts a checklist item by id
func (s *Store) SaveChecklistItem(item models.ChecklistItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveChecklistItem(item)
}

// saveChecklistItem is the upsert body; callers hold s.mu
func (s *Store) saveChecklistItem(item models.ChecklistItem) {
	item.Observations = sanitize(item.Observations)
	items := s.Checklist()
	replaced := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, item)
	}
	s.put(keyChecklist, items)
	s.metrics.RecordSave("checklist")
	s.notify(syncer.TypeChecklistUpdated, item)
}

// Assets

// Assets returns all registered assets, newest first
func (s *Store) Assets() []models.Asset {
	var assets []models.Asset
	s.kv.Get(keyAssets, &assets)
	return assets
}

// AssetByID looks up a single asset
func (s *Store) AssetByID(id string) (models.Asset, bool) {
	for _, a := range s.Assets() {
		if a.ID == id {
			return a, true
		}
	}
	return models.Asset{}, false
}

// SaveAsset replaces an existing asset in place. Unknown ids are ignored;
// registration goes through AddAsset.
func (s *Store) SaveAsset(asset models.Asset) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	assets := s.Assets()
	for i := range assets {
		if assets[i].ID == asset.ID {
			assets[i] = asset
			s.put(keyAssets, assets)
			s.metrics.RecordSave("asset")
			s.notify(syncer.TypeAssetsUpdated, asset)
			return true
		}
	}
	return false
}

// UpdateAssetStatus mutates only the status field of an asset
func (s *Store) UpdateAssetStatus(id string, status models.AssetStatus) (models.Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	assets := s.Assets()
	for i := range assets {
		if assets[i].ID == id {
			assets[i].Status = status
			s.put(keyAssets, assets)
			s.metrics.RecordSave("asset")
			s.notify(syncer.TypeAssetsUpdated, assets[i])
			return assets[i], true
		}
	}
	return models.Asset{}, false
}

// AddAsset registers a new asset and synthesizes its companion checklist
// item (status OK, last checked today)
func (s *Store) AddAsset(asset models.Asset) models.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset.ID = newAssetID()
	assets := append([]models.Asset{asset}, s.Assets()...)
	s.put(keyAssets, assets)
	s.metrics.RecordSave("asset")

	s.saveChecklistItem(models.ChecklistItem{
		ID:          ChecklistIDForAsset(asset.ID),
		Label:       asset.Name,
		Category:    string(asset.Category),
		Status:      models.ChecklistStatusOK,
		LastChecked: s.localDate(),
	})

	s.notify(syncer.TypeAssetAdded, asset)
	return asset
}

// Service orders

// Orders returns all service orders, newest first
func (s *Store) Orders() []models.ServiceOrder {
	var orders []models.ServiceOrder
	s.kv.Get(keyOrders, &orders)
	return orders
}

// OrderByID looks up a single service order
func (s *Store) OrderByID(id string) (models.ServiceOrder, bool) {
	for _, o := range s.Orders() {
		if o.ID == id {
			return o, true
		}
	}
	return models.ServiceOrder{}, false
}

// CreateOrder opens a new service order. The asset name and location on
// the order are a snapshot frozen at creation time.
func (s *Store) CreateOrder(order models.ServiceOrder) models.ServiceOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = newOrderID(s.now())
	order.CreatedAt = s.now().Format(time.RFC3339)
	if order.Status == "" {
		order.Status = models.OrderStatusOpen
	}
	orders := append([]models.ServiceOrder{order}, s.Orders()...)
	s.put(keyOrders, orders)
	s.metrics.RecordSave("order")
	s.notify(syncer.TypeOrderCreated, order)
	return order
}

// SaveOrder replaces an existing order in place
func (s *Store) SaveOrder(order models.ServiceOrder) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := s.Orders()
	for i := range orders {
		if orders[i].ID == order.ID {
			orders[i] = order
			s.put(keyOrders, orders)
			s.metrics.RecordSave("order")
			s.notify(syncer.TypeOrderUpdated, order)
			return true
		}
	}
	return false
}

// MaintenanceHistory returns the completed orders that reference the asset
func (s *Store) MaintenanceHistory(assetID string) []models.ServiceOrder {
	var history []models.ServiceOrder
	for _, o := range s.Orders() {
		if o.AssetID == assetID && o.Status == models.OrderStatusCompleted {
			history = append(history, o)
		}
	}
	return history
}

// Work schedule

// WorkSchedule returns all scheduled maintenance tasks, newest first
func (s *Store) WorkSchedule() []models.WorkScheduleTask {
	var tasks []models.WorkScheduleTask
	s.kv.Get(keySchedule, &tasks)
	return tasks
}

// CreateWorkScheduleTask plans a recurring maintenance visit. Exactly four
// occurrence dates are generated by advancing the start date by the month
// interval; calendar overflow follows native date rollover (Jan 31 plus one
// month lands in early March) and is not corrected.
func (s *Store) CreateWorkScheduleTask(task models.WorkScheduleTask) models.WorkScheduleTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	var occurrences []string
	if task.StartDate != "" && task.IntervalMonths > 0 {
		if start, err := time.Parse("2006-01-02", task.StartDate); err == nil {
			current := start
			for i := 0; i < 4; i++ {
				occurrences = append(occurrences, current.Format("2006-01-02"))
				current = current.AddDate(0, task.IntervalMonths, 0)
			}
		} else {
			s.log.Warn().Str("startDate", task.StartDate).Msg("unparseable schedule start date")
		}
	}

	task.ID = newScheduleID(s.now())
	task.Occurrences = occurrences
	task.CreatedAt = s.now().Format(time.RFC3339)
	if task.StartDate == "" {
		task.StartDate = s.localDate()
	}
	if task.IntervalMonths == 0 {
		task.IntervalMonths = 3
	}
	if task.Status == "" {
		task.Status = models.ScheduleStatusPlanned
	}

	tasks := append([]models.WorkScheduleTask{task}, s.WorkSchedule()...)
	s.put(keySchedule, tasks)
	s.metrics.RecordSave("schedule")
	s.notify(syncer.TypeScheduleUpdated, task)
	return task
}

// Stock

// Stock returns all stock items
func (s *Store) Stock() []models.StockItem {
	var items []models.StockItem
	s.kv.Get(keyStock, &items)
	return items
}

// SaveStockItem replaces an existing stock item in place
func (s *Store) SaveStockItem(item models.StockItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.Stock()
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			s.put(keyStock, items)
			s.metrics.RecordSave("stock")
			s.notify(syncer.TypeStockUpdated, item)
			return true
		}
	}
	return false
}

// AddStockItem registers a new stock item
func (s *Store) AddStockItem(item models.StockItem) models.StockItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = newStockID()
	items := append(s.Stock(), item)
	s.put(keyStock, items)
	s.metrics.RecordSave("stock")
	s.notify(syncer.TypeStockAdded, item)
	return item
}

// AdjustStockQuantity applies a signed delta to an item's quantity,
// flooring at zero. The previous quantity is returned so callers can
// detect a drop below the minimum threshold.
func (s *Store) AdjustStockQuantity(id string, delta int) (item models.StockItem, prevQty int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.Stock()
	for i := range items {
		if items[i].ID == id {
			prevQty = items[i].Quantity
			newQty := prevQty + delta
			if newQty < 0 {
				newQty = 0
			}
			items[i].Quantity = newQty
			s.put(keyStock, items)
			s.metrics.RecordSave("stock")
			s.notify(syncer.TypeStockUpdated, items[i])
			return items[i], prevQty, true
		}
	}
	return models.StockItem{}, 0, false
}

// Telemetry

// Telemetry returns the latest readings for all monitored assets
func (s *Store) Telemetry() []models.TelemetryReading {
	var readings []models.TelemetryReading
	s.kv.Get(keyTelemetry, &readings)
	return readings
}

// UpdateTelemetry upserts a reading by id
func (s *Store) UpdateTelemetry(reading models.TelemetryReading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	readings := s.Telemetry()
	replaced := false
	for i := range readings {
		if readings[i].ID == reading.ID {
			readings[i] = reading
			replaced = true
			break
		}
	}
	if !replaced {
		readings = append(readings, reading)
	}
	s.put(keyTelemetry, readings)
	s.metrics.RecordSave("telemetry")
	s.notify(syncer.TypeTelemetryUpdated, reading)
}

// WipeAll clears every persisted collection, the stored role and the sync
// queue. Admin-only at the API boundary.
func (s *Store) WipeAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.WipePrefix(namespace)
}
