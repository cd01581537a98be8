package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"hospguardian/internal/models"
	"hospguardian/internal/search"
	"hospguardian/internal/stats"
)

// Asset handlers

// ListAssets returns the asset inventory, optionally filtered by the
// fuzzy matcher via ?q=
func (s *Server) ListAssets(c *gin.Context) {
	assets := s.store.Assets()
	if q := c.Query("q"); q != "" {
		filtered := make([]models.Asset, 0, len(assets))
		for _, a := range assets {
			if search.MatchAsset(q, a) {
				filtered = append(filtered, a)
			}
		}
		assets = filtered
	}
	c.JSON(http.StatusOK, assets)
}

// RegisterAsset creates an asset plus its companion checklist item
func (s *Server) RegisterAsset(c *gin.Context) {
	var asset models.Asset
	if err := c.ShouldBindJSON(&asset); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if asset.Name == "" || asset.Location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and location are required"})
		return
	}

	created := s.store.AddAsset(asset)
	s.speak(fmt.Sprintf("New asset registered successfully: %s at sector %s.", created.Name, created.Location))
	c.JSON(http.StatusCreated, created)
}

// UpdateAsset merges the request body over the stored asset. A status
// change to Critical and a next-maintenance date within a week both
// trigger voice alerts.
func (s *Server) UpdateAsset(c *gin.Context) {
	id := c.Param("id")
	current, ok := s.store.AssetByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	}

	previous := current
	if err := c.ShouldBindJSON(&current); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	current.ID = id
	s.store.SaveAsset(current)

	if current.Status == models.AssetStatusCritical && previous.Status != models.AssetStatusCritical {
		s.alertCriticalAsset(current)
	}
	if current.NextMaintenance != previous.NextMaintenance {
		s.alertUpcomingMaintenance(current)
	}

	c.JSON(http.StatusOK, current)
}

// UpdateAssetStatus mutates only the status field
func (s *Server) UpdateAssetStatus(c *gin.Context) {
	var req struct {
		Status models.AssetStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	asset, ok := s.store.UpdateAssetStatus(c.Param("id"), req.Status)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	}
	if req.Status == models.AssetStatusCritical {
		s.alertCriticalAsset(asset)
	}
	c.JSON(http.StatusOK, asset)
}

// AssetHealth returns the preventive-risk badge and maintenance urgency
func (s *Server) AssetHealth(c *gin.Context) {
	asset, ok := s.store.AssetByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"health":  stats.Health(asset.LastMaintenance, s.now()),
		"urgency": stats.Urgency(asset.NextMaintenance, s.now()),
	})
}

// AssetHistory returns the completed service orders for an asset
func (s *Server) AssetHistory(c *gin.Context) {
	history := s.store.MaintenanceHistory(c.Param("id"))
	if history == nil {
		history = []models.ServiceOrder{}
	}
	c.JSON(http.StatusOK, history)
}

func (s *Server) alertCriticalAsset(asset models.Asset) {
	msg := fmt.Sprintf("Alert: asset %s has been marked as critical. Check the service order panel.", asset.Name)
	s.speak(msg)
	s.store.LogEvent(models.EventAlert, msg, models.SeverityCritical)
}

func (s *Server) alertUpcomingMaintenance(asset models.Asset) {
	days, ok := stats.DaysUntil(asset.NextMaintenance, s.now())
	if !ok || days < 0 || days > 7 {
		return
	}
	msg := fmt.Sprintf("Scheduled maintenance for %s is coming up on %s.", asset.Name, asset.NextMaintenance)
	s.speak(msg)
	s.store.LogEvent(models.EventAlert, msg, models.SeverityWarning)
}

// speak fires a voice alert without blocking the request
func (s *Server) speak(text string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), voiceTimeout)
		defer cancel()
		s.gateway.VoiceAlert(ctx, text)
	}()
}

// Checklist handlers

// ListChecklist returns all checklist items
func (s *Server) ListChecklist(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Checklist())
}

// SaveChecklistItem upserts a checklist item
func (s *Server) SaveChecklistItem(c *gin.Context) {
	var item models.ChecklistItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if item.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}
	s.store.SaveChecklistItem(item)
	c.JSON(http.StatusOK, item)
}

// Service order handlers

// ListOrders returns all service orders
func (s *Server) ListOrders(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Orders())
}

// CreateOrder opens a service order and logs it, critical-priority
// orders at critical severity
func (s *Server) CreateOrder(c *gin.Context) {
	var order models.ServiceOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created := s.store.CreateOrder(order)
	severity := models.SeverityWarning
	if created.Priority == models.PriorityCritical {
		severity = models.SeverityCritical
	}
	s.store.LogEvent(models.EventOrder,
		fmt.Sprintf("Service order %s opened for %s (%s priority).", created.ID, created.AssetName, created.Priority),
		severity)
	c.JSON(http.StatusCreated, created)
}

// UpdateOrder merges the request body over the stored order. Attaching
// photo evidence is recorded in the audit log.
func (s *Server) UpdateOrder(c *gin.Context) {
	id := c.Param("id")
	current, ok := s.store.OrderByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	previous := current
	if err := c.ShouldBindJSON(&current); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	current.ID = id
	current.CreatedAt = previous.CreatedAt
	s.store.SaveOrder(current)

	if current.EvidencePhoto != "" && previous.EvidencePhoto == "" {
		s.store.LogEvent(models.EventOrder,
			fmt.Sprintf("Photo evidence attached to order %s", id), models.SeverityInfo)
	}

	c.JSON(http.StatusOK, current)
}

// Stock handlers

// ListStock returns all stock items
func (s *Server) ListStock(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Stock())
}

// AddStockItem registers a new stock item
func (s *Server) AddStockItem(c *gin.Context) {
	var item models.StockItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created := s.store.AddStockItem(item)
	s.speak(fmt.Sprintf("New supply %s registered successfully.", created.Name))
	c.JSON(http.StatusCreated, created)
}

// SaveStockItem replaces a stock item in place
func (s *Server) SaveStockItem(c *gin.Context) {
	var item models.StockItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item.ID = c.Param("id")
	if !s.store.SaveStockItem(item) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stock item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// AdjustStock applies a signed quantity delta, floored at zero. Dropping
// below the minimum threshold fires a voice alert.
func (s *Server) AdjustStock(c *gin.Context) {
	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, prevQty, ok := s.store.AdjustStockQuantity(c.Param("id"), req.Delta)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stock item not found"})
		return
	}

	if item.Quantity < item.MinQuantity && prevQty >= item.MinQuantity {
		msg := fmt.Sprintf("Alert: critical stock level for %s. Only %d units left.", item.Name, item.Quantity)
		s.speak(msg)
		s.store.LogEvent(models.EventAlert, msg, models.SeverityWarning)
	}

	c.JSON(http.StatusOK, item)
}

// Schedule handlers

// ListSchedule returns the preventive-maintenance calendar
func (s *Server) ListSchedule(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.WorkSchedule())
}

// CreateScheduleTask plans a recurring maintenance visit
func (s *Server) CreateScheduleTask(c *gin.Context) {
	var task models.WorkScheduleTask
	if err := c.ShouldBindJSON(&task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created := s.store.CreateWorkScheduleTask(task)
	s.store.LogEvent(models.EventSchedule,
		fmt.Sprintf("Preventive maintenance scheduled for %s starting %s.", created.AssetName, created.StartDate),
		models.SeverityInfo)
	c.JSON(http.StatusCreated, created)
}

// Telemetry handlers

// ListTelemetry returns the latest readings for all monitored assets
func (s *Server) ListTelemetry(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Telemetry())
}

// UpdateTelemetry upserts a reading; out-of-range values are logged at
// critical severity
func (s *Server) UpdateTelemetry(c *gin.Context) {
	var reading models.TelemetryReading
	if err := c.ShouldBindJSON(&reading); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.store.UpdateTelemetry(reading)

	if reading.OutOfRange() {
		s.store.LogEvent(models.EventTelemetry,
			fmt.Sprintf("Telemetry out of range on %s: %s at %.2f %s.", reading.AssetID, reading.Type, reading.Value, reading.Unit),
			models.SeverityCritical)
	}

	c.JSON(http.StatusOK, reading)
}
