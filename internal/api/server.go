package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"hospguardian/internal/ai"
	"hospguardian/internal/monitoring"
	"hospguardian/internal/store"
	"hospguardian/internal/syncer"
)

// Server is the main API handler for the asset-management dashboard
type Server struct {
	Router      *gin.Engine
	store       *store.Store
	broadcaster *syncer.Broadcaster
	hub         *syncer.Hub
	gateway     *ai.Gateway
	metrics     *monitoring.Metrics
	jwtSecret   []byte
	log         zerolog.Logger
	now         func() time.Time
}

// NewServer creates the API server and configures all routes
func NewServer(st *store.Store, b *syncer.Broadcaster, hub *syncer.Hub, gw *ai.Gateway, metrics *monitoring.Metrics, jwtSecret string, log zerolog.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		Router:      router,
		store:       st,
		broadcaster: b,
		hub:         hub,
		gateway:     gw,
		metrics:     metrics,
		jwtSecret:   []byte(jwtSecret),
		log:         log,
		now:         time.Now,
	}

	router.Use(s.requestMetrics())
	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	// Health check
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "HospGuardian API is running"})
	})

	// Cross-view sync channel
	s.Router.GET("/ws", s.hub.HandleWS)

	s.Router.POST("/api/v1/auth/token", s.IssueToken)

	v1 := s.Router.Group("/api/v1")
	v1.Use(s.withRole())
	{
		// Asset inventory
		v1.GET("/assets", s.ListAssets)
		v1.POST("/assets", s.RegisterAsset)
		v1.PUT("/assets/:id", s.UpdateAsset)
		v1.PATCH("/assets/:id/status", s.UpdateAssetStatus)
		v1.GET("/assets/:id/health", s.AssetHealth)
		v1.GET("/assets/:id/history", s.AssetHistory)

		// Checklist
		v1.GET("/checklist", s.ListChecklist)
		v1.PUT("/checklist", s.SaveChecklistItem)

		// Service orders
		v1.GET("/orders", s.ListOrders)
		v1.POST("/orders", s.CreateOrder)
		v1.PUT("/orders/:id", s.UpdateOrder)

		// Stock
		v1.GET("/stock", s.ListStock)
		v1.POST("/stock", s.AddStockItem)
		v1.PUT("/stock/:id", s.SaveStockItem)
		v1.POST("/stock/:id/adjust", s.AdjustStock)

		// Preventive-maintenance calendar
		v1.GET("/schedule", s.ListSchedule)
		v1.POST("/schedule", s.CreateScheduleTask)

		// Telemetry
		v1.GET("/telemetry", s.ListTelemetry)
		v1.PUT("/telemetry", s.UpdateTelemetry)

		// Audit log and dashboard aggregates
		v1.GET("/events", s.ListEvents)
		v1.GET("/stats", s.Stats)

		// Role selector
		v1.GET("/role", s.GetRole)
		v1.POST("/role", s.SetRole)

		// Connectivity and sync queue
		v1.GET("/sync/status", s.SyncStatus)
		v1.POST("/sync/online", s.SetOnline)

		// Reports
		v1.GET("/reports/sectors", s.SectorReport)
		v1.GET("/reports/checklist.csv", s.ChecklistCSV)
		v1.GET("/reports/share", s.ShareReport)

		// AI collaborator
		v1.POST("/insights/predictive", s.PredictiveInsights)
		v1.POST("/alerts/voice", s.VoiceAlert)

		// Admin
		v1.POST("/admin/audit", s.requireRole(adminOnly, s.RunIntegrityAudit))
		v1.DELETE("/admin/data", s.requireRole(adminOnly, s.WipeData))
	}
}

// requestMetrics records a latency sample per request on the route template
func (s *Server) requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		s.metrics.ObserveRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
