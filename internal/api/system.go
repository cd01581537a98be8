package api

import (
	"encoding/csv"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hospguardian/internal/models"
	"hospguardian/internal/stats"
)

// voiceTimeout bounds fire-and-forget voice alert calls
const voiceTimeout = 30 * time.Second

// ListEvents returns the audit log, newest first
func (s *Server) ListEvents(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Events())
}

// Stats returns the dashboard aggregates, recomputed on demand
func (s *Server) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.SystemStats(s.broadcaster.Online()))
}

// GetRole returns the persisted role selector
func (s *Server) GetRole(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"role": s.store.Role()})
}

// SetRole persists a new active role and records it in the audit log
func (s *Server) SetRole(c *gin.Context) {
	var req struct {
		Role models.UserRole `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}
	s.store.SetRole(req.Role)
	s.store.LogEvent(models.EventSecurity, "Active role changed to "+string(req.Role), models.SeveritySecurity)
	c.JSON(http.StatusOK, gin.H{"role": req.Role})
}

// SyncStatus reports connectivity, pending queue length and connected views
func (s *Server) SyncStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"online":     s.broadcaster.Online(),
		"queueCount": s.broadcaster.QueueCount(),
		"clients":    s.hub.ClientCount(),
	})
}

// SetOnline records a connectivity signal from the environment
func (s *Server) SetOnline(c *gin.Context) {
	var req struct {
		Online *bool `json:"online" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.broadcaster.SetOnline(*req.Online)
	c.JSON(http.StatusOK, gin.H{
		"online":     s.broadcaster.Online(),
		"queueCount": s.broadcaster.QueueCount(),
	})
}

// SectorReport returns the compliance index and per-sector breakdown,
// worst sectors first
func (s *Server) SectorReport(c *gin.Context) {
	checklist := s.store.Checklist()
	breakdown := stats.CategoryBreakdown(checklist)
	if breakdown == nil {
		breakdown = []stats.CategoryStat{}
	}
	c.JSON(http.StatusOK, gin.H{
		"complianceIndex": stats.ComplianceIndex(checklist),
		"categories":      breakdown,
	})
}

// ChecklistCSV exports the checklist as a CSV download
func (s *Server) ChecklistCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="checklist.csv"`)

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"label", "category", "status", "lastChecked", "observations"})
	for _, item := range s.store.Checklist() {
		w.Write([]string{item.Label, item.Category, string(item.Status), item.LastChecked, item.Observations})
	}
	w.Flush()
}

// ShareReport renders the plain-text maintenance report used for the
// outbound share link
func (s *Server) ShareReport(c *gin.Context) {
	c.String(http.StatusOK, stats.SectorReportText(s.store.Checklist(), s.now()))
}

// PredictiveInsights asks the AI collaborator for a predictive summary
// of the current assets and orders
func (s *Server) PredictiveInsights(c *gin.Context) {
	report := s.gateway.PredictiveReport(c.Request.Context(), s.store.Assets(), s.store.Orders())
	c.JSON(http.StatusOK, report)
}

// VoiceAlert synthesizes an alert for the given text. Remote audio is
// returned as-is; on fallback the local speaker already handled it.
func (s *Server) VoiceAlert(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	audio, remote := s.gateway.VoiceAlert(c.Request.Context(), req.Text)
	if remote {
		c.Data(http.StatusOK, "audio/wav", audio)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fallback": true})
}

// RunIntegrityAudit records a deep-audit security event and returns the
// current aggregates
func (s *Server) RunIntegrityAudit(c *gin.Context) {
	s.store.LogEvent(models.EventSecurity, "Deep integrity audit completed. Checksum OK.", models.SeverityInfo)
	c.JSON(http.StatusOK, s.store.SystemStats(s.broadcaster.Online()))
}

// WipeData clears every persisted collection. Admin only.
func (s *Server) WipeData(c *gin.Context) {
	if err := s.store.WipeAll(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All data wiped"})
}
