package store

import (
	"hospguardian/internal/models"
)

// SystemStats are the dashboard aggregates. They are recomputed from the
// current store contents on every call; there is no caching and no
// incremental maintenance.
type SystemStats struct {
	VerifiedToday     int                  `json:"verifiedToday"`
	TotalChecklist    int                  `json:"totalChecklist"`
	CriticalAssets    int                  `json:"criticalAssets"`
	OpenOrders        int                  `json:"openOrders"`
	TotalEvents       int                  `json:"totalEvents"`
	IsCloudSynced     bool                 `json:"isCloudSynced"`
	SecurityAlerts    int                  `json:"securityAlerts"`
	RecentActivity    []models.SystemEvent `json:"recentActivity"`
	OperationalAssets int                  `json:"operationalAssets"`
	MaintenanceAssets int                  `json:"maintenanceAssets"`
	CriticalTelemetry int                  `json:"criticalTelemetry"`
}

// SystemStats recomputes all dashboard aggregates from scratch
func (s *Store) SystemStats(online bool) SystemStats {
	checklist := s.Checklist()
	assets := s.Assets()
	orders := s.Orders()
	events := s.Events()
	telemetry := s.Telemetry()
	today := s.localDate()

	stats := SystemStats{
		TotalChecklist: len(checklist),
		TotalEvents:    len(events),
		IsCloudSynced:  online,
	}

	for _, item := range checklist {
		if item.LastChecked == today {
			stats.VerifiedToday++
		}
	}
	for _, a := range assets {
		switch a.Status {
		case models.AssetStatusCritical:
			stats.CriticalAssets++
		case models.AssetStatusOperational:
			stats.OperationalAssets++
		case models.AssetStatusMaintenance:
			stats.MaintenanceAssets++
		}
	}
	for _, o := range orders {
		if o.Status != models.OrderStatusCompleted {
			stats.OpenOrders++
		}
	}
	for _, e := range events {
		if e.Severity == models.SeveritySecurity {
			stats.SecurityAlerts++
		}
	}
	for _, t := range telemetry {
		if t.OutOfRange() {
			stats.CriticalTelemetry++
		}
	}

	recent := events
	if len(recent) > 10 {
		recent = recent[:10]
	}
	stats.RecentActivity = recent

	return stats
}
