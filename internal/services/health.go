package services

import (
	"time"

	"github.com/footpoets/claimsdb/internal/config"
	"gorm.io/gorm"
)

// HealthStatus describes the service's health check result.
type HealthStatus struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// CheckHealth pings the database and reports overall service health.
func CheckHealth(cfg *config.Config, db *gorm.DB) *HealthStatus {
	status := &HealthStatus{
		Status:    "ok",
		Database:  cfg.DBType,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	sqlDB, err := db.DB()
	if err != nil {
		status.Status = "degraded"
		status.Database = "unavailable"
		return status
	}
	if err := sqlDB.Ping(); err != nil {
		status.Status = "degraded"
		status.Database = "unreachable"
	}

	return status
}
