// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides cheap aggregate probes used by handlers
// to build weak ETags without loading full result sets.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/carryonhq/carryon-backend/internal/domain"
)

// OpenRequestsStats returns the number of open requests and the most recent
// updated_at among them (nil when there are none). The pair changes whenever
// the discovery list would change, which makes it a suitable ETag source.
func OpenRequestsStats(ctx context.Context, db *gorm.DB) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Request{}).Where("status = ?", domain.StatusOpen)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
