package reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stayhub/models"
	"stayhub/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const calendarCacheTTL = 5 * time.Minute

// Calendar cache keys carry a per-listing version number; any capacity
// mutation bumps the version, which orphans every cached snapshot for that
// listing without needing a key scan.
func (l *DefaultLedger) calendarKey(ctx context.Context, listingID string, r models.DateRange) (string, bool) {
	if l.Cache == nil {
		return "", false
	}
	ver, err := l.Cache.Get(ctx, "calendar_ver:"+listingID).Int64()
	if err != nil && err != redis.Nil {
		return "", false
	}
	return fmt.Sprintf("calendar:%s:%d:%s", listingID, ver, r.String()), true
}

func (l *DefaultLedger) cachedCalendar(ctx context.Context, listingID string, r models.DateRange) ([]models.CalendarDay, bool) {
	key, ok := l.calendarKey(ctx, listingID, r)
	if !ok {
		return nil, false
	}
	data, err := l.Cache.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var days []models.CalendarDay
	if err := json.Unmarshal([]byte(data), &days); err != nil {
		return nil, false
	}
	return days, true
}

func (l *DefaultLedger) storeCalendar(ctx context.Context, listingID string, r models.DateRange, days []models.CalendarDay) {
	key, ok := l.calendarKey(ctx, listingID, r)
	if !ok {
		return
	}
	data, err := json.Marshal(days)
	if err != nil {
		return
	}
	if err := l.Cache.Set(ctx, key, data, calendarCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache calendar", zap.String("key", key), zap.Error(err))
	}
}

func (l *DefaultLedger) bumpCalendarVersion(ctx context.Context, listingID string) {
	if l.Cache == nil {
		return
	}
	if err := l.Cache.Incr(ctx, "calendar_ver:"+listingID).Err(); err != nil {
		utils.GetLogger().Warn("failed to bump calendar version",
			zap.String("listingID", listingID), zap.Error(err))
	}
}
