package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	RequestKeyPrefix     = "request:%d"
	TrackKeyPrefix       = "track:%s"
	OfficerListKey       = "officers:all"
	DepartmentListKey    = "departments:all"
	RequestStatsKey      = "requests:stats"
	RequestHistoryPrefix = "request:%d:history"
)

const (
	RequestTTL    = 5 * time.Minute
	TrackTTL      = 2 * time.Minute
	OfficerTTL    = 10 * time.Minute
	DepartmentTTL = 30 * time.Minute
	StatsTTL      = time.Minute
	HistoryTTL    = 5 * time.Minute
)

func RequestKey(requestID uint) string {
	return fmt.Sprintf(RequestKeyPrefix, requestID)
}

func TrackKey(reqNumber string) string {
	return fmt.Sprintf(TrackKeyPrefix, reqNumber)
}

func RequestHistoryKey(requestID uint) string {
	return fmt.Sprintf(RequestHistoryPrefix, requestID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateRequest drops every cached view touched by a change to the
// given request, including the collection-level stats.
func InvalidateRequest(ctx context.Context, requestID uint, reqNumber string) {
	Invalidate(ctx, RequestKey(requestID))
	Invalidate(ctx, RequestHistoryKey(requestID))
	Invalidate(ctx, TrackKey(reqNumber))
	Invalidate(ctx, RequestStatsKey)
}

func InvalidateOfficers(ctx context.Context) {
	Invalidate(ctx, OfficerListKey)
}

func InvalidateDepartments(ctx context.Context) {
	Invalidate(ctx, DepartmentListKey)
}
