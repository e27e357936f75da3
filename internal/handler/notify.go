package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/repaart/fleet-scheduler/internal/domain"
	"github.com/repaart/fleet-scheduler/internal/scheduler"
)

func (h *Handler) publishNotification(msg domain.NotificationMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.notifyChannel.PublishWithContext(
		ctx,
		"",
		NotificationQueue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// weekStart is the franchise-local Monday midnight of the week containing t.
func (h *Handler) weekStart(t time.Time) time.Time {
	t = t.In(h.repository.Location())
	back := (int(t.Weekday()) + 6) % 7
	return scheduler.StartOfDay(t).AddDate(0, 0, -back)
}

func (h *Handler) weekCacheKey(franchiseID string, weekStart time.Time) string {
	return fmt.Sprintf("weekview_%s_%s", franchiseID, scheduler.DayKey(weekStart))
}

// invalidateWeekCache drops the cached week views touching the given
// instants. A failed invalidation only shortens cache freshness, so it is
// logged rather than surfaced.
func (h *Handler) invalidateWeekCache(franchiseID string, times ...time.Time) {
	keys := make([]string, 0, len(times))
	seen := make(map[string]bool)
	for _, t := range times {
		key := h.weekCacheKey(franchiseID, h.weekStart(t))
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	if err := h.redisClient.Del(ctx, keys...).Err(); err != nil {
		slog.Error("week view cache invalidation failed", "keys", keys, "error", err)
	}
}
