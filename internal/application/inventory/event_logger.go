package inventory

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/xiebiao/inventory-ledger/pkg/metrics"
	"github.com/xiebiao/inventory-ledger/pkg/mq"
)

// EventLogger notifier进程的消息处理器
// 把库存事件写成结构化日志,告警事件用Warn级别
type EventLogger struct {
	queue string
	log   *slog.Logger
}

// NewEventLogger 创建事件日志处理器
func NewEventLogger(queue string, log *slog.Logger) *EventLogger {
	if log == nil {
		log = slog.Default()
	}
	return &EventLogger{queue: queue, log: log}
}

// Handle 处理一条消息
// 无法解析的消息记录后丢弃,重新入队只会无限重试
func (h *EventLogger) Handle(ctx context.Context, d mq.Delivery) error {
	result := "success"
	defer func() {
		metrics.MessagesConsumedTotal.WithLabelValues(h.queue, result).Inc()
	}()

	switch {
	case d.RoutingKey == EventStockAlert:
		var ev AlertEvent
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			result = "dropped"
			h.drop(ctx, d, err)
			return nil
		}
		for _, a := range ev.Alerts {
			h.log.WarnContext(ctx, "stock alert",
				"item_id", a.ItemID,
				"name", a.Name,
				"current", a.Current,
				"min", a.Min,
				"severity", a.Status,
			)
		}

	case d.RoutingKey == EventStockMoved:
		var ev MovementEvent
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			result = "dropped"
			h.drop(ctx, d, err)
			return nil
		}
		h.log.InfoContext(ctx, "stock moved",
			"item_id", ev.Transaction.ItemID,
			"item", ev.Transaction.ItemName,
			"type", ev.Transaction.Type,
			"quantity", ev.Transaction.Quantity,
			"before", ev.Before,
			"after", ev.After,
			"user", ev.Transaction.User,
		)

	case d.RoutingKey == EventCatalogImported:
		var ev ImportEvent
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			result = "dropped"
			h.drop(ctx, d, err)
			return nil
		}
		h.log.InfoContext(ctx, "catalog imported", "updated", ev.Updated, "added", ev.Added, "skipped", ev.Skipped)

	case strings.HasPrefix(d.RoutingKey, "item."):
		var ev ItemEvent
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			result = "dropped"
			h.drop(ctx, d, err)
			return nil
		}
		h.log.InfoContext(ctx, "catalog changed", "event", d.RoutingKey, "item_id", ev.ItemID)

	default:
		result = "ignored"
		h.log.DebugContext(ctx, "unknown event", "routing_key", d.RoutingKey)
	}
	return nil
}

func (h *EventLogger) drop(ctx context.Context, d mq.Delivery, err error) {
	h.log.ErrorContext(ctx, "malformed event dropped", "routing_key", d.RoutingKey, "bytes", len(d.Body), "err", err)
}
