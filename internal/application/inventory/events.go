package inventory

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	"github.com/xiebiao/inventory-ledger/internal/domain/stock"
	"github.com/xiebiao/inventory-ledger/pkg/circuitbreaker"
	"github.com/xiebiao/inventory-ledger/pkg/metrics"
)

// 领域事件routing key
// notifier按item.#、stock.#、catalog.#订阅
const (
	EventItemCreated     = "item.created"
	EventItemUpdated     = "item.updated"
	EventItemDeleted     = "item.deleted"
	EventStockMoved      = "stock.moved"
	EventStockAlert      = "stock.alert"
	EventCatalogImported = "catalog.imported"
)

// EventPublisher 事件发布接口,由pkg/mq.Publisher实现
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// NoopPublisher 未启用MQ时使用
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }

// ItemEvent 物品增删改事件
type ItemEvent struct {
	ItemID     int64     `json:"itemId"`
	Item       *ItemDTO  `json:"item,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// MovementEvent 库存变动事件
type MovementEvent struct {
	Transaction TransactionDTO    `json:"transaction"`
	Before      float64           `json:"before"`
	After       float64           `json:"after"`
	Status      stock.StockStatus `json:"status"`
	OccurredAt  time.Time         `json:"occurredAt"`
}

// AlertEvent 变更后的告警快照
type AlertEvent struct {
	Alerts     []stock.Alert `json:"alerts"`
	OccurredAt time.Time     `json:"occurredAt"`
}

// ImportEvent 导入完成事件
type ImportEvent struct {
	Updated    int       `json:"updated"`
	Added      int       `json:"added"`
	Skipped    int       `json:"skipped"`
	OccurredAt time.Time `json:"occurredAt"`
}

// GuardedPublisher 带熔断的事件发布器
// MQ不可用时快速失败,不拖慢库存请求
type GuardedPublisher struct {
	next EventPublisher
	cb   *circuitbreaker.CircuitBreaker
}

// NewGuardedPublisher 创建带熔断的发布器
func NewGuardedPublisher(next EventPublisher, cb *circuitbreaker.CircuitBreaker) *GuardedPublisher {
	return &GuardedPublisher{next: next, cb: cb}
}

func (p *GuardedPublisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	err := p.cb.Execute(ctx, func(ctx context.Context) error {
		return p.next.Publish(ctx, routingKey, message)
	})

	result := "success"
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState), errors.Is(err, circuitbreaker.ErrTooManyRequests):
		result = "rejected"
	case err != nil:
		result = "failure"
	}
	metrics.CircuitBreakerRequests.WithLabelValues(p.cb.Name(), result).Inc()
	metrics.MessagesPublishedTotal.WithLabelValues(routingKey, result).Inc()
	return err
}

// BreakerStateRecorder 熔断状态变化时更新指标并记日志
func BreakerStateRecorder(log *slog.Logger) func(name string, from, to circuitbreaker.State) {
	return func(name string, from, to circuitbreaker.State) {
		metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		log.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
	}
}

// Notifier 变更后的收尾工作
// 1. 发布变更事件
// 2. 基于最新目录重新计算告警,刷新库存指标
// 3. 有告警时发布告警快照
// 全部是尽力而为,失败只记日志,不影响已提交的变更
type Notifier struct {
	items     item.Service
	publisher EventPublisher
	log       *slog.Logger
	clock     func() time.Time
}

// NewNotifier 创建Notifier,publisher为nil时不发布事件
func NewNotifier(items item.Service, publisher EventPublisher, log *slog.Logger, clock func() time.Time) *Notifier {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	if log == nil {
		log = slog.Default()
	}
	if clock == nil {
		clock = time.Now
	}
	return &Notifier{items: items, publisher: publisher, log: log, clock: clock}
}

// AfterMutation 发布事件并刷新派生视图
func (n *Notifier) AfterMutation(ctx context.Context, routingKey string, event interface{}) {
	n.publish(ctx, routingKey, event)

	items, err := n.items.List(ctx)
	if err != nil {
		n.log.ErrorContext(ctx, "refresh stock view failed", "err", err)
		return
	}
	alerts := stock.ComputeAlerts(items)
	RecordStockLevels(items, alerts)

	if len(alerts) > 0 {
		n.publish(ctx, EventStockAlert, AlertEvent{Alerts: alerts, OccurredAt: n.clock()})
	}
}

func (n *Notifier) publish(ctx context.Context, routingKey string, event interface{}) {
	if err := n.publisher.Publish(ctx, routingKey, event); err != nil {
		n.log.WarnContext(ctx, "publish event failed", "routing_key", routingKey, "err", err)
	}
}

// RecordStockLevels 刷新物品总数和告警数指标
func RecordStockLevels(items []*item.Item, alerts []stock.Alert) {
	var warning, critical int
	for _, a := range alerts {
		if a.Status == stock.SeverityCritical {
			critical++
		} else {
			warning++
		}
	}
	metrics.SetStockLevels(len(items), warning, critical)
}
