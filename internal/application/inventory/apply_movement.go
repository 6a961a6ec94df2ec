package inventory

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	"github.com/xiebiao/inventory-ledger/internal/domain/ledger"
	"github.com/xiebiao/inventory-ledger/internal/domain/stock"
	apperrors "github.com/xiebiao/inventory-ledger/pkg/errors"
	"github.com/xiebiao/inventory-ledger/pkg/metrics"
	"github.com/xiebiao/inventory-ledger/pkg/tracing"
)

// IdempotencyGuard 幂等键占用,由persistence/redis.IdempotencyStore实现
type IdempotencyGuard interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// ApplyMovementUseCase 入库/出库用例
// 流程:
//  1. 占用幂等键(可选,请求带Idempotency-Key时)
//  2. 领域服务在一个事务里追加流水并更新数量
//  3. 失败时释放幂等键,允许客户端重试
//  4. 成功后发布stock.moved并刷新告警
type ApplyMovementUseCase struct {
	ledger      ledger.Service
	guard       IdempotencyGuard
	notifier    *Notifier
	defaultUser string
	log         *slog.Logger
}

// NewApplyMovementUseCase 创建库存变动用例
// guard为nil时不做幂等检查
func NewApplyMovementUseCase(
	ledgerService ledger.Service,
	guard IdempotencyGuard,
	notifier *Notifier,
	defaultUser string,
	log *slog.Logger,
) *ApplyMovementUseCase {
	if log == nil {
		log = slog.Default()
	}
	return &ApplyMovementUseCase{
		ledger:      ledgerService,
		guard:       guard,
		notifier:    notifier,
		defaultUser: defaultUser,
		log:         log,
	}
}

// ApplyMovementRequest 库存变动请求DTO
type ApplyMovementRequest struct {
	ItemID         int64
	Type           string // in | out
	Quantity       float64
	User           string // 为空时使用配置的默认操作人
	Notes          string
	IdempotencyKey string
}

// ApplyMovementResponse 库存变动结果
type ApplyMovementResponse struct {
	Transaction TransactionDTO    `json:"transaction"`
	Item        ItemDTO           `json:"item"`
	Before      float64           `json:"before"`
	Status      stock.StockStatus `json:"status"`
	Alert       *stock.Alert      `json:"alert,omitempty"`
}

// Execute 执行库存变动
func (uc *ApplyMovementUseCase) Execute(ctx context.Context, req ApplyMovementRequest) (resp *ApplyMovementResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "inventory.ApplyMovement",
		attribute.Int64("item.id", req.ItemID),
		attribute.String("movement.type", req.Type),
		attribute.Float64("movement.quantity", req.Quantity),
	)
	defer func() {
		if err != nil {
			metrics.RecordRejectedMovement(rejectReason(err))
		}
		tracing.End(span, err)
	}()

	if req.IdempotencyKey != "" && uc.guard != nil {
		ok, acqErr := uc.guard.Acquire(ctx, req.IdempotencyKey)
		if acqErr != nil {
			return nil, acqErr
		}
		if !ok {
			return nil, apperrors.ErrDuplicateRequest.WithDetail(req.IdempotencyKey)
		}
		defer func() {
			if err == nil {
				return
			}
			if relErr := uc.guard.Release(ctx, req.IdempotencyKey); relErr != nil {
				uc.log.WarnContext(ctx, "release idempotency key failed", "key", req.IdempotencyKey, "err", relErr)
			}
		}()
	}

	user := strings.TrimSpace(req.User)
	if user == "" {
		user = uc.defaultUser
	}

	result, err := uc.ledger.ApplyMovement(ctx, req.ItemID, ledger.MovementType(req.Type), req.Quantity, user, req.Notes)
	if err != nil {
		return nil, err
	}
	metrics.RecordMovement(req.Type)

	resp = &ApplyMovementResponse{
		Transaction: ToTransactionDTO(result.Transaction, result.Item.Name),
		Item:        ToItemDTO(result.Item),
		Before:      result.Before,
		Status:      stock.Classify(result.Item),
	}
	if sev, ok := stock.SeverityOf(result.Item); ok {
		resp.Alert = &stock.Alert{
			ItemID:  result.Item.ID,
			Name:    result.Item.Name,
			Current: result.Item.Quantity,
			Min:     result.Item.MinQuantity,
			Status:  sev,
		}
	}

	uc.log.InfoContext(ctx, "stock movement applied",
		"item_id", req.ItemID,
		"type", req.Type,
		"quantity", req.Quantity,
		"before", result.Before,
		"after", result.Item.Quantity,
		"user", user,
	)
	uc.notifier.AfterMutation(ctx, EventStockMoved, MovementEvent{
		Transaction: resp.Transaction,
		Before:      result.Before,
		After:       result.Item.Quantity,
		Status:      resp.Status,
		OccurredAt:  result.Transaction.Date,
	})
	return resp, nil
}

// rejectReason 拒绝原因,作为指标标签
func rejectReason(err error) string {
	switch {
	case errors.Is(err, ledger.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, ledger.ErrInvalidMovementType):
		return "invalid_type"
	case errors.Is(err, item.ErrItemNotFound):
		return "item_not_found"
	case errors.Is(err, apperrors.ErrDuplicateRequest):
		return "duplicate"
	default:
		return "error"
	}
}
