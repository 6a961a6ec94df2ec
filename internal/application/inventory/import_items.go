package inventory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	"github.com/xiebiao/inventory-ledger/internal/infrastructure/codec"
	apperrors "github.com/xiebiao/inventory-ledger/pkg/errors"
	"github.com/xiebiao/inventory-ledger/pkg/metrics"
	"github.com/xiebiao/inventory-ledger/pkg/tracing"
)

// 导入/导出文件格式
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ErrUnsupportedFormat 不支持的文件格式
var ErrUnsupportedFormat = apperrors.New(apperrors.ErrCodeInvalidParams, "不支持的文件格式")

// ImportItemsUseCase 导入合并用例
// 1. 解析文件,格式错误的行跳过并记录
// 2. 合法的行整批合并:ID已存在整体替换,不存在追加
type ImportItemsUseCase struct {
	items    item.Service
	notifier *Notifier
	loc      *time.Location
	log      *slog.Logger
}

// NewImportItemsUseCase 创建导入用例,loc用于解析lastUpdated
func NewImportItemsUseCase(items item.Service, notifier *Notifier, loc *time.Location, log *slog.Logger) *ImportItemsUseCase {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = slog.Default()
	}
	return &ImportItemsUseCase{items: items, notifier: notifier, loc: loc, log: log}
}

// ImportItemsRequest 导入请求
type ImportItemsRequest struct {
	Format string // csv | xlsx,为空按csv处理
	Body   io.Reader
}

// RowErrorDTO 被跳过的行
type RowErrorDTO struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ImportItemsResponse 导入结果
type ImportItemsResponse struct {
	Updated   int           `json:"updated"`
	Added     int           `json:"added"`
	Skipped   int           `json:"skipped"`
	RowErrors []RowErrorDTO `json:"rowErrors"`
}

// Execute 执行导入
func (uc *ImportItemsUseCase) Execute(ctx context.Context, req ImportItemsRequest) (resp *ImportItemsResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "inventory.ImportItems", attribute.String("import.format", req.Format))
	defer func() { tracing.End(span, err) }()

	var parsed *codec.ImportResult
	switch req.Format {
	case FormatCSV, "":
		parsed, err = codec.ImportCSV(req.Body, uc.loc)
	case FormatXLSX:
		parsed, err = codec.ImportXLSX(req.Body, uc.loc)
	default:
		return nil, ErrUnsupportedFormat.WithDetail(req.Format)
	}
	if err != nil {
		return nil, err
	}

	merged, err := uc.items.Import(ctx, parsed.Items)
	if err != nil {
		return nil, err
	}
	metrics.RecordImport(merged.Updated, merged.Added, parsed.Skipped)
	span.SetAttributes(
		attribute.Int("import.updated", merged.Updated),
		attribute.Int("import.added", merged.Added),
		attribute.Int("import.skipped", parsed.Skipped),
	)

	resp = &ImportItemsResponse{
		Updated:   merged.Updated,
		Added:     merged.Added,
		Skipped:   parsed.Skipped,
		RowErrors: make([]RowErrorDTO, 0, len(parsed.RowErrors)),
	}
	for _, re := range parsed.RowErrors {
		resp.RowErrors = append(resp.RowErrors, RowErrorDTO{Line: re.Line, Message: rowMessage(re.Err)})
	}

	uc.log.InfoContext(ctx, "catalog imported",
		"format", req.Format,
		"updated", resp.Updated,
		"added", resp.Added,
		"skipped", resp.Skipped,
	)
	uc.notifier.AfterMutation(ctx, EventCatalogImported, ImportEvent{
		Updated:    resp.Updated,
		Added:      resp.Added,
		Skipped:    resp.Skipped,
		OccurredAt: uc.notifier.clock(),
	})
	return resp, nil
}

// rowMessage 行错误的用户提示,带上具体原因
func rowMessage(err error) string {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return err.Error()
	}
	if appErr.Err != nil {
		return appErr.Message + ": " + appErr.Err.Error()
	}
	return appErr.Message
}
