package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	"github.com/xiebiao/inventory-ledger/internal/infrastructure/codec"
)

// 下载文件的Content-Type
const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportFile 导出的文件
type ExportFile struct {
	Name        string
	ContentType string
	Body        []byte
}

// ExportItemsUseCase 导出用例(CSV、XLSX、空模板)
type ExportItemsUseCase struct {
	items item.Service
	clock func() time.Time
}

// NewExportItemsUseCase 创建导出用例
func NewExportItemsUseCase(items item.Service, clock func() time.Time) *ExportItemsUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &ExportItemsUseCase{items: items, clock: clock}
}

// Execute 按插入顺序导出全部物品
func (uc *ExportItemsUseCase) Execute(ctx context.Context, format string) (*ExportFile, error) {
	items, err := uc.items.List(ctx)
	if err != nil {
		return nil, err
	}
	name := codec.ExportFileName(uc.clock())

	switch format {
	case FormatCSV, "":
		body, err := codec.EncodeCSV(items)
		if err != nil {
			return nil, err
		}
		return &ExportFile{Name: name, ContentType: ContentTypeCSV, Body: body}, nil
	case FormatXLSX:
		body, err := codec.ExportXLSX(items)
		if err != nil {
			return nil, err
		}
		name = strings.TrimSuffix(name, ".csv") + ".xlsx"
		return &ExportFile{Name: name, ContentType: ContentTypeXLSX, Body: body}, nil
	default:
		return nil, ErrUnsupportedFormat.WithDetail(format)
	}
}

// Template 导入模板:表头加一行示例数据
func (uc *ExportItemsUseCase) Template() *ExportFile {
	return &ExportFile{
		Name:        "modele_inventaire.csv",
		ContentType: ContentTypeCSV,
		Body:        codec.TemplateCSV(),
	}
}
