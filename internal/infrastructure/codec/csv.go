package codec

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	apperrors "github.com/xiebiao/inventory-ledger/pkg/errors"
)

// Columns CSV列顺序(导出固定按此顺序,导入按表头名称定位)
var Columns = []string{
	"id", "name", "category", "quantity", "unit", "minQuantity", "price",
	"location", "lastUpdated", "supplier", "sku", "expiryDate", "notes",
}

// 导入时必须出现在表头中的列
var requiredColumns = []string{"id", "name", "category", "unit"}

const (
	exportPrefix = "inventaire_"
	utf8BOM      = "\ufeff"
)

var (
	// ErrImportFile 文件本身无法解析(空文件、缺少必需列)
	ErrImportFile = apperrors.New(apperrors.ErrCodeImportFile, "导入文件格式错误")

	// ErrImportRow 单行格式错误,该行被跳过
	ErrImportRow = apperrors.New(apperrors.ErrCodeImportRow, "导入行格式错误")
)

// RowError 被跳过的行
type RowError struct {
	Line int   `json:"line"` // 文件中的行号(表头为第1行)
	Err  error `json:"-"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// ImportResult 解析结果
type ImportResult struct {
	Items     []*item.Item
	Skipped   int
	RowErrors []RowError
}

// ExportCSV 导出目录:表头 + 每个物品一行
func ExportCSV(w io.Writer, items []*item.Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, it := range items {
		if err := cw.Write(Record(it)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeCSV 导出为字节
func EncodeCSV(items []*item.Item) ([]byte, error) {
	var buf bytes.Buffer
	if err := ExportCSV(&buf, items); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Record 按Columns顺序把物品转为文本字段
func Record(it *item.Item) []string {
	lastUpdated := ""
	if !it.LastUpdated.IsZero() {
		lastUpdated = it.LastUpdated.Format(item.DateLayout)
	}
	return []string{
		strconv.FormatInt(it.ID, 10),
		it.Name,
		it.Category,
		formatFloat(it.Quantity),
		it.Unit,
		formatFloat(it.MinQuantity),
		formatFloat(it.Price),
		it.Location,
		lastUpdated,
		it.Supplier,
		it.SKU,
		it.ExpiryDate,
		it.Notes,
	}
}

// ImportCSV 解析CSV
// 格式错误的行跳过并计数,不会中断整个导入;只有文件级错误返回error
func ImportCSV(r io.Reader, loc *time.Location) (*ImportResult, error) {
	if loc == nil {
		loc = time.Local
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrImportFile.WithDetail("empty file")
	}
	if err != nil {
		return nil, ErrImportFile.WithDetail(err.Error())
	}
	index, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Items: make([]*item.Item, 0)}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, ErrImportFile.WithDetail(err.Error())
			}
			result.skip(parseErr.StartLine, ErrImportRow.WithDetail(parseErr.Err.Error()))
			continue
		}
		if isBlank(record) {
			continue
		}
		line, _ := cr.FieldPos(0)

		it, err := parseRecord(record, index, loc)
		if err != nil {
			result.skip(line, err)
			continue
		}
		result.Items = append(result.Items, it)
	}
	return result, nil
}

// ExportFileName 导出文件名 inventaire_YYYY-MM-DD.csv
func ExportFileName(now time.Time) string {
	return exportPrefix + now.Format(item.DateLayout) + ".csv"
}

// TemplateCSV 导入模板:表头 + 一行示例
func TemplateCSV() []byte {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	_ = cw.Write(Columns)
	_ = cw.Write([]string{
		"1", "Semences de blé", "Semences", "500", "kg", "100", "2.5",
		"Entrepôt A", "2024-01-15", "AgriSupply", "SEM-BLE-001", "2024-12-31", "Variété hiver",
	})
	cw.Flush()
	return buf.Bytes()
}

func (r *ImportResult) skip(line int, err error) {
	r.Skipped++
	r.RowErrors = append(r.RowErrors, RowError{Line: line, Err: err})
}

func indexHeader(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, ErrImportFile.WithDetail("missing column " + col)
		}
	}
	return index, nil
}

func parseRecord(record []string, index map[string]int, loc *time.Location) (*item.Item, error) {
	// 自由文本列原样保留,ID、数值、日期和必填列去掉首尾空白
	raw := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}
	field := func(col string) string {
		return strings.TrimSpace(raw(col))
	}

	id, err := strconv.ParseInt(field("id"), 10, 64)
	if err != nil || id <= 0 {
		return nil, ErrImportRow.WithDetail("invalid id " + strconv.Quote(field("id")))
	}

	it := &item.Item{
		ID:         id,
		Name:       field("name"),
		Category:   field("category"),
		Unit:       field("unit"),
		Location:   raw("location"),
		Supplier:   raw("supplier"),
		SKU:        raw("sku"),
		ExpiryDate: field("expiryDate"),
		Notes:      raw("notes"),
	}
	for _, nf := range []struct {
		col string
		dst *float64
	}{
		{"quantity", &it.Quantity},
		{"minQuantity", &it.MinQuantity},
		{"price", &it.Price},
	} {
		v, err := parseNumber(field(nf.col))
		if err != nil {
			return nil, ErrImportRow.WithDetail(nf.col + ": " + err.Error())
		}
		*nf.dst = v
	}

	if s := field("lastUpdated"); s != "" {
		t, err := time.ParseInLocation(item.DateLayout, s, loc)
		if err != nil {
			return nil, ErrImportRow.WithDetail("lastUpdated: " + strconv.Quote(s))
		}
		it.LastUpdated = t
	}

	if err := it.Validate(); err != nil {
		return nil, err
	}
	return it, nil
}

// 空值视为0
func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
