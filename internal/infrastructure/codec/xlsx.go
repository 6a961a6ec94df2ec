package codec

import (
	"bytes"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
)

// SheetName 导出工作表名
const SheetName = "Inventaire"

// ExportXLSX 导出Excel,列与CSV一致;数值列写为数字
func ExportXLSX(items []*item.Item) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	defaultSheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(defaultSheet, SheetName); err != nil {
		return nil, err
	}

	header := make([]interface{}, 0, len(Columns))
	for _, c := range Columns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, err
	}

	for i, it := range items {
		record := Record(it)
		row := make([]interface{}, 0, len(record))
		for j, v := range record {
			switch Columns[j] {
			case "id":
				row = append(row, it.ID)
			case "quantity":
				row = append(row, it.Quantity)
			case "minQuantity":
				row = append(row, it.MinQuantity)
			case "price":
				row = append(row, it.Price)
			default:
				row = append(row, v)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ImportXLSX 读取第一个工作表,规则与ImportCSV相同
func ImportXLSX(r io.Reader, loc *time.Location) (*ImportResult, error) {
	if loc == nil {
		loc = time.Local
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, ErrImportFile.WithDetail(err.Error())
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrImportFile.WithDetail("no sheet")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, ErrImportFile.WithDetail(err.Error())
	}
	if len(rows) == 0 {
		return nil, ErrImportFile.WithDetail("empty file")
	}

	index, err := indexHeader(rows[0])
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Items: make([]*item.Item, 0)}
	for i, record := range rows[1:] {
		if isBlank(record) {
			continue
		}
		it, err := parseRecord(record, index, loc)
		if err != nil {
			result.skip(i+2, err)
			continue
		}
		result.Items = append(result.Items, it)
	}
	return result, nil
}
