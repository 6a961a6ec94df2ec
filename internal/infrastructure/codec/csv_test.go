package codec

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
)

func sampleItems() []*item.Item {
	day := func(m time.Month, d int) time.Time { return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC) }
	return []*item.Item{
		{
			ID: 1, Name: "Semences de blé", Category: "Semences", Quantity: 500, Unit: "kg",
			MinQuantity: 100, Price: 2.5, Location: "Entrepôt A", LastUpdated: day(1, 15),
			Supplier: "AgriSupply", SKU: "SEM-BLE-001", ExpiryDate: "2024-12-31", Notes: "Variété hiver",
		},
		{
			ID: 7, Name: `Engrais "NPK", 15-15-15`, Category: "Engrais", Quantity: 0.75, Unit: "t",
			MinQuantity: 1, Price: 450, Location: "Hangar B", LastUpdated: day(1, 10),
			Notes: "ligne 1\nligne 2",
		},
	}
}

// TestCSV_RoundTrip 导出再导入得到相同的数据
func TestCSV_RoundTrip(t *testing.T) {
	items := sampleItems()

	data, err := EncodeCSV(items)
	require.NoError(t, err)

	res, err := ImportCSV(bytes.NewReader(data), time.UTC)
	require.NoError(t, err)
	assert.Zero(t, res.Skipped)
	require.Len(t, res.Items, len(items))
	for i := range items {
		assert.Equal(t, items[i], res.Items[i])
	}
}

// TestCSV_RoundTripKeepsFreeTextWhitespace 自由文本列的首尾空白原样保留
func TestCSV_RoundTripKeepsFreeTextWhitespace(t *testing.T) {
	it := &item.Item{
		ID: 3, Name: "Bâche", Category: "Divers", Quantity: 4, Unit: "pcs",
		Location: " Hangar ", Supplier: "\tCoop", SKU: "SKU ", Notes: "  indented\n",
		LastUpdated: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	data, err := EncodeCSV([]*item.Item{it})
	require.NoError(t, err)

	res, err := ImportCSV(bytes.NewReader(data), time.UTC)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, it, res.Items[0])
}

// TestImportCSV_TrimsKeyColumns ID、数值、日期和必填列容忍首尾空白
func TestImportCSV_TrimsKeyColumns(t *testing.T) {
	input := "id,name,category,quantity,unit,lastUpdated,location\n" +
		" 4 , Gasoil , Carburant , 12.5 , L , 2024-01-18 , Cuve 1 \n"

	res, err := ImportCSV(strings.NewReader(input), time.UTC)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	got := res.Items[0]
	assert.Equal(t, int64(4), got.ID)
	assert.Equal(t, "Gasoil", got.Name)
	assert.Equal(t, "Carburant", got.Category)
	assert.Equal(t, 12.5, got.Quantity)
	assert.Equal(t, "L", got.Unit)
	assert.Equal(t, time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC), got.LastUpdated)
	assert.Equal(t, " Cuve 1 ", got.Location)
}

// TestExportCSV_Format 表头与转义
func TestExportCSV_Format(t *testing.T) {
	data, err := EncodeCSV(sampleItems()[1:])
	require.NoError(t, err)

	lines := strings.SplitN(string(data), "\n", 2)
	assert.Equal(t, "id,name,category,quantity,unit,minQuantity,price,location,lastUpdated,supplier,sku,expiryDate,notes", lines[0])
	assert.Contains(t, lines[1], `"Engrais ""NPK"", 15-15-15"`)
	assert.Contains(t, lines[1], "0.75")
	assert.Contains(t, lines[1], "\"ligne 1\nligne 2\"")
}

// TestImportCSV_SkipsMalformedRows 格式错误的行跳过并计数
func TestImportCSV_SkipsMalformedRows(t *testing.T) {
	input := strings.Join([]string{
		"id,name,category,quantity,unit,minQuantity,price,location,lastUpdated,supplier,sku,expiryDate,notes",
		"1,Gasoil agricole,Carburant,2000,L,500,1.45,Cuve 1,2024-01-18,TotalEnergies,,,",
		"x,Bad id,Carburant,1,L,0,0,,,,,,",
		"2,,Carburant,1,L,0,0,,,,,,",
		"3,Bad qty,Carburant,abc,L,0,0,,,,,,",
		"4,Negative,Carburant,-5,L,0,0,,,,,,",
		"5,Bad date,Carburant,1,L,0,0,,18/01/2024,,,,",
		"8,Bad expiry,Carburant,1,L,0,0,,,,,31/12/2024,",
		"",
		"6,Short row,Divers,3,pcs",
	}, "\n")

	res, err := ImportCSV(strings.NewReader(input), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Skipped)
	require.Len(t, res.RowErrors, 6)
	assert.Equal(t, 3, res.RowErrors[0].Line)

	require.Len(t, res.Items, 2)
	assert.Equal(t, "Gasoil agricole", res.Items[0].Name)
	assert.Equal(t, 1.45, res.Items[0].Price)

	short := res.Items[1]
	assert.Equal(t, int64(6), short.ID)
	assert.Equal(t, 3.0, short.Quantity)
	assert.Zero(t, short.MinQuantity, "缺失的可选列默认为0")
	assert.True(t, short.LastUpdated.IsZero())
}

// TestImportCSV_HeaderByName 按表头名称定位列,容忍BOM
func TestImportCSV_HeaderByName(t *testing.T) {
	input := "\ufeffname,id,unit,category\nHerbicide glyphosate,3,L,Phytosanitaires\n"

	res, err := ImportCSV(strings.NewReader(input), time.UTC)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, int64(3), res.Items[0].ID)
	assert.Equal(t, "Herbicide glyphosate", res.Items[0].Name)
}

// TestImportCSV_FileErrors 文件级错误
func TestImportCSV_FileErrors(t *testing.T) {
	_, err := ImportCSV(strings.NewReader(""), time.UTC)
	assert.ErrorIs(t, err, ErrImportFile)

	_, err = ImportCSV(strings.NewReader("name,category,unit\na,b,c\n"), time.UTC)
	assert.ErrorIs(t, err, ErrImportFile)
}

func TestExportFileName(t *testing.T) {
	now := time.Date(2024, 2, 5, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "inventaire_2024-02-05.csv", ExportFileName(now))
}

func TestTemplateCSV(t *testing.T) {
	res, err := ImportCSV(bytes.NewReader(TemplateCSV()), time.UTC)
	require.NoError(t, err)
	assert.Zero(t, res.Skipped)
	assert.Len(t, res.Items, 1)
}
