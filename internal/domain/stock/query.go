package stock

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
)

// CategoryAll 类别过滤的哨兵值,表示不过滤
const CategoryAll = "all"

// SortOrder 排序方向
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// 默认排序
const (
	DefaultSortField = "name"
	DefaultSortOrder = SortAsc
)

// Params 查询参数,零值表示不搜索、不过滤、按名称升序
type Params struct {
	SearchTerm string
	Category   string
	SortField  string
	SortOrder  SortOrder
}

type fieldKind int

const (
	kindText fieldKind = iota
	kindNumber
	kindDate
)

type sortField struct {
	kind   fieldKind
	text   func(*item.Item) string
	number func(*item.Item) float64
}

var sortFields = map[string]sortField{
	"id":          {kind: kindNumber, number: func(i *item.Item) float64 { return float64(i.ID) }},
	"name":        {kind: kindText, text: func(i *item.Item) string { return i.Name }},
	"category":    {kind: kindText, text: func(i *item.Item) string { return i.Category }},
	"unit":        {kind: kindText, text: func(i *item.Item) string { return i.Unit }},
	"location":    {kind: kindText, text: func(i *item.Item) string { return i.Location }},
	"supplier":    {kind: kindText, text: func(i *item.Item) string { return i.Supplier }},
	"sku":         {kind: kindText, text: func(i *item.Item) string { return i.SKU }},
	"expiryDate":  {kind: kindText, text: func(i *item.Item) string { return i.ExpiryDate }},
	"notes":       {kind: kindText, text: func(i *item.Item) string { return i.Notes }},
	"quantity":    {kind: kindNumber, number: func(i *item.Item) float64 { return i.Quantity }},
	"minQuantity": {kind: kindNumber, number: func(i *item.Item) float64 { return i.MinQuantity }},
	"price":       {kind: kindNumber, number: func(i *item.Item) float64 { return i.Price }},
	"lastUpdated": {kind: kindDate},
}

// SortFields 支持的排序字段
func SortFields() []string {
	fields := make([]string, 0, len(sortFields))
	for name := range sortFields {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}

// Query 搜索 → 类别过滤 → 稳定排序
// 返回新切片,不修改输入;元素指针与输入共享,调用方不要原地修改
func Query(items []*item.Item, p Params) ([]*item.Item, error) {
	field, order, err := normalize(p)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(p.SearchTerm)
	category := p.Category
	if category == "" {
		category = CategoryAll
	}

	out := make([]*item.Item, 0, len(items))
	for _, it := range items {
		if term != "" && !matches(it, term) {
			continue
		}
		if category != CategoryAll && it.Category != category {
			continue
		}
		out = append(out, it)
	}

	less := lessFunc(sortFields[field])
	sort.SliceStable(out, func(i, j int) bool {
		if order == SortDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out, nil
}

// Categories 类别列表:"all"在前,其余按首次出现顺序去重
func Categories(items []*item.Item) []string {
	seen := make(map[string]struct{}, len(items))
	cats := []string{CategoryAll}
	for _, it := range items {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		cats = append(cats, it.Category)
	}
	return cats
}

func normalize(p Params) (string, SortOrder, error) {
	field := p.SortField
	if field == "" {
		field = DefaultSortField
	}
	if _, ok := sortFields[field]; !ok {
		return "", "", ErrInvalidSortField.WithDetail(field)
	}
	order := p.SortOrder
	if order == "" {
		order = DefaultSortOrder
	}
	if order != SortAsc && order != SortDesc {
		return "", "", ErrInvalidSortOrder.WithDetail(string(order))
	}
	return field, order, nil
}

func matches(it *item.Item, term string) bool {
	return strings.Contains(strings.ToLower(it.Name), term) ||
		strings.Contains(strings.ToLower(it.Category), term) ||
		strings.Contains(strings.ToLower(it.SKU), term)
}

func lessFunc(f sortField) func(a, b *item.Item) bool {
	switch f.kind {
	case kindNumber:
		return func(a, b *item.Item) bool { return f.number(a) < f.number(b) }
	case kindDate:
		return func(a, b *item.Item) bool { return a.LastUpdated.Before(b.LastUpdated) }
	default:
		// collate.Collator不是并发安全的,每次查询新建
		col := collate.New(language.French)
		return func(a, b *item.Item) bool { return col.CompareString(f.text(a), f.text(b)) < 0 }
	}
}
