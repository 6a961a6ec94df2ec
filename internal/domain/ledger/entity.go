package ledger

import "time"

// MovementType 库存变动类型
type MovementType string

const (
	MovementIn  MovementType = "in"  // 入库
	MovementOut MovementType = "out" // 出库
)

// Valid 是否为合法的变动类型
func (t MovementType) Valid() bool {
	return t == MovementIn || t == MovementOut
}

// Transaction 库存流水(只增不改)
//
// 1. 只能由Service.ApplyMovement创建,创建后不可修改、不可删除
// 2. ItemID只是引用,物品删除后流水保留(审计用)
// 3. Quantity始终为正数,方向由Type表示
type Transaction struct {
	ID       int64
	ItemID   int64
	Type     MovementType
	Quantity float64
	Date     time.Time
	User     string
	Notes    string
}

// SignedQuantity 带符号的变动量(入库为正,出库为负)
func (t *Transaction) SignedQuantity() float64 {
	if t.Type == MovementOut {
		return -t.Quantity
	}
	return t.Quantity
}

// Clone 复制流水,仓储对外只返回副本
func (t *Transaction) Clone() *Transaction {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
