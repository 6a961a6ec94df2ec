package gormdb

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const itemSequence = "items"

// nextID 锁定计数器行并分配下一个ID,必须在事务中调用
func nextID(tx *gorm.DB, name string) (int64, error) {
	seq, err := lockSequence(tx, name)
	if err != nil {
		return 0, err
	}
	seq.LastID++
	if err := tx.Model(&SequenceModel{}).Where("name = ?", name).Update("last_id", seq.LastID).Error; err != nil {
		return 0, err
	}
	return seq.LastID, nil
}

// advanceTo 导入显式ID后推进计数器,保证之后分配的ID更大
func advanceTo(tx *gorm.DB, name string, id int64) error {
	if _, err := lockSequence(tx, name); err != nil {
		return err
	}
	return tx.Model(&SequenceModel{}).
		Where("name = ? AND last_id < ?", name, id).
		Update("last_id", id).Error
}

func lockSequence(tx *gorm.DB, name string) (*SequenceModel, error) {
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&SequenceModel{Name: name}).Error; err != nil {
		return nil, err
	}
	var seq SequenceModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ?", name).
		First(&seq).Error
	if err != nil {
		return nil, err
	}
	return &seq, nil
}
