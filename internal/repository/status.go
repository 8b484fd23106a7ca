package repository

import (
	"context"

	"gorm.io/gorm"
)

// StatusCount 按审核状态分组的计数
type StatusCount map[string]int64

// countByStatus 按状态列分组计数
func countByStatus(ctx context.Context, db *gorm.DB, m interface{}, column string) (StatusCount, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := db.WithContext(ctx).Model(m).
		Select(column + " AS status, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(StatusCount, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}

// updateStatus 更新状态列，返回是否命中记录
func updateStatus(ctx context.Context, db *gorm.DB, m interface{}, id int64, column, status string) (bool, error) {
	res := db.WithContext(ctx).Model(m).Where("id = ?", id).Update(column, status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
