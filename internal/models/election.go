package models

import "time"

// Election 选举表
type Election struct {
	ID          uint        `gorm:"primarykey" json:"id"`                // 主键
	Title       string      `gorm:"not null;size:255" json:"title"`      // 标题
	Description string      `gorm:"type:text" json:"description"`        // 描述
	StartTime   time.Time   `gorm:"index;not null" json:"start_time"`    // 开始时间
	EndTime     time.Time   `gorm:"index;not null" json:"end_time"`      // 结束时间
	Positions   StringArray `gorm:"type:json;not null" json:"positions"` // 职位列表（有序且不重复）
	CreatedBy   uint        `gorm:"index" json:"created_by"`             // 创建管理员
	CreatedAt   time.Time   `gorm:"index" json:"created_at"`             // 创建时间
	UpdatedAt   time.Time   `json:"updated_at"`                          // 更新时间
}

// TableName 指定表名
func (Election) TableName() string {
	return "elections"
}

// HasPosition 职位是否属于本次选举
func (e *Election) HasPosition(position string) bool {
	if e == nil {
		return false
	}
	return e.Positions.Contains(position)
}
