package models

import "time"

// AuditLog 选举委员会操作审计日志
// 说明：记录创建选举、登记候选人、核验学生、对账与角色变更等后台写操作。
type AuditLog struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	OperatorAdminID  uint      `gorm:"index;not null" json:"operator_admin_id"`
	OperatorUsername string    `gorm:"type:varchar(100);index;not null;default:''" json:"operator_username"`
	Action           string    `gorm:"type:varchar(100);index;not null" json:"action"`
	TargetType       string    `gorm:"type:varchar(50);index;not null;default:''" json:"target_type"`
	TargetID         uint      `gorm:"index;not null;default:0" json:"target_id"`
	ElectionID       uint      `gorm:"index;not null;default:0" json:"election_id"`
	RequestID        string    `gorm:"type:varchar(64);index;not null;default:''" json:"request_id"`
	Detail           JSONMap   `gorm:"type:json" json:"detail"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (AuditLog) TableName() string {
	return "audit_logs"
}
