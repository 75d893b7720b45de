package models

import "time"

// VerificationCode 邮箱一次性验证码，每个邮箱最多一条
type VerificationCode struct {
	ID        uint      `gorm:"primarykey" json:"id"`                       // 主键
	Email     string    `gorm:"uniqueIndex;not null;size:255" json:"email"` // 邮箱（小写）
	Code      string    `gorm:"not null;size:16" json:"-"`                  // 验证码（不返回给前端）
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`           // 过期时间
	CreatedAt time.Time `gorm:"index" json:"created_at"`                    // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                 // 最近一次发送时间
}

// TableName 指定表名
func (VerificationCode) TableName() string {
	return "verification_codes"
}
