package models

import "time"

// Student 学生（选民）表
type Student struct {
	ID            uint       `gorm:"primarykey" json:"id"`                              // 主键
	MatricNumber  string     `gorm:"uniqueIndex;not null;size:64" json:"matric_number"` // 学号
	Email         string     `gorm:"uniqueIndex;not null;size:255" json:"email"`        // 邮箱（小写）
	FullName      string     `gorm:"not null;size:255" json:"full_name"`                // 姓名
	Faculty       string     `gorm:"not null;size:255" json:"faculty"`                  // 学院
	Department    string     `gorm:"not null;size:255" json:"department"`               // 系
	Level         string     `gorm:"not null;size:32" json:"level"`                     // 年级
	WalletAddress string     `gorm:"size:64;index" json:"wallet_address,omitempty"`     // 钱包地址（EIP-55）
	IsVerified    bool       `gorm:"not null;default:false;index" json:"is_verified"`   // 邮箱是否已验证
	VerifiedAt    *time.Time `json:"verified_at,omitempty"`                             // 验证时间
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt     time.Time  `json:"updated_at"`                                        // 更新时间
}

// TableName 指定表名
func (Student) TableName() string {
	return "students"
}
