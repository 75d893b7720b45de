package models

import "time"

// Vote 选票表，写入后不可变；(student_id, election_id) 唯一
type Vote struct {
	ID              uint      `gorm:"primarykey" json:"id"`                                                     // 主键
	StudentID       uint      `gorm:"not null;uniqueIndex:idx_votes_student_election" json:"student_id"`        // 投票学生
	ElectionID      uint      `gorm:"not null;uniqueIndex:idx_votes_student_election;index" json:"election_id"` // 选举ID
	CandidateID     uint      `gorm:"not null;index" json:"candidate_id"`                                       // 候选人ID
	TransactionHash string    `gorm:"type:text" json:"transaction_hash,omitempty"`                              // 链上交易哈希（不校验）
	Timestamp       time.Time `gorm:"not null" json:"timestamp"`                                                // 投票时间
	CreatedAt       time.Time `gorm:"index" json:"created_at"`                                                  // 创建时间
}

// TableName 指定表名
func (Vote) TableName() string {
	return "votes"
}
