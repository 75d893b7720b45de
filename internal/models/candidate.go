package models

import "time"

// Candidate 候选人表，同一学生在同一选举同一职位只能参选一次
type Candidate struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                                                   // 主键
	StudentID  uint      `gorm:"not null;uniqueIndex:idx_candidates_student_election_position" json:"student_id"`        // 学生ID
	ElectionID uint      `gorm:"not null;index;uniqueIndex:idx_candidates_student_election_position" json:"election_id"` // 选举ID
	Position   string    `gorm:"not null;size:128;uniqueIndex:idx_candidates_student_election_position" json:"position"` // 职位
	Manifesto  string    `gorm:"type:text" json:"manifesto"`                                                             // 竞选宣言
	ImageURL   string    `gorm:"size:1024" json:"image_url"`                                                             // 头像
	VoteCount  int64     `gorm:"not null;default:0" json:"vote_count"`                                                   // 计票
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                                                                // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                                                                             // 更新时间

	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"` // 关联学生
}

// TableName 指定表名
func (Candidate) TableName() string {
	return "candidates"
}
