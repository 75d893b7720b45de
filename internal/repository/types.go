package repository

import "time"

// StudentListFilter 查询学生列表的过滤条件
type StudentListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Faculty     string
	Department  string
	Level       string
	IsVerified  *bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ElectionListFilter 查询选举列表的过滤条件
type ElectionListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	// ActiveAt 非空时只返回该时间点正在进行的选举
	ActiveAt *time.Time
}

// VoteListFilter 查询选票列表的过滤条件
type VoteListFilter struct {
	Page        int
	PageSize    int
	ElectionID  uint
	CandidateID uint
	StudentID   uint
}

// CandidateTally 按候选人汇总的实际票数
type CandidateTally struct {
	CandidateID uint
	Votes       int64
}

// AuditLogListFilter 查询审计日志的过滤条件
type AuditLogListFilter struct {
	Page            int
	PageSize        int
	OperatorAdminID uint
	Action          string
	TargetType      string
	ElectionID      uint
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}
