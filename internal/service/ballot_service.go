package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/unilorin-sug/election/internal/i18n"
	"github.com/unilorin-sug/election/internal/logger"
	"github.com/unilorin-sug/election/internal/models"
	"github.com/unilorin-sug/election/internal/queue"
	"github.com/unilorin-sug/election/internal/repository"

	"gorm.io/gorm"
)

// BallotService 投票账本服务
type BallotService struct {
	voteRepo      repository.VoteRepository
	candidateRepo repository.CandidateRepository
	studentRepo   repository.StudentRepository
	electionRepo  repository.ElectionRepository
	queueClient   *queue.Client
	mailer        Mailer
	metrics       *ElectionMetrics
	nowFunc       func() time.Time
}

// CastVoteInput 投票输入
type CastVoteInput struct {
	StudentID       uint
	CandidateID     uint
	ElectionID      uint
	TransactionHash string
	Locale          string
}

// TallyCorrection 对账修正记录
type TallyCorrection struct {
	CandidateID uint  `json:"candidate_id"`
	Previous    int64 `json:"previous"`
	Actual      int64 `json:"actual"`
}

// NewBallotService 创建投票服务
func NewBallotService(
	voteRepo repository.VoteRepository,
	candidateRepo repository.CandidateRepository,
	studentRepo repository.StudentRepository,
	electionRepo repository.ElectionRepository,
	queueClient *queue.Client,
	mailer Mailer,
	metrics *ElectionMetrics,
) *BallotService {
	return &BallotService{
		voteRepo:      voteRepo,
		candidateRepo: candidateRepo,
		studentRepo:   studentRepo,
		electionRepo:  electionRepo,
		queueClient:   queueClient,
		mailer:        mailer,
		metrics:       metrics,
		nowFunc:       time.Now,
	}
}

// CastVote 投票。
// 写入选票与候选人票数自增在同一事务中完成，(student_id, election_id) 唯一索引冲突返回 ErrAlreadyVoted。
func (s *BallotService) CastVote(ctx context.Context, input CastVoteInput) (*models.Vote, error) {
	started := time.Now()
	var vote *models.Vote
	err := s.voteRepo.Transaction(ctx, func(tx *gorm.DB) error {
		candidateRepo := s.candidateRepo.WithTx(tx)
		candidate, err := candidateRepo.GetByID(input.CandidateID)
		if err != nil {
			return err
		}
		if candidate == nil {
			return ErrNotFound
		}
		if candidate.ElectionID != input.ElectionID {
			return ErrCandidateElectionMismatch
		}
		student, err := s.studentRepo.WithTx(tx).GetByID(input.StudentID)
		if err != nil {
			return err
		}
		if student == nil {
			return ErrNotFound
		}

		record := &models.Vote{
			StudentID:       student.ID,
			CandidateID:     candidate.ID,
			ElectionID:      input.ElectionID,
			TransactionHash: strings.TrimSpace(input.TransactionHash),
			Timestamp:       s.nowFunc().UTC(),
		}
		if err := s.voteRepo.WithTx(tx).Create(record); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return ErrAlreadyVoted
			}
			return err
		}
		affected, err := candidateRepo.IncrementVoteCount(candidate.ID)
		if err != nil {
			return err
		}
		if affected != 1 {
			return fmt.Errorf("increment vote count: %d rows affected", affected)
		}
		vote = record
		return nil
	})
	if err != nil {
		s.metrics.observeVoteRejected(voteRejectReason(err))
		if isBallotRejection(err) {
			logger.Infow("vote_rejected",
				"student_id", input.StudentID,
				"election_id", input.ElectionID,
				"candidate_id", input.CandidateID,
				"reason", voteRejectReason(err),
			)
		} else {
			logger.Errorw("vote_cast_failed",
				"student_id", input.StudentID,
				"election_id", input.ElectionID,
				"candidate_id", input.CandidateID,
				"error", err,
			)
		}
		return nil, err
	}

	s.metrics.observeVoteCast(time.Since(started).Seconds())
	logger.Infow("vote_cast",
		"vote_id", vote.ID,
		"student_id", vote.StudentID,
		"election_id", vote.ElectionID,
		"candidate_id", vote.CandidateID,
	)
	invalidateResults(ctx, vote.ElectionID)
	if err := s.queueClient.EnqueueVoteReceiptEmail(queue.VoteReceiptEmailPayload{
		VoteID: vote.ID,
		Locale: input.Locale,
	}); err != nil {
		logger.Warnw("vote_receipt_enqueue_failed", "vote_id", vote.ID, "error", err)
	}
	return vote, nil
}

// HasVoted 学生是否已在该选举投票
func (s *BallotService) HasVoted(studentID, electionID uint) (bool, error) {
	return s.voteRepo.HasVoted(studentID, electionID)
}

// ListVotes 选票列表
func (s *BallotService) ListVotes(filter repository.VoteListFilter) ([]models.Vote, int64, error) {
	return s.voteRepo.List(filter)
}

// ReconcileTallies 按实际选票重算候选人票数，返回被修正的候选人
func (s *BallotService) ReconcileTallies(ctx context.Context, electionID uint) ([]TallyCorrection, error) {
	election, err := s.electionRepo.GetByID(electionID)
	if err != nil {
		return nil, err
	}
	if election == nil {
		return nil, ErrNotFound
	}

	corrections := make([]TallyCorrection, 0)
	err = s.voteRepo.Transaction(ctx, func(tx *gorm.DB) error {
		tallies, err := s.voteRepo.WithTx(tx).TallyByElection(electionID)
		if err != nil {
			return err
		}
		actual := make(map[uint]int64, len(tallies))
		for _, row := range tallies {
			actual[row.CandidateID] = row.Votes
		}

		candidateRepo := s.candidateRepo.WithTx(tx)
		candidates, err := candidateRepo.ListByElection(electionID)
		if err != nil {
			return err
		}
		for _, candidate := range candidates {
			count := actual[candidate.ID]
			if candidate.VoteCount == count {
				continue
			}
			if err := candidateRepo.SetVoteCount(candidate.ID, count); err != nil {
				return err
			}
			corrections = append(corrections, TallyCorrection{
				CandidateID: candidate.ID,
				Previous:    candidate.VoteCount,
				Actual:      count,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.observeTallyCorrections(len(corrections))
	if len(corrections) > 0 {
		invalidateResults(ctx, electionID)
		logger.Warnw("tally_reconciled", "election_id", electionID, "corrections", len(corrections))
	} else {
		logger.Infow("tally_reconciled", "election_id", electionID, "corrections", 0)
	}
	return corrections, nil
}

// SendVoteReceipt 发送投票回执邮件（由异步任务调用）
func (s *BallotService) SendVoteReceipt(voteID uint, locale string) error {
	if s.mailer == nil {
		return ErrEmailServiceNotConfigured
	}
	vote, err := s.voteRepo.GetByID(voteID)
	if err != nil {
		return err
	}
	if vote == nil {
		return ErrNotFound
	}
	student, err := s.studentRepo.GetByID(vote.StudentID)
	if err != nil {
		return err
	}
	if student == nil {
		return ErrNotFound
	}
	election, err := s.electionRepo.GetByID(vote.ElectionID)
	if err != nil {
		return err
	}
	if election == nil {
		return ErrNotFound
	}

	receipt := vote.TransactionHash
	if receipt == "" {
		receipt = fmt.Sprintf("SUG-%d-%d", vote.ElectionID, vote.ID)
	}
	subject := i18n.T(locale, "email.receipt_subject")
	body := i18n.Sprintf(locale, "email.receipt_body",
		student.FullName,
		election.Title,
		vote.Timestamp.UTC().Format(time.RFC1123),
		receipt,
	)
	return s.mailer.Send(student.Email, subject, body)
}

func isBallotRejection(err error) bool {
	return errors.Is(err, ErrAlreadyVoted) ||
		errors.Is(err, ErrCandidateElectionMismatch) ||
		errors.Is(err, ErrNotFound)
}

func voteRejectReason(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyVoted):
		return voteRejectAlreadyVoted
	case errors.Is(err, ErrCandidateElectionMismatch):
		return voteRejectMismatch
	case errors.Is(err, ErrNotFound):
		return voteRejectNotFound
	default:
		return voteRejectError
	}
}
