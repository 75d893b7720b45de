package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 拒绝投票原因标签
const (
	voteRejectAlreadyVoted = "already_voted"
	voteRejectMismatch     = "candidate_election_mismatch"
	voteRejectNotFound     = "not_found"
	voteRejectError        = "error"
)

// ElectionMetrics 选举相关 Prometheus 指标，nil 时所有方法为空操作
type ElectionMetrics struct {
	votesCast          prometheus.Counter
	votesRejected      *prometheus.CounterVec
	castDuration       prometheus.Histogram
	codesSent          prometheus.Counter
	codeDeliveryFailed prometheus.Counter
	codesVerified      prometheus.Counter
	codesRejected      prometheus.Counter
	tallyCorrections   prometheus.Counter
	studentsRegistered prometheus.Counter
	verificationSwept  prometheus.Counter
}

// NewElectionMetrics 使用给定 Registerer 注册指标
func NewElectionMetrics(reg prometheus.Registerer) *ElectionMetrics {
	factory := promauto.With(reg)
	return &ElectionMetrics{
		votesCast: factory.NewCounter(prometheus.CounterOpts{
			Name: "sug_votes_cast_total",
			Help: "ballots accepted and tallied",
		}),
		votesRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sug_votes_rejected_total",
			Help: "ballots rejected by reason",
		}, []string{"reason"}),
		castDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sug_vote_cast_duration_seconds",
			Help:    "time spent in the cast-vote transaction",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		codesSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "sug_verification_codes_sent_total",
			Help: "verification codes stored and mailed",
		}),
		codeDeliveryFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "sug_verification_code_delivery_failures_total",
			Help: "verification codes stored but not delivered",
		}),
		codesVerified: factory.NewCounter(prometheus.CounterOpts{
			Name: "sug_verification_codes_verified_total",
			Help: "verification codes consumed successfully",
		}),
		codesRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "sug_verification_codes_rejected_total",
			Help: "verification attempts with an invalid or expired code",
		}),
		tallyCorrections: factory.NewCounter(prometheus.CounterOpts{
			Name: "sug_tally_corrections_total",
			Help: "candidate tallies rewritten by reconciliation",
		}),
		studentsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "sug_students_registered_total",
			Help: "students added to the register",
		}),
		verificationSwept: factory.NewCounter(prometheus.CounterOpts{
			Name: "sug_verification_codes_swept_total",
			Help: "expired verification codes removed by the sweeper",
		}),
	}
}

func (m *ElectionMetrics) observeVoteCast(seconds float64) {
	if m == nil {
		return
	}
	m.votesCast.Inc()
	m.castDuration.Observe(seconds)
}

func (m *ElectionMetrics) observeVoteRejected(reason string) {
	if m == nil {
		return
	}
	m.votesRejected.WithLabelValues(reason).Inc()
}

func (m *ElectionMetrics) observeCodeSent(delivered bool) {
	if m == nil {
		return
	}
	if delivered {
		m.codesSent.Inc()
		return
	}
	m.codeDeliveryFailed.Inc()
}

func (m *ElectionMetrics) observeCodeVerified(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.codesVerified.Inc()
		return
	}
	m.codesRejected.Inc()
}

func (m *ElectionMetrics) observeTallyCorrections(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.tallyCorrections.Add(float64(n))
}

func (m *ElectionMetrics) observeStudentRegistered() {
	if m == nil {
		return
	}
	m.studentsRegistered.Inc()
}

func (m *ElectionMetrics) observeSwept(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.verificationSwept.Add(float64(n))
}
