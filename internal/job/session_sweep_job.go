package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/soujanya-006/intervuai/internal/service"
)

// SessionSweepJob evicts interview sessions that have been idle past their
// TTL so their indexes and transcripts do not linger in memory.
type SessionSweepJob struct {
	sessions *service.InterviewService
}

func NewSessionSweepJob(sessions *service.InterviewService) *SessionSweepJob {
	return &SessionSweepJob{sessions: sessions}
}

func (j *SessionSweepJob) Name() string {
	return "session_sweep"
}

func (j *SessionSweepJob) Run(ctx context.Context) error {
	if j.sessions == nil {
		return nil
	}
	dropped := j.sessions.SweepIdle()
	if dropped > 0 {
		logutil.GetLogger(ctx).Info("idle interview sessions evicted", zap.Int("count", dropped))
	}
	return nil
}
