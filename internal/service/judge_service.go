// Package service implements the business operations behind the HTTP
// controllers.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"minioj/internal/config"
	"minioj/internal/contest"
	"minioj/internal/judge"
	"minioj/internal/judge/runner"
	"minioj/internal/model"
	"minioj/internal/store"
	"minioj/pkg/errors"
	"minioj/pkg/utils/logger"
)

// JudgeService accepts submissions, runs them, and serves job queries.
type JudgeService struct {
	conf   *config.Conf
	store  *store.Store
	runner *runner.Runner
}

// NewJudgeService creates a judge service over the shared store.
func NewJudgeService(conf *config.Conf, st *store.Store) *JudgeService {
	return &JudgeService{conf: conf, store: st, runner: runner.New()}
}

// Submit admits a submission, judges it synchronously, and stores the
// finished job. On infrastructure failure nothing is stored; the
// reserved job id is burnt.
func (s *JudgeService) Submit(ctx context.Context, sub model.Submission) (model.Job, error) {
	snap := s.store.Snapshot()
	prob, lang, err := contest.Admit(s.conf, snap, sub)
	if err != nil {
		return model.Job{}, err
	}

	job := s.store.NewJob(sub)
	logger.Info(ctx, "judging submission",
		zap.Int("job_id", job.ID),
		zap.String("language", sub.Language),
		zap.Int("problem_id", sub.ProblemID),
	)

	cases, err := s.runner.Judge(ctx, sub, lang, prob)
	if err != nil {
		logger.Error(ctx, "judge failed", zap.Int("job_id", job.ID), zap.Error(err))
		return model.Job{}, err
	}

	job.Cases = cases
	job.Result, job.Score = judge.Aggregate(cases, prob)
	job.State = model.StateFinished
	job.UpdatedTime = model.NowUTC()
	s.store.UpsertJob(job)
	return job, nil
}

// Rejudge re-runs a finished job against the current configuration. The
// previous record is restored if anything fails.
func (s *JudgeService) Rejudge(ctx context.Context, id int) (model.Job, error) {
	prev, err := s.store.BeginRejudge(id)
	if err != nil {
		return model.Job{}, err
	}

	sub := prev.Submission
	prob, ok := s.conf.Problem(sub.ProblemID)
	if !ok {
		s.store.UpsertJob(prev)
		return model.Job{}, errors.Newf(errors.NotFound, "Problem %d not found.", sub.ProblemID)
	}
	lang, ok := s.conf.Language(sub.Language)
	if !ok {
		s.store.UpsertJob(prev)
		return model.Job{}, errors.Newf(errors.NotFound, "Language %s not found.", sub.Language)
	}

	cases, err := s.runner.Judge(ctx, sub, lang, prob)
	if err != nil {
		logger.Error(ctx, "rejudge failed", zap.Int("job_id", id), zap.Error(err))
		s.store.UpsertJob(prev)
		return model.Job{}, err
	}

	job := prev
	job.Cases = cases
	job.Result, job.Score = judge.Aggregate(cases, prob)
	job.State = model.StateFinished
	job.UpdatedTime = model.NowUTC()
	s.store.UpsertJob(job)
	return job, nil
}

// Get returns the job with the given id.
func (s *JudgeService) Get(id int) (model.Job, error) {
	return s.store.GetJob(id)
}

// JobFilter narrows a job listing. Nil fields match everything.
type JobFilter struct {
	UserID    *int
	UserName  *string
	ContestID *int
	ProblemID *int
	Language  *string
	From      *string
	To        *string
	State     *model.State
	Result    *model.CaseResult
}

// validate rejects malformed state, result, and timestamp values.
func (f JobFilter) validate() error {
	if f.State != nil && !f.State.Valid() {
		return errors.Newf(errors.InvalidArgument, "Invalid state %s.", *f.State)
	}
	if f.Result != nil && !f.Result.Valid() {
		return errors.Newf(errors.InvalidArgument, "Invalid result %s.", *f.Result)
	}
	for _, ts := range []*string{f.From, f.To} {
		if ts == nil {
			continue
		}
		if _, err := time.Parse(model.TimeLayout, *ts); err != nil {
			return errors.Newf(errors.InvalidArgument, "Invalid time %s.", *ts)
		}
	}
	return nil
}

// List returns the jobs matching the filter in id order. A user_name
// that matches no user yields an empty list.
func (s *JudgeService) List(filter JobFilter) ([]model.Job, error) {
	if err := filter.validate(); err != nil {
		return nil, err
	}

	snap := s.store.Snapshot()
	if filter.UserName != nil {
		user, ok := snap.UserByName(*filter.UserName)
		if !ok {
			return []model.Job{}, nil
		}
		if filter.UserID != nil && *filter.UserID != user.ID {
			return []model.Job{}, nil
		}
		filter.UserID = &user.ID
	}

	jobs := make([]model.Job, 0, len(snap.Jobs))
	for _, job := range snap.Jobs {
		if matchJob(job, filter) {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

func matchJob(job model.Job, f JobFilter) bool {
	sub := job.Submission
	switch {
	case f.UserID != nil && sub.UserID != *f.UserID:
	case f.ContestID != nil && sub.ContestID != *f.ContestID:
	case f.ProblemID != nil && sub.ProblemID != *f.ProblemID:
	case f.Language != nil && sub.Language != *f.Language:
	case f.From != nil && job.CreatedTime < *f.From:
	case f.To != nil && job.CreatedTime > *f.To:
	case f.State != nil && job.State != *f.State:
	case f.Result != nil && job.Result != *f.Result:
	default:
		return true
	}
	return false
}
