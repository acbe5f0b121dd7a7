package service

import (
	"time"

	"minioj/internal/config"
	"minioj/internal/contest"
	"minioj/internal/model"
	"minioj/internal/store"
	"minioj/pkg/errors"
)

// ContestService manages users and contests and serves ranklists.
type ContestService struct {
	conf  *config.Conf
	store *store.Store
}

// NewContestService creates a contest service over the shared store.
func NewContestService(conf *config.Conf, st *store.Store) *ContestService {
	return &ContestService{conf: conf, store: st}
}

// SaveUser creates (id -1) or updates a user.
func (s *ContestService) SaveUser(user model.User) (model.User, error) {
	return s.store.CreateOrUpdateUser(user)
}

// ListUsers returns all users in id order.
func (s *ContestService) ListUsers() []model.User {
	return s.store.ListUsers()
}

// SaveContest creates (id -1) or updates a contest after validating its
// time window.
func (s *ContestService) SaveContest(c model.Contest) (model.Contest, error) {
	for _, ts := range []string{c.From, c.To} {
		if _, err := time.Parse(model.TimeLayout, ts); err != nil {
			return model.Contest{}, errors.Newf(errors.InvalidArgument, "Invalid time %s.", ts)
		}
	}
	if c.SubmissionLimit < 0 {
		return model.Contest{}, errors.New(errors.InvalidArgument, "Invalid submission limit.")
	}
	return s.store.CreateOrUpdateContest(c, s.conf)
}

// ListContests returns the user-created contests; the global contest is
// not listed.
func (s *ContestService) ListContests() []model.Contest {
	all := s.store.ListContests()
	contests := make([]model.Contest, 0, len(all))
	for _, c := range all {
		if c.ID == store.GlobalContestID {
			continue
		}
		contests = append(contests, c)
	}
	return contests
}

// GetContest returns the contest with the given id. The global contest
// is addressable here even though listings omit it.
func (s *ContestService) GetContest(id int) (model.Contest, error) {
	return s.store.GetContest(id)
}

// Ranklist computes the contest's standings.
func (s *ContestService) Ranklist(contestID int, rule contest.ScoringRule, tie contest.TieBreaker) ([]contest.RankEntry, error) {
	return contest.Ranklist(s.store.Snapshot(), contestID, rule, tie)
}
