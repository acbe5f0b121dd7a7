// Package store holds the process-wide job/user/contest collections.
//
// Each collection is guarded by its own mutex. Any code path needing
// more than one acquires them in the order jobs -> users -> contests and
// releases in reverse. No lock is ever held across subprocess execution;
// handlers copy what they need out of a Snapshot, judge, and re-acquire
// only to upsert the result.
package store

import (
	"math"
	"sort"
	"sync"

	"minioj/internal/config"
	"minioj/internal/model"
	"minioj/pkg/errors"
)

// GlobalContestID is the synthetic contest covering all problems and users.
const GlobalContestID = 0

const globalContestFrom = "0000-01-01T00:00:00.000Z"

// Store is the in-memory state store.
type Store struct {
	jobsMu    sync.Mutex
	jobs      []model.Job
	nextJobID int

	usersMu sync.Mutex
	users   []model.User

	contestsMu sync.Mutex
	contests   []model.Contest
}

// New creates a store seeded with the root user and the global contest.
func New(conf *config.Conf) *Store {
	return &Store{
		users: []model.User{{ID: 0, Name: "root"}},
		contests: []model.Contest{{
			ID:              GlobalContestID,
			Name:            "Global Contest",
			From:            globalContestFrom,
			To:              model.TimeSentinel,
			ProblemIDs:      conf.ProblemIDs(),
			UserIDs:         []int{0},
			SubmissionLimit: math.MaxInt32,
		}},
	}
}

// Snapshot is a point-in-time copy of all three collections.
type Snapshot struct {
	Jobs     []model.Job
	Users    []model.User
	Contests []model.Contest
}

// Contest looks a contest up in the snapshot by id.
func (s Snapshot) Contest(id int) (model.Contest, bool) {
	for _, c := range s.Contests {
		if c.ID == id {
			return c, true
		}
	}
	return model.Contest{}, false
}

// UserByName looks a user up in the snapshot by name.
func (s Snapshot) UserByName(name string) (model.User, bool) {
	for _, u := range s.Users {
		if u.Name == name {
			return u, true
		}
	}
	return model.User{}, false
}

// Snapshot copies all three collections under the canonical lock order.
func (s *Store) Snapshot() Snapshot {
	s.jobsMu.Lock()
	s.usersMu.Lock()
	s.contestsMu.Lock()
	snap := Snapshot{
		Jobs:     append([]model.Job(nil), s.jobs...),
		Users:    append([]model.User(nil), s.users...),
		Contests: append([]model.Contest(nil), s.contests...),
	}
	s.contestsMu.Unlock()
	s.usersMu.Unlock()
	s.jobsMu.Unlock()
	return snap
}

// NewJob reserves the next job id and returns a Queueing job for the
// submission. The job is not inserted; the reservation survives even if
// the judge pipeline later fails, so ids stay unique under concurrency.
func (s *Store) NewJob(sub model.Submission) model.Job {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	id := s.nextJobID
	s.nextJobID++

	now := model.NowUTC()
	return model.Job{
		ID:          id,
		CreatedTime: now,
		UpdatedTime: now,
		Submission:  sub,
		State:       model.StateQueueing,
		Result:      model.ResultWaiting,
		Score:       0,
		Cases:       []model.CaseRes{},
	}
}

// UpsertJob replaces any stored job with the same id, else inserts in
// id order.
func (s *Store) UpsertJob(job model.Job) {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	idx := sort.Search(len(s.jobs), func(i int) bool { return s.jobs[i].ID >= job.ID })
	if idx < len(s.jobs) && s.jobs[idx].ID == job.ID {
		s.jobs[idx] = job
		return
	}
	s.jobs = append(s.jobs, model.Job{})
	copy(s.jobs[idx+1:], s.jobs[idx:])
	s.jobs[idx] = job
}

// GetJob returns the job with the given id.
func (s *Store) GetJob(id int) (model.Job, error) {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	idx := sort.Search(len(s.jobs), func(i int) bool { return s.jobs[i].ID >= id })
	if idx < len(s.jobs) && s.jobs[idx].ID == id {
		return s.jobs[idx], nil
	}
	return model.Job{}, errors.Newf(errors.NotFound, "Job %d not found.", id)
}

// ListJobs returns all jobs in id order.
func (s *Store) ListJobs() []model.Job {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()
	return append([]model.Job(nil), s.jobs...)
}

// BeginRejudge atomically checks that the job is Finished and flips it
// to Running, returning the previous Finished record so the caller can
// restore it on failure.
func (s *Store) BeginRejudge(id int) (model.Job, error) {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	idx := sort.Search(len(s.jobs), func(i int) bool { return s.jobs[i].ID >= id })
	if idx == len(s.jobs) || s.jobs[idx].ID != id {
		return model.Job{}, errors.Newf(errors.NotFound, "Job %d not found.", id)
	}
	if s.jobs[idx].State != model.StateFinished {
		return model.Job{}, errors.Newf(errors.InvalidState, "Job %d not finished.", id)
	}

	prev := s.jobs[idx]
	s.jobs[idx].State = model.StateRunning
	s.jobs[idx].Result = model.ResultWaiting
	s.jobs[idx].UpdatedTime = model.NowUTC()
	return prev, nil
}

// CreateOrUpdateUser appends a new user when user.ID == -1 (rejecting
// name collisions) or overwrites the user at that id. New user ids are
// also appended to the global contest.
func (s *Store) CreateOrUpdateUser(user model.User) (model.User, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	for _, u := range s.users {
		if u.Name == user.Name && u.ID != user.ID {
			return model.User{}, errors.Newf(errors.InvalidArgument, "User name '%s' already exists.", user.Name)
		}
	}

	if user.ID == -1 {
		user.ID = len(s.users)
		s.users = append(s.users, user)

		s.contestsMu.Lock()
		s.contests[GlobalContestID].UserIDs = append(s.contests[GlobalContestID].UserIDs, user.ID)
		s.contestsMu.Unlock()
		return user, nil
	}

	if user.ID < 0 || user.ID >= len(s.users) {
		return model.User{}, errors.Newf(errors.NotFound, "User %d not found.", user.ID)
	}
	s.users[user.ID] = user
	return user, nil
}

// ListUsers returns all users in id order.
func (s *Store) ListUsers() []model.User {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	return append([]model.User(nil), s.users...)
}

// CreateOrUpdateContest appends a new contest when contest.ID == -1 or
// replaces the contest at that id. The global contest is not
// user-modifiable; referenced problems must be configured and referenced
// users must exist.
func (s *Store) CreateOrUpdateContest(contest model.Contest, conf *config.Conf) (model.Contest, error) {
	if contest.ID == GlobalContestID {
		return model.Contest{}, errors.New(errors.InvalidArgument, "Invalid contest id 0.")
	}
	for _, pid := range contest.ProblemIDs {
		if _, ok := conf.Problem(pid); !ok {
			return model.Contest{}, errors.Newf(errors.NotFound, "Problem %d not found.", pid)
		}
	}

	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	for _, uid := range contest.UserIDs {
		if uid < 0 || uid >= len(s.users) {
			return model.Contest{}, errors.Newf(errors.NotFound, "User %d not found.", uid)
		}
	}

	s.contestsMu.Lock()
	defer s.contestsMu.Unlock()

	if contest.ID == -1 {
		contest.ID = len(s.contests)
		s.contests = append(s.contests, contest)
		return contest, nil
	}
	if contest.ID < 0 || contest.ID >= len(s.contests) {
		return model.Contest{}, errors.Newf(errors.NotFound, "Contest %d not found.", contest.ID)
	}
	s.contests[contest.ID] = contest
	return contest, nil
}

// ListContests returns all contests in id order, including the global one.
func (s *Store) ListContests() []model.Contest {
	s.contestsMu.Lock()
	defer s.contestsMu.Unlock()
	return append([]model.Contest(nil), s.contests...)
}

// GetContest returns the contest with the given id.
func (s *Store) GetContest(id int) (model.Contest, error) {
	s.contestsMu.Lock()
	defer s.contestsMu.Unlock()

	if id < 0 || id >= len(s.contests) {
		return model.Contest{}, errors.Newf(errors.NotFound, "Contest %d not found.", id)
	}
	return s.contests[id], nil
}
