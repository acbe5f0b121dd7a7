package contest

import (
	"sort"

	"minioj/internal/model"
	"minioj/internal/store"
	"minioj/pkg/errors"
)

// ScoringRule selects which submission's score counts per problem.
type ScoringRule string

const (
	ScoringLatest  ScoringRule = "latest"
	ScoringHighest ScoringRule = "highest"
)

// ParseScoringRule validates a query value, defaulting to latest.
func ParseScoringRule(s string) (ScoringRule, error) {
	switch s {
	case "":
		return ScoringLatest, nil
	case string(ScoringLatest), string(ScoringHighest):
		return ScoringRule(s), nil
	}
	return "", errors.Newf(errors.InvalidArgument, "Invalid scoring rule %s.", s)
}

// TieBreaker orders users with equal total scores.
type TieBreaker string

const (
	TieNone            TieBreaker = ""
	TieSubmissionTime  TieBreaker = "submission_time"
	TieSubmissionCount TieBreaker = "submission_count"
	TieUserID          TieBreaker = "user_id"
)

// ParseTieBreaker validates a query value.
func ParseTieBreaker(s string) (TieBreaker, error) {
	switch TieBreaker(s) {
	case TieNone, TieSubmissionTime, TieSubmissionCount, TieUserID:
		return TieBreaker(s), nil
	}
	return "", errors.Newf(errors.InvalidArgument, "Invalid tie breaker %s.", s)
}

// RankEntry is one ranklist row.
type RankEntry struct {
	User   model.User `json:"user"`
	Rank   int        `json:"rank"`
	Scores []float64  `json:"scores"`
}

// standing accumulates one user's per-problem scores and tie-break keys.
type standing struct {
	user model.User
	// scores follows the contest's declared problem order.
	scores []float64
	total  float64
	// lastEffective is the largest created_time among jobs that
	// actually updated the stored score under the scoring rule; the
	// sentinel sorts after every real timestamp.
	lastEffective string
	submissions   int
}

// Ranklist computes the ranked standings of a contest's participants.
// Contest 0 ranks all users over all jobs.
func Ranklist(snap store.Snapshot, contestID int, rule ScoringRule, tie TieBreaker) ([]RankEntry, error) {
	contest, ok := snap.Contest(contestID)
	if !ok {
		return nil, errors.Newf(errors.NotFound, "Contest %d not found.", contestID)
	}

	users := participants(snap, contest)
	standings := make([]*standing, 0, len(users))
	for _, user := range users {
		standings = append(standings, fold(snap.Jobs, contest, user, rule))
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standingLess(standings[i], standings[j], tie)
	})

	entries := make([]RankEntry, len(standings))
	for i, st := range standings {
		rank := i + 1
		if i > 0 && standingTied(standings[i-1], st, tie) {
			rank = entries[i-1].Rank
		}
		entries[i] = RankEntry{User: st.user, Rank: rank, Scores: st.scores}
	}
	return entries, nil
}

// participants returns the contest's users sorted by ascending id. The
// global contest covers every user.
func participants(snap store.Snapshot, contest model.Contest) []model.User {
	var users []model.User
	if contest.ID == store.GlobalContestID {
		users = append(users, snap.Users...)
	} else {
		for _, uid := range contest.UserIDs {
			for _, u := range snap.Users {
				if u.ID == uid {
					users = append(users, u)
					break
				}
			}
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

// fold scans the user's jobs in job-id order and applies the scoring rule.
func fold(jobs []model.Job, contest model.Contest, user model.User, rule ScoringRule) *standing {
	st := &standing{user: user, lastEffective: model.TimeSentinel}
	perProblem := make(map[int]float64)
	updated := false

	for _, job := range jobs {
		if job.Submission.UserID != user.ID {
			continue
		}
		if contest.ID != store.GlobalContestID && job.Submission.ContestID != contest.ID {
			continue
		}
		st.submissions++

		pid := job.Submission.ProblemID
		improved := false
		switch rule {
		case ScoringHighest:
			// Equal scores count as non-improving, so lastEffective
			// can stay at the sentinel when nothing ever improved.
			if cur, ok := perProblem[pid]; !ok || job.Score > cur {
				perProblem[pid] = job.Score
				improved = true
			}
		default: // latest
			perProblem[pid] = job.Score
			improved = true
		}
		if improved {
			if !updated || job.CreatedTime > st.lastEffective {
				st.lastEffective = job.CreatedTime
			}
			updated = true
		}
	}

	st.scores = make([]float64, len(contest.ProblemIDs))
	for i, pid := range contest.ProblemIDs {
		st.scores[i] = perProblem[pid]
		st.total += st.scores[i]
	}
	return st
}

// standingLess is the full sort order: descending total, then the
// selected tie-breaker, then ascending user id as the deterministic
// fallback.
func standingLess(a, b *standing, tie TieBreaker) bool {
	if a.total != b.total {
		return a.total > b.total
	}
	switch tie {
	case TieSubmissionTime:
		if a.lastEffective != b.lastEffective {
			return a.lastEffective < b.lastEffective
		}
	case TieSubmissionCount:
		if a.submissions != b.submissions {
			return a.submissions < b.submissions
		}
	}
	return a.user.ID < b.user.ID
}

// standingTied reports whether two adjacent standings share a rank
// under the tie-breaker.
func standingTied(a, b *standing, tie TieBreaker) bool {
	if a.total != b.total {
		return false
	}
	switch tie {
	case TieSubmissionTime:
		return a.lastEffective == b.lastEffective
	case TieSubmissionCount:
		return a.submissions == b.submissions
	case TieUserID:
		return false
	}
	return true
}
