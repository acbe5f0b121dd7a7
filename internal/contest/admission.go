// Package contest implements submission admission and the ranklist
// engine.
package contest

import (
	"minioj/internal/config"
	"minioj/internal/model"
	"minioj/internal/store"
	"minioj/pkg/errors"
)

// Admit validates that a submission is eligible for its contest and
// resolves the problem and language definitions it targets.
func Admit(conf *config.Conf, snap store.Snapshot, sub model.Submission) (config.Problem, config.Language, error) {
	lang, ok := conf.Language(sub.Language)
	if !ok {
		return config.Problem{}, config.Language{}, errors.Newf(errors.NotFound, "Language %s not found.", sub.Language)
	}
	prob, ok := conf.Problem(sub.ProblemID)
	if !ok {
		return config.Problem{}, config.Language{}, errors.Newf(errors.NotFound, "Problem %d not found.", sub.ProblemID)
	}
	contest, ok := snap.Contest(sub.ContestID)
	if !ok {
		return config.Problem{}, config.Language{}, errors.Newf(errors.NotFound, "Contest %d not found.", sub.ContestID)
	}

	if !contest.HasUser(sub.UserID) {
		return config.Problem{}, config.Language{}, errors.Newf(errors.InvalidArgument, "User %d not in contest %d.", sub.UserID, contest.ID)
	}
	if !contest.HasProblem(sub.ProblemID) {
		return config.Problem{}, config.Language{}, errors.Newf(errors.InvalidArgument, "Problem %d not in contest %d.", sub.ProblemID, contest.ID)
	}
	if now := model.NowUTC(); now < contest.From || now > contest.To {
		return config.Problem{}, config.Language{}, errors.Newf(errors.InvalidArgument, "Contest %d not open for submission.", contest.ID)
	}

	// All stored submissions by the user to this contest count toward
	// the limit, regardless of state.
	count := 0
	for _, job := range snap.Jobs {
		if job.Submission.ContestID == sub.ContestID && job.Submission.UserID == sub.UserID {
			count++
		}
	}
	if count >= contest.SubmissionLimit {
		return config.Problem{}, config.Language{}, errors.Newf(errors.RateLimit, "User %d reached the submission limit of contest %d.", sub.UserID, contest.ID)
	}

	return prob, lang, nil
}
