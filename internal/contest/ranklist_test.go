package contest_test

import (
	"reflect"
	"testing"

	"minioj/internal/contest"
	"minioj/internal/model"
	"minioj/internal/store"
	"minioj/pkg/errors"
)

func TestParseScoringRule(t *testing.T) {
	if rule, err := contest.ParseScoringRule(""); err != nil || rule != contest.ScoringLatest {
		t.Errorf("empty rule = %q, %v", rule, err)
	}
	if _, err := contest.ParseScoringRule("best"); !errors.Is(err, errors.InvalidArgument) {
		t.Errorf("invalid rule err = %v", err)
	}
}

func TestParseTieBreaker(t *testing.T) {
	for _, s := range []string{"", "submission_time", "submission_count", "user_id"} {
		if _, err := contest.ParseTieBreaker(s); err != nil {
			t.Errorf("ParseTieBreaker(%q) = %v", s, err)
		}
	}
	if _, err := contest.ParseTieBreaker("luck"); !errors.Is(err, errors.InvalidArgument) {
		t.Errorf("invalid tie breaker err = %v", err)
	}
}

// finishJob seeds a finished job with a fixed score and created time.
func finishJob(t *testing.T, st *store.Store, sub model.Submission, score float64, created string) {
	t.Helper()
	job := st.NewJob(sub)
	job.State = model.StateFinished
	job.Result = model.ResultAccepted
	job.Score = score
	job.CreatedTime = created
	job.UpdatedTime = created
	st.UpsertJob(job)
}

func rankStore(t *testing.T) *store.Store {
	t.Helper()
	conf := testConf()
	st := store.New(conf)
	for _, name := range []string{"alice", "bob"} {
		if _, err := st.CreateOrUpdateUser(model.User{ID: -1, Name: name}); err != nil {
			t.Fatalf("seed user %s: %v", name, err)
		}
	}
	return st
}

func TestRanklistLatestVsHighest(t *testing.T) {
	st := rankStore(t)

	// alice (id 1): 100 then 40 on problem 0.
	sub := model.Submission{Language: "Rust", UserID: 1, ContestID: 0, ProblemID: 0}
	finishJob(t, st, sub, 100, "2026-01-01T00:00:00.000Z")
	finishJob(t, st, sub, 40, "2026-01-02T00:00:00.000Z")

	snap := st.Snapshot()

	latest, err := contest.Ranklist(snap, 0, contest.ScoringLatest, contest.TieNone)
	if err != nil {
		t.Fatalf("Ranklist latest: %v", err)
	}
	if got := latest[0].Scores[0]; got != 40 {
		t.Errorf("latest score = %v, want 40", got)
	}

	highest, err := contest.Ranklist(snap, 0, contest.ScoringHighest, contest.TieNone)
	if err != nil {
		t.Fatalf("Ranklist highest: %v", err)
	}
	if got := highest[0].Scores[0]; got != 100 {
		t.Errorf("highest score = %v, want 100", got)
	}
}

func TestRanklistOrderingAndDenseRanks(t *testing.T) {
	st := rankStore(t)

	// alice and bob both score 100; root never submits.
	finishJob(t, st, model.Submission{Language: "Rust", UserID: 1, ContestID: 0, ProblemID: 0}, 100, "2026-01-01T00:00:00.000Z")
	finishJob(t, st, model.Submission{Language: "Rust", UserID: 2, ContestID: 0, ProblemID: 0}, 100, "2026-01-02T00:00:00.000Z")

	entries, err := contest.Ranklist(st.Snapshot(), 0, contest.ScoringLatest, contest.TieNone)
	if err != nil {
		t.Fatalf("Ranklist: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}

	// No tie breaker: equal totals share a rank, ordered by user id.
	wantIDs := []int{1, 2, 0}
	wantRanks := []int{1, 1, 3}
	for i, e := range entries {
		if e.User.ID != wantIDs[i] || e.Rank != wantRanks[i] {
			t.Errorf("entry %d = user %d rank %d, want user %d rank %d",
				i, e.User.ID, e.Rank, wantIDs[i], wantRanks[i])
		}
	}
}

func TestRanklistTieBreakers(t *testing.T) {
	st := rankStore(t)

	// bob reaches 100 earlier but with two submissions; alice needs one.
	finishJob(t, st, model.Submission{Language: "Rust", UserID: 2, ContestID: 0, ProblemID: 0}, 50, "2026-01-01T00:00:00.000Z")
	finishJob(t, st, model.Submission{Language: "Rust", UserID: 2, ContestID: 0, ProblemID: 0}, 100, "2026-01-02T00:00:00.000Z")
	finishJob(t, st, model.Submission{Language: "Rust", UserID: 1, ContestID: 0, ProblemID: 0}, 100, "2026-01-03T00:00:00.000Z")

	snap := st.Snapshot()

	byTime, err := contest.Ranklist(snap, 0, contest.ScoringLatest, contest.TieSubmissionTime)
	if err != nil {
		t.Fatalf("Ranklist by time: %v", err)
	}
	if byTime[0].User.ID != 2 || byTime[0].Rank != 1 || byTime[1].User.ID != 1 || byTime[1].Rank != 2 {
		t.Errorf("by time order = %v", byTime)
	}

	byCount, err := contest.Ranklist(snap, 0, contest.ScoringLatest, contest.TieSubmissionCount)
	if err != nil {
		t.Fatalf("Ranklist by count: %v", err)
	}
	if byCount[0].User.ID != 1 || byCount[1].User.ID != 2 {
		t.Errorf("by count order = %v", byCount)
	}

	byID, err := contest.Ranklist(snap, 0, contest.ScoringLatest, contest.TieUserID)
	if err != nil {
		t.Fatalf("Ranklist by user id: %v", err)
	}
	// user_id never ties, so ranks stay strictly increasing.
	for i, e := range byID {
		if e.Rank != i+1 {
			t.Errorf("by user id rank[%d] = %d", i, e.Rank)
		}
	}
}

func TestRanklistSentinelSubmissionTime(t *testing.T) {
	st := rankStore(t)

	// alice's first submission counts as an improvement even at score 0,
	// so her submission time beats the sentinel carried by users who
	// never submitted.
	finishJob(t, st, model.Submission{Language: "Rust", UserID: 1, ContestID: 0, ProblemID: 0}, 0, "2026-01-01T00:00:00.000Z")

	entries, err := contest.Ranklist(st.Snapshot(), 0, contest.ScoringHighest, contest.TieSubmissionTime)
	if err != nil {
		t.Fatalf("Ranklist: %v", err)
	}
	wantIDs := []int{1, 0, 2}
	wantRanks := []int{1, 2, 2}
	for i, e := range entries {
		if e.User.ID != wantIDs[i] || e.Rank != wantRanks[i] {
			t.Errorf("entry %d = user %d rank %d, want user %d rank %d",
				i, e.User.ID, e.Rank, wantIDs[i], wantRanks[i])
		}
	}
}

func TestRanklistScoresFollowProblemOrder(t *testing.T) {
	conf := testConf()
	st := store.New(conf)
	c := model.Contest{
		ID:              -1,
		Name:            "Ordered",
		From:            "2000-01-01T00:00:00.000Z",
		To:              model.TimeSentinel,
		ProblemIDs:      []int{1, 0},
		UserIDs:         []int{0},
		SubmissionLimit: 10,
	}
	if _, err := st.CreateOrUpdateContest(c, conf); err != nil {
		t.Fatalf("seed contest: %v", err)
	}

	finishJob(t, st, model.Submission{Language: "Rust", UserID: 0, ContestID: 1, ProblemID: 0}, 30, "2026-01-01T00:00:00.000Z")
	finishJob(t, st, model.Submission{Language: "Rust", UserID: 0, ContestID: 1, ProblemID: 1}, 70, "2026-01-02T00:00:00.000Z")

	entries, err := contest.Ranklist(st.Snapshot(), 1, contest.ScoringLatest, contest.TieNone)
	if err != nil {
		t.Fatalf("Ranklist: %v", err)
	}
	if want := []float64{70, 30}; !reflect.DeepEqual(entries[0].Scores, want) {
		t.Errorf("scores = %v, want %v", entries[0].Scores, want)
	}
}

func TestRanklistUnknownContest(t *testing.T) {
	st := rankStore(t)
	if _, err := contest.Ranklist(st.Snapshot(), 42, contest.ScoringLatest, contest.TieNone); !errors.Is(err, errors.NotFound) {
		t.Errorf("err = %v, want NotFound", err)
	}
}
