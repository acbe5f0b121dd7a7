package service

import (
	"context"
	"testing"

	"minioj/internal/config"
	"minioj/internal/model"
	"minioj/internal/store"
	"minioj/pkg/errors"
)

func listConf() *config.Conf {
	return &config.Conf{
		Problems: []config.Problem{
			{ID: 0, Type: config.ProblemTypeStandard, Cases: []config.Case{{Score: 100}}},
		},
		Languages: []config.Language{
			{Name: "Rust", FileName: "main.rs", Command: []string{"rustc", "%INPUT%", "-o", "%OUTPUT%"}},
		},
	}
}

func seedJob(st *store.Store, sub model.Submission, result model.CaseResult) {
	job := st.NewJob(sub)
	job.State = model.StateFinished
	job.Result = result
	st.UpsertJob(job)
}

func intp(v int) *int                              { return &v }
func strp(v string) *string                        { return &v }
func statep(v model.State) *model.State            { return &v }
func resultp(v model.CaseResult) *model.CaseResult { return &v }

func TestListFilters(t *testing.T) {
	conf := listConf()
	st := store.New(conf)
	if _, err := st.CreateOrUpdateUser(model.User{ID: -1, Name: "alice"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	seedJob(st, model.Submission{Language: "Rust", UserID: 0, ContestID: 0, ProblemID: 0}, model.ResultAccepted)
	seedJob(st, model.Submission{Language: "Rust", UserID: 1, ContestID: 0, ProblemID: 0}, model.ResultWrongAnswer)

	svc := NewJudgeService(conf, st)

	tests := []struct {
		name   string
		filter JobFilter
		want   int
	}{
		{"no filter", JobFilter{}, 2},
		{"by user id", JobFilter{UserID: intp(1)}, 1},
		{"by user name", JobFilter{UserName: strp("alice")}, 1},
		{"unknown user name", JobFilter{UserName: strp("nobody")}, 0},
		{"name and mismatched id", JobFilter{UserName: strp("alice"), UserID: intp(0)}, 0},
		{"by result", JobFilter{Result: resultp(model.ResultAccepted)}, 1},
		{"by state", JobFilter{State: statep(model.StateFinished)}, 2},
		{"by language", JobFilter{Language: strp("Rust")}, 2},
		{"from epoch", JobFilter{From: strp("0001-01-01T00:00:00.000Z")}, 2},
		{"to epoch", JobFilter{To: strp("0001-01-01T00:00:00.000Z")}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := svc.List(tt.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(jobs) != tt.want {
				t.Errorf("len(jobs) = %d, want %d", len(jobs), tt.want)
			}
		})
	}
}

func TestListRejectsMalformedFilters(t *testing.T) {
	svc := NewJudgeService(listConf(), store.New(listConf()))

	tests := []struct {
		name   string
		filter JobFilter
	}{
		{"bad state", JobFilter{State: statep("Sleeping")}},
		{"bad result", JobFilter{Result: resultp("Maybe")}},
		{"bad from", JobFilter{From: strp("yesterday")}},
		{"bad to", JobFilter{To: strp("2026-01-01")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.List(tt.filter); !errors.Is(err, errors.InvalidArgument) {
				t.Errorf("err = %v, want InvalidArgument", err)
			}
		})
	}
}

func TestRejudgeRequiresFinishedJob(t *testing.T) {
	conf := listConf()
	st := store.New(conf)
	svc := NewJudgeService(conf, st)

	if _, err := svc.Rejudge(context.Background(), 7); !errors.Is(err, errors.NotFound) {
		t.Errorf("missing job err = %v, want NotFound", err)
	}

	job := st.NewJob(model.Submission{Language: "Rust", UserID: 0, ContestID: 0, ProblemID: 0})
	st.UpsertJob(job) // still Queueing
	if _, err := svc.Rejudge(context.Background(), job.ID); !errors.Is(err, errors.InvalidState) {
		t.Errorf("queueing job err = %v, want InvalidState", err)
	}
}
