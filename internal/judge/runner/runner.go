// Package runner compiles a submission in a scoped temp workspace and
// executes it against the problem's cases under wall-clock deadlines.
package runner

import (
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"minioj/internal/config"
	"minioj/internal/model"
	"minioj/pkg/errors"
	"minioj/pkg/utils/logger"
)

const (
	binaryName = "code"
	outputName = "code.out"

	inputToken  = "%INPUT%"
	outputToken = "%OUTPUT%"

	// extraWallTime is the grace added on top of a case's time limit
	// before the child is killed.
	extraWallTime = 500 * time.Millisecond
)

// Runner judges submissions. Per-case verdicts are values; a Runner
// error always means an infrastructure failure (filesystem, spawn).
type Runner struct {
	diffPath string
}

// New creates a runner using the diff binary from PATH.
func New() *Runner {
	return &Runner{diffPath: "diff"}
}

// Judge produces the full cases sequence for a submission: the
// compilation pseudo-case at index 0 followed by one entry per problem
// case. The workspace is removed on every exit path.
func (r *Runner) Judge(ctx context.Context, sub model.Submission, lang config.Language, prob config.Problem) ([]model.CaseRes, error) {
	workDir, err := os.MkdirTemp("", "oj-judge-*")
	if err != nil {
		return nil, errors.Wrap(err, errors.Internal)
	}
	defer func() {
		if rmErr := os.RemoveAll(workDir); rmErr != nil {
			logger.Warn(ctx, "remove workspace failed", zap.String("dir", workDir), zap.Error(rmErr))
		}
	}()

	binPath := filepath.Join(workDir, binaryName)
	compileRes, compiled, err := r.compile(ctx, workDir, binPath, sub, lang)
	if err != nil {
		return nil, err
	}

	cases := make([]model.CaseRes, 0, len(prob.Cases)+1)
	cases = append(cases, compileRes)
	if !compiled {
		for i := range prob.Cases {
			cases = append(cases, model.CaseRes{ID: i + 1, Result: model.ResultWaiting})
		}
		return cases, nil
	}

	// Every case runs, in declaration order, even after a failure.
	for i, cs := range prob.Cases {
		caseRes, err := r.runCase(ctx, workDir, binPath, i+1, cs, prob.Type)
		if err != nil {
			return nil, err
		}
		cases = append(cases, caseRes)
	}
	return cases, nil
}

// compile writes the source file and runs the expanded language command.
// A nonzero exit is a Compilation Error value, not an error.
func (r *Runner) compile(ctx context.Context, workDir, binPath string, sub model.Submission, lang config.Language) (model.CaseRes, bool, error) {
	srcPath := filepath.Join(workDir, lang.FileName)
	if err := os.WriteFile(srcPath, []byte(sub.SourceCode), 0o644); err != nil {
		return model.CaseRes{}, false, errors.Wrap(err, errors.Internal)
	}

	args := expandCommand(lang.Command, srcPath, binPath)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	// No stdin; stdout and stderr discarded.

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start).Microseconds()

	if err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			logger.Info(ctx, "compilation failed",
				zap.String("language", lang.Name),
				zap.Int("exit_code", exitErr.ExitCode()),
			)
			return model.CaseRes{ID: 0, Result: model.ResultCompilationError}, false, nil
		}
		return model.CaseRes{}, false, errors.Wrapf(err, errors.External, "spawn compiler: %v", err)
	}

	return model.CaseRes{ID: 0, Result: model.ResultCompilationSuccess, Time: elapsed}, true, nil
}

// runCase executes the built binary against one case under its deadline.
func (r *Runner) runCase(ctx context.Context, workDir, binPath string, id int, cs config.Case, ptype config.ProblemType) (model.CaseRes, error) {
	input, err := os.Open(cs.InputFile)
	if err != nil {
		return model.CaseRes{}, errors.Wrap(err, errors.External)
	}
	defer input.Close()

	outPath := filepath.Join(workDir, outputName)
	output, err := os.Create(outPath)
	if err != nil {
		return model.CaseRes{}, errors.Wrap(err, errors.Internal)
	}
	defer output.Close()

	cmd := exec.Command(binPath)
	cmd.Stdin = input
	cmd.Stdout = output
	// stderr discarded

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return model.CaseRes{}, errors.Wrap(err, errors.External)
	}

	deadline := time.Duration(cs.TimeLimit)*time.Microsecond + extraWallTime
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	var waitErr error
	timedOut := false
	select {
	case waitErr = <-done:
	case <-time.After(deadline):
		timedOut = true
		_ = cmd.Process.Kill()
		<-done
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return model.CaseRes{}, errors.Wrap(ctx.Err(), errors.Internal)
	}
	elapsed := time.Since(start).Microseconds()

	res := model.CaseRes{ID: id, Time: elapsed}
	switch {
	case timedOut:
		res.Result = model.ResultTimeLimitExceeded
	case waitErr != nil:
		var exitErr *exec.ExitError
		if !stderrors.As(waitErr, &exitErr) {
			return model.CaseRes{}, errors.Wrap(waitErr, errors.External)
		}
		res.Result = model.ResultRuntimeError
	default:
		if err := output.Sync(); err != nil {
			return model.CaseRes{}, errors.Wrap(err, errors.Internal)
		}
		verdict, err := r.compare(ptype, outPath, cs.AnswerFile)
		if err != nil {
			return model.CaseRes{}, err
		}
		res.Result = verdict
	}
	return res, nil
}

// compare diffs the produced output against the answer file according
// to the problem type.
func (r *Runner) compare(ptype config.ProblemType, outPath, answerPath string) (model.CaseResult, error) {
	var args []string
	switch ptype {
	case config.ProblemTypeStandard:
		args = []string{"-q", "-w", outPath, answerPath}
	case config.ProblemTypeStrict:
		args = []string{"-q", outPath, answerPath}
	default:
		// spj and dynamic_ranking are recognized in configuration but
		// not evaluated.
		return model.ResultSPJError, nil
	}

	err := exec.Command(r.diffPath, args...).Run()
	if err == nil {
		return model.ResultAccepted, nil
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return model.ResultWrongAnswer, nil
	}
	return "", errors.Wrapf(err, errors.External, "spawn diff: %v", err)
}

// expandCommand substitutes the %INPUT% and %OUTPUT% placeholder tokens.
// Other tokens pass through verbatim.
func expandCommand(command []string, srcPath, binPath string) []string {
	args := make([]string, len(command))
	for i, tok := range command {
		switch tok {
		case inputToken:
			args[i] = srcPath
		case outputToken:
			args[i] = binPath
		default:
			args[i] = tok
		}
	}
	return args
}
