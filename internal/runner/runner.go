package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/petasbytes/taskrunner/internal/logging"
	"github.com/petasbytes/taskrunner/internal/outcome"
	"github.com/petasbytes/taskrunner/internal/telemetry"
	"github.com/petasbytes/taskrunner/memory"
	"github.com/petasbytes/taskrunner/tools"
)

const (
	DefaultMaxSteps         = 3
	DefaultPlanningInterval = 2
	DefaultURL              = "http://example.com"

	// planWindow is how many history entries a plan prompt embeds.
	planWindow = 3
)

const planPrompt = `
Task: %s
Current Step: %d
History (last 3 steps): %s
Summarize progress and plan next steps.
`

type Runner struct {
	Gateway    tools.Analyzer
	Tools      *tools.Toolbox
	DefaultURL string
	Logger     *slog.Logger
}

func New(gw tools.Analyzer, tb *tools.Toolbox) *Runner {
	return &Runner{Gateway: gw, Tools: tb, DefaultURL: DefaultURL}
}

// Request is one run's input. MaxSteps <= 0 runs no steps; PlanningInterval
// <= 0 selects DefaultPlanningInterval.
type Request struct {
	Task             string
	File             *tools.File
	MaxSteps         int
	PlanningInterval int
}

// StepOutput is what a step yields to the caller.
type StepOutput struct {
	Step   int
	Label  string
	Text   string
	Failed bool
}

func (o StepOutput) String() string {
	return fmt.Sprintf("**%s**: %s", o.Label, o.Text)
}

func stepLabel(step int, kind string) string {
	return fmt.Sprintf("Step %d - %s", step, kind)
}

// Run is a single, non-restartable execution of a Request.
type Run struct {
	runner   *Runner
	req      Request
	action   Action
	history  memory.History
	started  bool
	toolRuns int
}

// Start prepares a run; nothing happens until Steps is ranged over.
func (r *Runner) Start(req Request) *Run {
	if req.PlanningInterval <= 0 {
		req.PlanningInterval = DefaultPlanningInterval
	}
	defaultURL := r.DefaultURL
	if defaultURL == "" {
		defaultURL = DefaultURL
	}
	return &Run{
		runner: r,
		req:    req,
		action: Classify(req.Task, req.File != nil, defaultURL),
	}
}

// Action is the tool path every step of this run takes.
func (run *Run) Action() Action { return run.action }

// History returns the entries appended so far, oldest first.
func (run *Run) History() []memory.Entry { return run.history.Entries() }

// Steps returns the lazy sequence of step outputs. Only the first call yields
// anything. Stopping iteration, or cancelling ctx, abandons the remaining steps.
func (run *Run) Steps(ctx context.Context) iter.Seq[StepOutput] {
	return func(yield func(StepOutput) bool) {
		if run.started {
			return
		}
		run.started = true

		ctx, runID := telemetry.EnsureRunID(ctx)
		logger := logging.OrDiscard(run.runner.Logger).With("run_id", runID)
		start := time.Now()

		telemetry.EmitRunStarted(ctx, run.req.Task, run.req.MaxSteps, run.req.PlanningInterval, run.req.File != nil)
		logger.Info("run started", "max_steps", run.req.MaxSteps, "planning_interval", run.req.PlanningInterval, "action", run.action.Tool())
		defer func() {
			telemetry.EmitRunFinished(ctx, run.toolRuns, run.history.Len(), time.Since(start))
			logger.Info("run finished", "steps", run.toolRuns, "history_len", run.history.Len(), "duration", time.Since(start))
		}()

		for s := 0; s < run.req.MaxSteps; s++ {
			if err := ctx.Err(); err != nil {
				logger.Warn("run cancelled", "step", s, "err", err)
				return
			}
			if s%run.req.PlanningInterval == 0 {
				if !yield(run.plan(ctx, s, logger)) {
					return
				}
			}
			if !yield(run.act(ctx, s, logger)) {
				return
			}
		}
	}
}

func (run *Run) plan(ctx context.Context, step int, logger *slog.Logger) StepOutput {
	recent := run.history.Recent(planWindow)
	values := make([]any, len(recent))
	for i, e := range recent {
		values[i] = e.Value()
	}
	hist, err := json.Marshal(values)
	if err != nil {
		logger.Warn("history encode failed", "step", step, "err", err)
		hist = []byte("[]")
	}

	begin := time.Now()
	text := run.runner.Gateway.Generate(ctx, fmt.Sprintf(planPrompt, run.req.Task, step, hist))
	telemetry.EmitStep(ctx, "plan", telemetry.Step{
		Index:      step,
		Duration:   time.Since(begin),
		OutputSize: len(text.Value),
		Err:        failureName(text),
	})
	logger.Debug("plan", "step", step, "failed", text.Failed(), "duration", time.Since(begin))

	run.history.Append(memory.Entry{Step: step, Kind: memory.KindPlan, Text: "Plan: " + text.Value})
	return StepOutput{Step: step, Label: stepLabel(step, "Plan"), Text: text.Value, Failed: text.Failed()}
}

func (run *Run) act(ctx context.Context, step int, logger *slog.Logger) StepOutput {
	begin := time.Now()
	res := run.dispatch(ctx)
	shown := res.Display()

	telemetry.EmitStep(ctx, "tool_exec", telemetry.Step{
		Index:      step,
		Name:       string(res.Kind()),
		Duration:   time.Since(begin),
		OutputSize: len(shown.Value),
		Err:        failureName(shown),
	})
	logger.Debug("tool", "step", step, "tool", res.Kind(), "failed", shown.Failed(), "duration", time.Since(begin))

	run.toolRuns++
	run.history.Append(memory.Entry{Step: step, Kind: string(res.Kind()), Text: shown.Value, Result: res})
	return StepOutput{Step: step, Label: stepLabel(step, run.action.Label()), Text: shown.Value, Failed: shown.Failed()}
}

func (run *Run) dispatch(ctx context.Context) tools.Result {
	gw, tb, task := run.runner.Gateway, run.runner.Tools, run.req.Task
	switch a := run.action.(type) {
	case CodeAction:
		code := gw.Generate(ctx, "Generate Python code for task: "+task)
		if code.Failed() {
			return tools.FailedResult{Tool: tools.KindCode, Err: code}
		}
		return tb.RunCode(code.Value, tools.Python)
	case SearchAction:
		return tb.Search(ctx, a.Query)
	case BrowseAction:
		return tb.Browse(ctx, a.URL)
	case FileAction:
		return tb.ReadFile(ctx, *run.req.File)
	default:
		return tools.FallbackResult{Reply: gw.Generate(ctx, "Unknown task: "+task)}
	}
}

func failureName(t outcome.Text) string {
	if !t.Failed() {
		return ""
	}
	return t.Kind.String()
}

// Collect runs req to completion and returns every output and the final history.
func (r *Runner) Collect(ctx context.Context, req Request) ([]StepOutput, []memory.Entry) {
	run := r.Start(req)
	var outs []StepOutput
	for o := range run.Steps(ctx) {
		outs = append(outs, o)
	}
	return outs, run.History()
}
