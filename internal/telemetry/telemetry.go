package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/petasbytes/taskrunner/internal/metrics"
)

// Emit writes a single JSON line to <ArtifactsDir>/events.jsonl when AGT_OBSERVE_JSON=1.
// It augments fields with RFC3339Nano time and the event name.
func Emit(name string, fields map[string]any) {
	if !ObserveEnabled() {
		return
	}

	// Make a shallow copy so callers' maps aren't mutated.
	m := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		m[k] = v
	}
	m["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	m["event"] = name

	b, err := json.Marshal(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: marshal: %v\n", err)
		return
	}

	dir := ArtifactsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: mkdir %s: %v\n", dir, err)
		return
	}

	path := filepath.Join(dir, "events.jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: open %s: %v\n", path, err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(b, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: write %s: %v\n", path, err)
		return
	}
}

// EmitRunStarted records the run's shape. The task text itself never leaves
// the process; only its size features do.
func EmitRunStarted(ctx context.Context, task string, maxSteps, planningInterval int, hasFile bool) {
	runID, _ := RunIDFromContext(ctx)
	f := metrics.Measure(task)
	Emit("run_started", map[string]any{
		"run_id":            runID,
		"max_steps":         maxSteps,
		"planning_interval": planningInterval,
		"has_file":          hasFile,
		"task": map[string]any{
			"bytes": f.Bytes,
			"runes": f.Runes,
			"words": f.Words,
			"lines": f.Lines,
		},
	})
}

// Step describes one plan or tool call for EmitStep.
type Step struct {
	Index      int
	Name       string
	Duration   time.Duration
	OutputSize int
	Err        string
}

// EmitStep writes a "plan" or "tool_exec" event. Error is null on success.
func EmitStep(ctx context.Context, event string, s Step) {
	runID, _ := RunIDFromContext(ctx)
	fields := map[string]any{
		"run_id":      runID,
		"step":        s.Index,
		"duration_ms": s.Duration.Milliseconds(),
		"output_size": s.OutputSize,
		"error":       nil,
	}
	if s.Name != "" {
		fields["tool_name"] = s.Name
	}
	if s.Err != "" {
		fields["error"] = s.Err
	}
	Emit(event, fields)
}

// EmitRunFinished records how many steps and history entries a run produced.
func EmitRunFinished(ctx context.Context, steps, historyLen int, elapsed time.Duration) {
	runID, _ := RunIDFromContext(ctx)
	Emit("run_finished", map[string]any{
		"run_id":      runID,
		"steps":       steps,
		"history_len": historyLen,
		"duration_ms": elapsed.Milliseconds(),
	})
}
