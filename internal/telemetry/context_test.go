package telemetry_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/petasbytes/taskrunner/internal/telemetry"
)

func TestRunID_RoundTrip(t *testing.T) {
	ctx := telemetry.WithRunID(context.Background(), "run-123")
	got, ok := telemetry.RunIDFromContext(ctx)
	if !ok || got != "run-123" {
		t.Fatalf("want run-123,true; got %q,%v", got, ok)
	}
}

func TestRunID_NilContext(t *testing.T) {
	//nolint:staticcheck // nil context is the case under test
	ctx := telemetry.WithRunID(nil, "r1")
	if got, ok := telemetry.RunIDFromContext(ctx); !ok || got != "r1" {
		t.Fatalf("want r1,true; got %q,%v", got, ok)
	}
	//nolint:staticcheck
	if got, ok := telemetry.RunIDFromContext(nil); ok || got != "" {
		t.Fatalf("want empty,false; got %q,%v", got, ok)
	}
}

func TestRunID_EmptyIDRejectedOnRead(t *testing.T) {
	ctx := telemetry.WithRunID(context.Background(), "")
	if got, ok := telemetry.RunIDFromContext(ctx); ok || got != "" {
		t.Fatalf("want empty,false; got %q,%v", got, ok)
	}
}

func TestRunID_ParentCancellationPropagates(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	child := telemetry.WithRunID(parent, "r1")
	cancel()

	select {
	case <-child.Done():
	case <-time.After(100 * time.Millisecond):
		t.Fatal("child context did not observe parent cancellation")
	}
}

func TestRunID_LastWriteWins(t *testing.T) {
	ctx := telemetry.WithRunID(telemetry.WithRunID(context.Background(), "r1"), "r2")
	if got, _ := telemetry.RunIDFromContext(ctx); got != "r2" {
		t.Fatalf("want r2; got %q", got)
	}
}

func TestEnsureRunID(t *testing.T) {
	ctx, id := telemetry.EnsureRunID(context.Background())
	if !strings.HasPrefix(id, "run-") {
		t.Fatalf("unexpected generated id %q", id)
	}
	if got, _ := telemetry.RunIDFromContext(ctx); got != id {
		t.Fatalf("context carries %q, want %q", got, id)
	}

	ctx2, id2 := telemetry.EnsureRunID(ctx)
	if id2 != id || ctx2 != ctx {
		t.Fatalf("existing run id should be kept; got %q", id2)
	}
}
