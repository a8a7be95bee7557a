package telemetry

import (
	"os"
)

var observeEnabled bool

func init() {
	// Read once at process start. Mid-run environment changes only take effect via the override below.
	observeEnabled = os.Getenv("AGT_OBSERVE_JSON") == "1"
}

// ObserveEnabled reports whether JSONL emission is on.
func ObserveEnabled() bool {
	// Preserve the startup value, but allow tests to enable mid-run via env override.
	if os.Getenv("AGT_OBSERVE_JSON") == "1" {
		return true
	}
	return observeEnabled
}

// ArtifactsDir is where events.jsonl is written: AGT_ARTIFACTS_DIR, else .agent.
func ArtifactsDir() string {
	if d := os.Getenv("AGT_ARTIFACTS_DIR"); d != "" {
		return d
	}
	return ".agent"
}
