// Package runner drives the fixed-length step loop.
//
// Each step s in [0, MaxSteps):
//   - when s%PlanningInterval == 0, the model is asked for a plan over the task
//     and the last three history entries;
//   - the task's Action (see Classify) runs exactly one tool path.
//
// Both produce a StepOutput and a history entry, appended before the output is
// yielded. Failures are values, so every step completes; only the consumer
// (by stopping iteration) or a cancelled context ends a run early.
//
// Flow:
//
//	task -> Classify -> [plan] -> tool -> StepOutput ... -> history
package runner
