package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petasbytes/taskrunner/internal/runner"
	"github.com/petasbytes/taskrunner/memory"
	"github.com/petasbytes/taskrunner/tools"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var (
		filePath    string
		historyPath string
		plain       bool
	)
	cmd := &cobra.Command{
		Use:   "run TASK...",
		Short: "Run a task through the step loop",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			task := strings.TrimSpace(strings.Join(args, " "))
			if task == "" {
				return errors.New("please enter a task")
			}

			a, err := opts.setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			req := runner.Request{
				Task:             task,
				MaxSteps:         a.cfg.MaxSteps,
				PlanningInterval: a.cfg.PlanningInterval,
			}
			if filePath != "" {
				name, data, err := a.files.Load(filePath)
				if err != nil {
					return fmt.Errorf("load %s: %w", filePath, err)
				}
				req.File = &tools.File{Name: name, Data: data}
			}

			r := runner.New(a.gateway, a.toolbox)
			r.DefaultURL = a.cfg.DefaultURL
			r.Logger = a.logger.With("component", "runner")

			out := newRenderer(cmd.OutOrStdout(), plain)
			out.heading("Task Execution Results")
			run := r.Start(req)
			a.logger.Info("task classified", "tool", run.Action().Tool(), "label", run.Action().Label())
			for step := range run.Steps(cmd.Context()) {
				out.step(step)
			}
			if err := cmd.Context().Err(); err != nil {
				return fmt.Errorf("run interrupted: %w", err)
			}

			history := run.History()
			out.heading("Task History")
			out.history(history)

			if historyPath != "" {
				if err := memory.SaveHistory(historyPath, history); err != nil {
					return fmt.Errorf("save history: %w", err)
				}
				out.note("history saved to " + historyPath)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&filePath, "file", "", "file to attach, relative to the read root (.txt or .pdf)")
	f.StringVar(&historyPath, "save-history", "", "write the final history as JSON to this path")
	f.BoolVar(&plain, "plain", false, "print raw markdown even on a terminal")
	f.Int("max-steps", 0, "number of tool steps (default 3)")
	f.Int("planning-interval", 0, "plan every N steps (default 2)")
	f.Bool("browse-markdown", false, "convert HTML pages to Markdown before analysis")
	_ = opts.v.BindPFlag("max_steps", f.Lookup("max-steps"))
	_ = opts.v.BindPFlag("planning_interval", f.Lookup("planning-interval"))
	_ = opts.v.BindPFlag("browse_markdown", f.Lookup("browse-markdown"))
	return cmd
}
