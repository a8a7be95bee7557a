package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petasbytes/taskrunner/tools"
)

func newToolsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tools and their input schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Definitions do not need a backend to be described.
			defs := tools.NewToolbox(nil, tools.Options{}).Registry()
			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(defs)
			}
			for _, d := range defs {
				schema, err := json.Marshal(d.InputSchema)
				if err != nil {
					return fmt.Errorf("encode %s schema: %w", d.Name, err)
				}
				fmt.Fprintf(w, "%s\n  %s\n  input: %s\n", bold(d.Name), d.Description, schema)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print definitions as JSON")
	return cmd
}

func newCallCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "call TOOL INPUT_JSON",
		Short: "Invoke a single tool directly with a JSON input",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			def, ok := tools.Lookup(a.toolbox.Registry(), args[0])
			if !ok {
				return fmt.Errorf("unknown tool %q", args[0])
			}
			res, err := def.Function(cmd.Context(), json.RawMessage(args[1]))
			if err != nil {
				return fmt.Errorf("%s: %w", def.Name, err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}
			if shown := res.Display(); shown.Failed() {
				return fmt.Errorf("%s failed: %s", def.Name, shown.Kind)
			}
			return nil
		},
	}
}
