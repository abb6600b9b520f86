package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/schema"
)

func (a *app) renderCmd() *cobra.Command {
	var (
		recordPath string
		touchAll   bool
		output     string
		renderer   string
		title      string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the form as HTML or text",
		Long: `Renders the form, optionally prefilled from a record file. Only
touched fields show errors; --touch-all marks every field touched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := orchestrator.Request{
				TouchAll:      touchAll,
				Renderer:      renderer,
				RenderOptions: render.RenderOptions{Title: title},
			}
			if recordPath != "" {
				data, err := a.readInput(recordPath)
				if err != nil {
					return err
				}
				record, err := schema.DecodeRecord(data)
				if err != nil {
					return err
				}
				req.Record = record
			}

			out, err := a.gen.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, out, 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", output)
				return nil
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&recordPath, "record", "", "YAML or JSON record used to prefill the form")
	cmd.Flags().BoolVar(&touchAll, "touch-all", false, "show errors for every field")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&renderer, "renderer", "vanilla", "renderer to use (vanilla, tui)")
	cmd.Flags().StringVar(&title, "title", "", "heading shown above the form")
	return cmd
}
