package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	pkgopenapi "github.com/goliatone/go-regform/pkg/openapi"
)

func (a *app) schemaCmd() *cobra.Command {
	var (
		format  string
		version string
	)

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the rule table as an OpenAPI document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc := pkgopenapi.ExportDocument(a.gen.Schema(), version)

			var (
				out []byte
				err error
			)
			switch format {
			case "json":
				out, err = json.MarshalIndent(doc, "", "  ")
				out = append(out, '\n')
			case "yaml":
				out, err = yaml.Marshal(doc)
			default:
				return fmt.Errorf("unknown format %q (json, yaml)", format)
			}
			if err != nil {
				return fmt.Errorf("encode schema: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format (json, yaml)")
	cmd.Flags().StringVar(&version, "version", "1.0.0", "document info.version")
	return cmd
}
