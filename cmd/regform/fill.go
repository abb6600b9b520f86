package main

import (
	"github.com/spf13/cobra"
)

func (a *app) fillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fill",
		Short: "Fill in the registration form interactively",
		Long: `Prompts for every field in order. A field is asked again until its
value passes, then the record is submitted and printed using the
configured output format. The password is masked in the output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, payload, err := a.gen.Fill(cmd.Context())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(payload, '\n'))
			return err
		},
	}
}
