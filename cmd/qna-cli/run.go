package main

import (
	"fmt"

	"github.com/spf13/cobra"

	qna "github.com/jamesainslie/go-qna"
)

func newRunCmd(a *app) *cobra.Command {
	var input, outputDir string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Derive every configured document from the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if input == "" {
				input = a.cfg.Input
			}
			if outputDir == "" {
				outputDir = a.cfg.OutputDir
			}

			p, err := qna.New(input, outputDir, a.cfg.PipelineOutputs(),
				qna.WithLocale(a.cfg.Locale),
				qna.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}

			written, err := p.Run(cmd.Context())
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "source dataset (overrides config)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "output directory (overrides config)")
	return cmd
}
