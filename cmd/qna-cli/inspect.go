package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-qna/dataset"
	"github.com/jamesainslie/go-qna/textnorm"
	"github.com/jamesainslie/go-qna/transform"
)

func newKeywordCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keyword [TITLE...]",
		Short: "Print the subject and keyword of question titles",
		Long:  "Print the subject and keyword of each title argument, or of each line on stdin when no titles are given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			titles := args
			if len(titles) == 0 {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					if line := strings.TrimSpace(scanner.Text()); line != "" {
						titles = append(titles, line)
					}
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("reading titles: %w", err)
				}
			}

			w := cmd.OutOrStdout()
			for _, title := range titles {
				fmt.Fprintf(w, "Title:   %q\n", title)
				fmt.Fprintf(w, "Subject: %q\n", textnorm.Subject(title))
				fmt.Fprintf(w, "Keyword: %q\n", textnorm.ExtractKeyword(title))
			}
			a.logger.Debug("extracted keywords", "titles", len(titles))
			return nil
		},
	}
}

func newCountCategoriesCmd(a *app) *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "count-categories",
		Short: `Count categories of labeled "[id] [category] title" questions`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lines, err := dataset.ReadJSON[[]string](input)
			if err != nil {
				return err
			}

			counts := transform.CountLabeledCategories(lines)
			if err := dataset.WriteJSON(output, counts); err != nil {
				return err
			}
			a.logger.Info("counted categories", "lines", len(lines), "categories", counts.Len(), "output", output)

			w := cmd.OutOrStdout()
			for pair := counts.Oldest(); pair != nil; pair = pair.Next() {
				fmt.Fprintf(w, "%-30s %d\n", pair.Key, pair.Value)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "labeled questions JSON file")
	cmd.Flags().StringVarP(&output, "output", "o", "category_count.json", "output file")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newNestCmd(a *app) *cobra.Command {
	var (
		input, output string
		fields        []string
	)

	cmd := &cobra.Command{
		Use:   "nest",
		Short: "Group a JSON array of records by one or two fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := dataset.ReadJSON[[]*transform.Record](input)
			if err != nil {
				return err
			}

			grouped, err := transform.GroupRecords(records, fields)
			if err != nil {
				return err
			}
			if err := dataset.WriteJSON(output, grouped); err != nil {
				return err
			}
			a.logger.Info("grouped records", "records", len(records), "by", fields, "output", output)
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "JSON array of objects")
	cmd.Flags().StringVarP(&output, "output", "o", "nested.json", "output file")
	cmd.Flags().StringArrayVar(&fields, "by", nil, "field to group by; repeat for a second level")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("by")
	return cmd
}
