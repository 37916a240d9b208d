package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/dashd/internal/model"
	"github.com/sandeepkv93/dashd/internal/source"
	"github.com/sandeepkv93/dashd/internal/storage"
)

type sectionView struct {
	Title   string `json:"title" yaml:"title"`
	Open    bool   `json:"open" yaml:"open"`
	Content string `json:"content,omitempty" yaml:"content,omitempty"`
}

func newSectionsCmd(a *app) *cobra.Command {
	var (
		format      string
		withContent bool
	)
	cmd := &cobra.Command{
		Use:   "sections",
		Short: "Print dashboard sections with their remembered open state",
		Long: `Fetch the dashboard once and print its sections.

Examples:
  dashd sections
  dashd sections --format json --content`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res := source.Resolve(ctx, a.client, a.session.UserID)
			if res.Err != nil {
				a.logger.Warn("dashboard load failed", zap.Error(res.Err))
			}
			sections := model.SplitSections(res.Markdown)

			var previous model.CollapseState
			if !res.Failed {
				state, err := storage.LoadCollapseState(ctx, a.store)
				if err != nil {
					a.logger.Warn("ignoring persisted collapse state", zap.Error(err))
				}
				previous = state
			}
			state := model.Reconcile(sections, previous)
			return writeSections(cmd.OutOrStdout(), format, buildSectionViews(sections, state, withContent))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	cmd.Flags().BoolVar(&withContent, "content", false, "include section content")
	return cmd
}

func buildSectionViews(sections []model.Section, state model.CollapseState, withContent bool) []sectionView {
	out := make([]sectionView, 0, len(sections))
	for _, s := range sections {
		v := sectionView{Title: s.Title, Open: state.IsOpen(s.Title)}
		if withContent {
			v.Content = s.Content
		}
		out = append(out, v)
	}
	return out
}

func writeSections(w io.Writer, format string, views []sectionView) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		for _, v := range views {
			marker := "▸"
			if v.Open {
				marker = "▾"
			}
			if _, err := fmt.Fprintf(w, "%s %s\n", marker, v.Title); err != nil {
				return err
			}
			if v.Content != "" {
				for _, line := range strings.Split(v.Content, "\n") {
					fmt.Fprintf(w, "    %s\n", line)
				}
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q (want text, json or yaml)", format)
	}
}
