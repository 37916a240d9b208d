package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sandeepkv93/dashd/internal/export"
	"github.com/sandeepkv93/dashd/internal/source"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		dir        string
		pdfTimeout time.Duration
	)
	cmd := &cobra.Command{
		Use:       "export md|pdf",
		Short:     "Save the dashboard as Markdown or PDF",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"md", "pdf"},
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(args[0])
			if err != nil {
				return err
			}
			res := source.Resolve(cmd.Context(), a.client, a.session.UserID)
			doc := res.Markdown
			if res.Failed {
				a.logger.Warn("dashboard load failed", zap.Error(res.Err))
				doc = ""
			}
			if dir == "" {
				dir = a.cfg.ExportDir
			}
			exporter := export.New(export.ChromePrinter{Timeout: pdfTimeout})
			out, err := exporter.Export(export.Request{
				Markdown: doc,
				UserName: a.session.UserName,
				Dir:      dir,
				Format:   format,
			})
			if err != nil {
				if res.Failed {
					return fmt.Errorf("%s: %w", res.Markdown, err)
				}
				return err
			}
			a.logger.Info("exported dashboard", zap.String("path", out.Path))
			fmt.Fprintln(cmd.OutOrStdout(), out.Message())
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (defaults to export_dir)")
	cmd.Flags().DurationVar(&pdfTimeout, "pdf-timeout", 30*time.Second, "headless Chrome print timeout")
	return cmd
}
