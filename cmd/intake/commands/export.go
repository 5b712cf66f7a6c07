package commands

import (
	"io"
	"os"

	"intake-backend/internal/export"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every intake record as CSV",
		Long:  `Write every intake record as CSV, newest first, to a file or stdout. An empty store is an error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, _, err := setup(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			records, err := e.store.ExportAll(ctx)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return export.ErrEmpty
			}
			columns, err := e.store.Columns(ctx)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath) // #nosec G304
				if err != nil {
					return errors.Wrap(err, "create output file")
				}
				defer func() { _ = f.Close() }()
				w = f
			}
			return export.WriteCSV(w, columns, records)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}
