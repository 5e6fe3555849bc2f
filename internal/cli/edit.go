package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hashline/internal/models"
	"hashline/internal/service"
)

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		editsJSON string
		editsFile string
		preview   bool
	)

	cmd := &cobra.Command{
		Use:   "edit <path>",
		Short: "Apply hashline edits to a text file",
		Long: `Apply a batch of edits addressed by LINE:HASH anchors.

The payload is either a JSON array of edit objects or an object with an
"edits" array. Each edit contains exactly one of set_line, replace_lines,
insert_after or replace. The batch is atomic: a stale anchor aborts every
edit and leaves the file untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			var payload []byte
			switch {
			case editsFile != "":
				b, err := os.ReadFile(editsFile)
				if err != nil {
					return fmt.Errorf("failed to read edits file %s: %w", editsFile, err)
				}
				payload = b
			case editsJSON != "":
				payload = []byte(editsJSON)
			default:
				return fmt.Errorf("provide --edits-json or --edits-file")
			}

			ops, err := models.ParseEditsPayload(payload)
			if err != nil {
				return err
			}

			svc, err := newService(rootOpts)
			if err != nil {
				return err
			}
			resp, err := svc.EditFile(&service.EditRequest{
				Path:    path,
				Edits:   ops,
				Preview: preview,
			})
			if err != nil {
				return err
			}

			errOut := cmd.ErrOrStderr()
			if preview && resp.Preview != "" {
				fmt.Fprintf(errOut, "--- %s\n+++ %s\n\n", path, path)
				fmt.Fprint(errOut, resp.Preview)
			}
			if !resp.Changed {
				fmt.Fprintf(errOut, "no edits to apply; %s unchanged\n", path)
				return nil
			}
			fmt.Fprintf(errOut, "updated %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&editsJSON, "edits-json", "", "JSON edits payload")
	cmd.Flags().StringVar(&editsFile, "edits-file", "", "read the JSON edits payload from a file")
	cmd.Flags().BoolVar(&preview, "preview", false, "print a basic change preview before applying")
	cmd.MarkFlagsMutuallyExclusive("edits-json", "edits-file")

	return cmd
}
