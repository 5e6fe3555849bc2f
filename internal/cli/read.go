package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hashline/internal/service"
)

// NewReadCommand creates the read command.
func NewReadCommand(rootOpts *RootOptions) *cobra.Command {
	var offset, limit int

	cmd := &cobra.Command{
		Use:   "read <path>",
		Short: "Print a text file with LINE:HASH|content annotations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(rootOpts)
			if err != nil {
				return err
			}
			resp, err := svc.ReadFile(&service.ReadRequest{
				Path:   args[0],
				Offset: offset,
				Limit:  limit,
			})
			if err != nil {
				return err
			}
			if resp.Printed > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), resp.Content)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "start line (1-indexed)")
	cmd.Flags().IntVar(&limit, "limit", 0, "max lines to print")

	return cmd
}
