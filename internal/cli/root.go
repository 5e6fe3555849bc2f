package cli

import (
	"github.com/spf13/cobra"

	"hashline/internal/config"
	"hashline/internal/filesystem"
	"hashline/internal/lock"
	"hashline/internal/service"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	MaxFileSizeMB  int
	MaxLineCount   int
	LockTimeoutSec int
}

// Config converts the flag values into a service configuration.
func (o *RootOptions) Config() *config.Config {
	return &config.Config{
		MaxFileSizeMB:  o.MaxFileSizeMB,
		MaxLineCount:   o.MaxLineCount,
		LockTimeoutSec: o.LockTimeoutSec,
	}
}

// NewRootCommand creates the root command for the hashline CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "hashline",
		Short:         "Hashline read/edit tools (LINE:HASH anchors)",
		Long:          "Read text files with per-line content fingerprints and apply batches of edits addressed by LINE:HASH anchors.",
		SilenceUsage:  true,
		SilenceErrors: true, // main prints the error once
	}

	cmd.PersistentFlags().IntVar(&opts.MaxFileSizeMB, "max-file-size", config.DefaultMaxFileSizeMB, "maximum file size in MB")
	cmd.PersistentFlags().IntVar(&opts.MaxLineCount, "max-lines", config.DefaultMaxLineCount, "maximum number of lines per file")
	cmd.PersistentFlags().IntVar(&opts.LockTimeoutSec, "lock-timeout", config.DefaultLockTimeoutSec, "seconds to wait for the file lock")

	cmd.AddCommand(NewReadCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))

	return cmd
}

// newService builds the file service from the root options.
func newService(opts *RootOptions) (*service.Service, error) {
	return service.New(filesystem.NewDefaultAdapter(), lock.NewFlockManager(), opts.Config())
}
