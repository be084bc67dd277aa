package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "vidagent <video-dir>",
		Short:        "Chat with an agent that can view and trim videos in a directory",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.Flags().String("config", "", "Path to a YAML config file")
	root.Flags().String("out", "", "Directory for saved clips (default saved_clips)")
	root.Flags().String("model", "", "Chat model identifier")

	// Hidden tuning flag (internal)
	root.Flags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	_ = root.Flags().MarkHidden("log-level")

	return root
}
