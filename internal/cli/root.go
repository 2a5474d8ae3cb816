package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "romanctl",
		Short:        "Roman numeral conversion service and tools",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to romanapi.toml (defaults apply when empty)")

	cmd.AddCommand(
		newServeCmd(opts),
		newEncodeCmd(),
		newDecodeCmd(),
		newConfigCmd(opts),
	)
	return cmd
}
