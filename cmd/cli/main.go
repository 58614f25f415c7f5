package main

import (
	"fmt"
	"github.com/intinc/platformexplorer/cmd/cli/catalogcmd"
	"github.com/intinc/platformexplorer/cmd/cli/plancmd"
	"github.com/intinc/platformexplorer/internal/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"io/fs"
	"os"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "pexctl",
		Short:         "Explore AI platforms from the terminal",
		Long:          `Command line companion of the AI platform explorer: browse the catalog, compare platforms, project ROI and draft PRDs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddGroup(catalogcmd.Group, plancmd.Group)
	root.AddCommand(catalogcmd.Commands()...)
	root.AddCommand(plancmd.Commands()...)
	return root
}

func main() {
	// NO_COLOR and friends may come from a .env file.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := newRootCommand().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
