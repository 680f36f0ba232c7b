package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mediaconform/internal/config"
)

// GlobalOptions carries state shared by every subcommand: the resolved
// configuration and the logger initializeConfig built from it.
type GlobalOptions struct {
	CfgFilePath string
	LogLevel    string

	Logger *logrus.Logger
	Conf   *config.Config
}

func NewRootCMD() *cobra.Command {

	globalOptions := &GlobalOptions{}

	rootCMD := &cobra.Command{
		Use:   "mediaconform",
		Short: "mediaconform",
		Long:  "Computes conformant canvases for photos, videos, and thumbnails and renders them to fit upload-target constraints.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeConfig(cmd, globalOptions)
		},
	}

	// register global flags
	registerFlags(rootCMD)

	// add subcommands
	rootCMD.AddCommand(NewServeCommand(globalOptions))
	rootCMD.AddCommand(NewMigrateCommand(globalOptions))
	rootCMD.AddCommand(NewConformCommand(globalOptions))

	return rootCMD
}

func Execute() {

	rootCmd := NewRootCMD()

	// Run the command based on os.Args
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
