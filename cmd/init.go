package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/fstvl/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize fstvl configuration with an interactive wizard",
	Long:  `Runs an interactive wizard asking for the Contentful space and access token and writes a .fstvl.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
