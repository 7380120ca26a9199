package main

import (
	"fmt"
	"strings"

	desceditor "github.com/formaniuktaras/Price20"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of desceditor",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("desceditor version %s\n", strings.TrimSpace(desceditor.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
