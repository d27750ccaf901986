package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print Slang's version, author, and license",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Slang %s\n", version)
		fmt.Printf("Author : %s\n", author)
		fmt.Printf("License: %s\n", license)
		return nil
	},
}
