// Command scimctl is a small operator CLI for scimcore: it constructs a
// reference server (without an HTTP listener) for local smoke tests and
// validates a resource document against the bundled core schemas.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scimctl",
	Short: "scimcore operator CLI",
	Long:  `scimctl runs and inspects a scimcore identity-provisioning engine.`,
}

func main() {
	rootCmd.AddCommand(serveCmd, validateCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
