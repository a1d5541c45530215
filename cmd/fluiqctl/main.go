// Command fluiqctl checks corpora, previews captions, exports the activity
// registry and follows session events without a running broker.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "fluiqctl",
	Short:         "Operator tooling for the Fluiq workers",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(corpusCmd, captionCmd, registryCmd, sessionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
