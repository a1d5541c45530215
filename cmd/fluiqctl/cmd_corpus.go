package main

import (
	"fmt"

	"fluiq-workers/internal/common/config"
	"fluiq-workers/internal/common/errors"
	"fluiq-workers/internal/corpus"

	"github.com/spf13/cobra"
)

var corpusPaths config.CorpusConfig

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect the caption, event and template corpora",
}

var corpusValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate corpus files against their schemas",
	Long: `Loads every corpus the way the worker manager does. Paths left empty
are taken from the copies embedded in the binary.`,
	Args: cobra.NoArgs,
	RunE: runCorpusValidate,
}

func init() {
	addCorpusFlags(corpusValidateCmd)
	corpusCmd.AddCommand(corpusValidateCmd)
}

func addCorpusFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&corpusPaths.CaptionsPath, "captions", "", "captions corpus file")
	cmd.Flags().StringVar(&corpusPaths.EventsPath, "events", "", "events corpus file")
	cmd.Flags().StringVar(&corpusPaths.TemplatesPath, "templates", "", "templates corpus file")
}

func runCorpusValidate(cmd *cobra.Command, args []string) error {
	c, err := corpus.Load(corpusPaths)
	if err != nil {
		if stdErr, ok := errors.AsStandardError(err); ok && stdErr.Details != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", stdErr.Details)
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-10s %d records\n", corpus.Captions, len(c.Captions))
	fmt.Fprintf(out, "%-10s %d records\n", corpus.Events, len(c.Events))
	fmt.Fprintf(out, "%-10s %d records\n", corpus.Templates, len(c.Templates))
	return nil
}
