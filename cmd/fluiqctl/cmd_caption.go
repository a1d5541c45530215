package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"fluiq-workers/internal/captions"
	"fluiq-workers/internal/corpus"
	"fluiq-workers/internal/models"

	"github.com/spf13/cobra"
)

var (
	captionNiche        string
	captionCity         string
	captionTone         string
	captionSeed         int64
	captionCorpusPath   string
	captionShowFallback bool
)

var captionCmd = &cobra.Command{
	Use:   "caption",
	Short: "Work with the caption engine",
}

var captionGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one caption for a niche, city and tone",
	Args:  cobra.NoArgs,
	RunE:  runCaptionGenerate,
}

func init() {
	f := captionGenerateCmd.Flags()
	f.StringVar(&captionNiche, "niche", "", "content niche, e.g. food")
	f.StringVar(&captionCity, "city", "", "city tag, e.g. abidjan")
	f.StringVar(&captionTone, "tone", string(models.ToneFun), "caption tone")
	f.Int64Var(&captionSeed, "seed", 0, "random seed, 0 seeds from the clock")
	f.StringVar(&captionCorpusPath, "corpus", "", "captions corpus file (embedded copy when empty)")
	f.BoolVar(&captionShowFallback, "explain", false, "print the fallback level and candidate count")
	captionCmd.AddCommand(captionGenerateCmd)
}

func runCaptionGenerate(cmd *cobra.Command, args []string) error {
	tone := models.Tone(captionTone)
	if !tone.Valid() {
		return fmt.Errorf("unknown tone %q", captionTone)
	}

	records, err := corpus.LoadCaptions(captionCorpusPath)
	if err != nil {
		return err
	}

	seed := captionSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	engine, err := captions.NewEngine(records, captions.WithRand(rand.New(rand.NewSource(seed))))
	if err != nil {
		return err
	}

	if captionShowFallback {
		candidates, level := engine.Candidates(captionNiche, captionCity, tone)
		fmt.Fprintf(cmd.ErrOrStderr(), "match level %s, %d candidates\n", level, len(candidates))
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(engine.Select(captionNiche, captionCity, tone))
}
