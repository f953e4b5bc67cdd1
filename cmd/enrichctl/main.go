// enrichctl runs the enrichment engine over captured modality files from the
// command line, without the HTTP service.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"speech-enrichment-service/internal/enrich"
	"speech-enrichment-service/internal/models"
)

var (
	wordsPath      string
	visionPath     string
	prosodyPath    string
	thresholdsPath string
	pretty         bool
)

func main() {
	root := &cobra.Command{
		Use:   "enrichctl",
		Short: "Speech enrichment command line tools",
	}

	enrichCmd := &cobra.Command{
		Use:   "enrich",
		Short: "Enrich a captured transcript with vision and prosody data",
		Long: `Reads word, vision-frame, and prosody-frame JSON captures from disk,
runs the enrichment engine over them, and prints the report to stdout.
Vision and prosody captures are optional; the report degrades accordingly.`,
		RunE: runEnrich,
	}
	enrichCmd.Flags().StringVar(&wordsPath, "words", "", "path to word-timing JSON (required)")
	enrichCmd.Flags().StringVar(&visionPath, "vision", "", "path to vision-frame JSON")
	enrichCmd.Flags().StringVar(&prosodyPath, "prosody", "", "path to prosody-frame JSON")
	enrichCmd.Flags().StringVar(&thresholdsPath, "thresholds", "", "path to threshold overrides YAML")
	enrichCmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	_ = enrichCmd.MarkFlagRequired("words")

	root.AddCommand(enrichCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runEnrich(cmd *cobra.Command, args []string) error {
	var words []models.Word
	if err := readJSON(wordsPath, &words); err != nil {
		return fmt.Errorf("read words: %w", err)
	}

	var visionFrames []models.VisionFrame
	if visionPath != "" {
		if err := readJSON(visionPath, &visionFrames); err != nil {
			return fmt.Errorf("read vision frames: %w", err)
		}
	}

	var prosodyFrames []models.ProsodyFrame
	if prosodyPath != "" {
		if err := readJSON(prosodyPath, &prosodyFrames); err != nil {
			return fmt.Errorf("read prosody frames: %w", err)
		}
	}

	enricher := enrich.NewDefault()
	if thresholdsPath != "" {
		th, err := enrich.LoadThresholds(thresholdsPath)
		if err != nil {
			return fmt.Errorf("load thresholds: %w", err)
		}
		enricher = enrich.New(th, enrich.DefaultLexicon())
	}

	transcript := &models.Transcript{Status: "completed", Words: words}
	result := enricher.Analyze(transcript, visionFrames, prosodyFrames)

	enc := json.NewEncoder(cmd.OutOrStdout())
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}

func readJSON(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(out)
}
