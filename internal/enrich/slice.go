package enrich

import "speech-enrichment-service/internal/models"

// SliceForWord selects the vision and prosody frames whose timestamp falls
// inside the word's span. The inclusion test is closed-interval: a frame at
// exactly word.Start or word.End belongs to this word, and a frame on a
// shared boundary may also belong to the neighboring word. No interpolation,
// no deduplication. Empty inputs yield empty subsets.
func SliceForWord(word models.Word, vision []models.VisionFrame, prosody []models.ProsodyFrame) ([]models.VisionFrame, []models.ProsodyFrame) {
	var wordVision []models.VisionFrame
	for _, f := range vision {
		if word.Start <= f.Timestamp && f.Timestamp <= word.End {
			wordVision = append(wordVision, f)
		}
	}

	var wordProsody []models.ProsodyFrame
	for _, p := range prosody {
		if word.Start <= p.Timestamp && p.Timestamp <= word.End {
			wordProsody = append(wordProsody, p)
		}
	}

	return wordVision, wordProsody
}
