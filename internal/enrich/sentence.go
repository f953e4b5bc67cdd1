package enrich

import "speech-enrichment-service/internal/models"

// Pattern detection cutoffs. Ratio rules are normalized by word count;
// count rules are absolute.
const (
	frequentDisfluencyMin = 3
	someDisfluencyRatio   = 0.3
	highGestureRatio      = 0.5
	moderateGestureRatio  = 0.4
	minimalGestureRatio   = 0.6
	lowEnergyRatio        = 0.4
	confidentAvgMin       = 70
	uncertainAvgMax       = 40
	emphaticRatio         = 0.4
	rapidRatio            = 0.5
	deliberateRatio       = 0.5
	frequentPauseMin      = 3
	passionateRatio       = 0.3
	animatedRatio         = 0.3
	uncertaintyMin        = 2

	fluencyDisfluencyPenalty = 15
	fluencyPausePenalty      = 5
)

// AnalyzeSentencePatterns computes utterance-level statistics and behavioral
// patterns over the enriched-word sequence. A pure function: an empty input
// yields a zero-valued analysis, never an error.
func AnalyzeSentencePatterns(words []models.EnrichedWord) models.SentenceAnalysis {
	if len(words) == 0 {
		return models.SentenceAnalysis{
			TagDistribution: map[models.Tag]int{},
			Patterns:        []models.Pattern{},
		}
	}

	n := len(words)
	nf := float64(n)

	confidenceSum := 0
	tagCounts := make(map[models.Tag]int)
	for _, w := range words {
		confidenceSum += w.ConfidenceScore
		for _, tag := range w.Tags {
			tagCounts[tag]++
		}
	}
	avgConfidence := float64(confidenceSum) / nf

	patterns := []models.Pattern{}

	disfluencyCount := tagCounts[models.TagHesitation] +
		tagCounts[models.TagFillerWord] +
		tagCounts[models.TagStutter] +
		tagCounts[models.TagFalseStart]

	if disfluencyCount >= frequentDisfluencyMin {
		patterns = append(patterns, models.PatternFrequentDisfluencies)
	} else if float64(disfluencyCount) >= nf*someDisfluencyRatio {
		patterns = append(patterns, models.PatternSomeDisfluencies)
	}

	if float64(tagCounts[models.TagHighGestureEnergy]) >= nf*highGestureRatio {
		patterns = append(patterns, models.PatternHighlyAnimated)
	} else if float64(tagCounts[models.TagModerateGesture]) >= nf*moderateGestureRatio {
		patterns = append(patterns, models.PatternModeratelyAnimated)
	}

	if float64(tagCounts[models.TagStaticHands]) >= nf*minimalGestureRatio {
		patterns = append(patterns, models.PatternMinimalGesture)
	}

	if float64(tagCounts[models.TagLowEnergy]) >= nf*lowEnergyRatio {
		patterns = append(patterns, models.PatternLowEnergyDelivery)
	}

	if avgConfidence >= confidentAvgMin {
		patterns = append(patterns, models.PatternConfidentDelivery)
	} else if avgConfidence <= uncertainAvgMax {
		patterns = append(patterns, models.PatternUncertainDelivery)
	}

	emphasisCount := tagCounts[models.TagStrongVocalEmphasis] + tagCounts[models.TagVocalEmphasis]
	if float64(emphasisCount) >= nf*emphaticRatio {
		patterns = append(patterns, models.PatternEmphaticSpeech)
	}

	fastCount := tagCounts[models.TagVeryFast] + tagCounts[models.TagFastPaced]
	slowCount := tagCounts[models.TagVerySlow] + tagCounts[models.TagSlowDeliberate]
	if float64(fastCount) >= nf*rapidRatio {
		patterns = append(patterns, models.PatternRapidSpeech)
	} else if float64(slowCount) >= nf*deliberateRatio {
		patterns = append(patterns, models.PatternDeliberateSpeech)
	}

	pauseCount := tagCounts[models.TagLongPauseBefore] + tagCounts[models.TagVeryLongPauseBefore]
	if pauseCount >= frequentPauseMin {
		patterns = append(patterns, models.PatternFrequentPauses)
	}

	if float64(tagCounts[models.TagPassionate]) >= nf*passionateRatio {
		patterns = append(patterns, models.PatternPassionateDelivery)
	}
	if float64(tagCounts[models.TagAnimated]) >= nf*animatedRatio {
		patterns = append(patterns, models.PatternAnimatedDelivery)
	}

	if tagCounts[models.TagUncertaintyMarker] >= uncertaintyMin {
		patterns = append(patterns, models.PatternShowsUncertainty)
	}

	fluency := 100 - disfluencyCount*fluencyDisfluencyPenalty - pauseCount*fluencyPausePenalty
	if fluency < 0 {
		fluency = 0
	}

	totalDuration := words[n-1].End - words[0].Start
	speakingRate := 0.0
	if totalDuration > 0 {
		speakingRate = nf / totalDuration
	}

	return models.SentenceAnalysis{
		AvgConfidence:   roundTo(avgConfidence, 1),
		FluencyScore:    fluency,
		DisfluencyCount: disfluencyCount,
		SpeakingRate:    roundTo(speakingRate, 2),
		TagDistribution: tagCounts,
		Patterns:        patterns,
		WordCount:       n,
		TotalDuration:   roundTo(totalDuration, 2),
	}
}
