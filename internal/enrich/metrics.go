package enrich

import (
	"math"

	"speech-enrichment-service/internal/models"
)

// WristVelocity reduces a word's vision-frame slice to a single gesture
// proxy: the average planar displacement of the wrist landmarks between
// consecutive frames. Displacement is averaged over both wrists; the Z axis
// is ignored (a 2-D proxy avoids amplifying depth noise). Frame pairs where
// either frame has no pose, or either wrist is missing from either frame,
// are skipped. Returns 0 when fewer than 2 frames or no valid pair exists.
func WristVelocity(frames []models.VisionFrame) float64 {
	if len(frames) < 2 {
		return 0
	}

	totalMovement := 0.0
	pairCount := 0

	for i := 1; i < len(frames); i++ {
		prevPoses := frames[i-1].Poses
		currPoses := frames[i].Poses
		if len(prevPoses) == 0 || len(currPoses) == 0 {
			continue
		}

		prev := prevPoses[0]
		curr := currPoses[0]

		prevLW, okPL := prev.Landmark(models.LandmarkLeftWrist)
		prevRW, okPR := prev.Landmark(models.LandmarkRightWrist)
		currLW, okCL := curr.Landmark(models.LandmarkLeftWrist)
		currRW, okCR := curr.Landmark(models.LandmarkRightWrist)
		if !okPL || !okPR || !okCL || !okCR {
			continue
		}

		lDist := math.Hypot(currLW.X-prevLW.X, currLW.Y-prevLW.Y)
		rDist := math.Hypot(currRW.X-prevRW.X, currRW.Y-prevRW.Y)

		totalMovement += (lDist + rDist) / 2
		pairCount++
	}

	if pairCount == 0 {
		return 0
	}
	return totalMovement / float64(pairCount)
}

// ProsodyAverages reduces a word's prosody-frame slice to mean intensity and
// mean pitch. Pitch samples outside the plausible human band are discarded
// before averaging; this rejects octave errors and silence artifacts from
// the tracker. Either mean is 0 when no samples qualify.
func ProsodyAverages(frames []models.ProsodyFrame, th Thresholds) (avgIntensity, avgPitch float64) {
	if len(frames) == 0 {
		return 0, 0
	}

	intensitySum := 0.0
	intensityN := 0
	pitchSum := 0.0
	pitchN := 0

	for _, p := range frames {
		intensitySum += p.Intensity
		intensityN++
		if p.Pitch != nil && th.PlausiblePitchLo < *p.Pitch && *p.Pitch < th.PlausiblePitchHi {
			pitchSum += *p.Pitch
			pitchN++
		}
	}

	if intensityN > 0 {
		avgIntensity = intensitySum / float64(intensityN)
	}
	if pitchN > 0 {
		avgPitch = pitchSum / float64(pitchN)
	}
	return avgIntensity, avgPitch
}

// roundTo rounds v to the given number of decimal places. Metrics are
// rounded before tagging so the report and the heuristics see the same
// numbers.
func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// mean returns the arithmetic mean of xs, 0 for an empty slice.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stddev returns the population standard deviation of xs.
func stddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	variance := 0.0
	for _, x := range xs {
		d := x - m
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(xs)))
}
