package models

// Pose landmark identifiers, matching the pose-landmarker numbering used by
// the vision provider. Only the wrists are consumed by the enrichment core.
const (
	LandmarkLeftWrist  = 15
	LandmarkRightWrist = 16
)

// Landmark is a single named 3-D body point with a visibility estimate.
type Landmark struct {
	ID         int     `json:"id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// Pose is the set of landmarks detected for one body in one frame.
type Pose []Landmark

// Landmark returns the landmark with the given ID, if present.
func (p Pose) Landmark(id int) (Landmark, bool) {
	for _, lm := range p {
		if lm.ID == id {
			return lm, true
		}
	}
	return Landmark{}, false
}

// VisionFrame is one sampled video frame with zero or more detected poses.
type VisionFrame struct {
	Timestamp float64 `json:"timestamp"`
	Poses     []Pose  `json:"poses"`
}

// ProsodyFrame is one sampled audio frame. Pitch is nil when the frame is
// unvoiced or the tracker produced no estimate; Intensity is a non-negative
// RMS loudness proxy.
type ProsodyFrame struct {
	Timestamp float64  `json:"timestamp"`
	Pitch     *float64 `json:"pitch"`
	Intensity float64  `json:"intensity"`
}
