package domain

import "fmt"

// TimeNotReported is the time value of an estimate whose per-image runtime
// was not provided by the method.
const TimeNotReported = -1.0

// Pose is the rigid transformation reported for one object instance.
// R is stored row-major, T is in millimetres.
type Pose struct {
	R [9]float64
	T [3]float64
}

// EstimationRecord is one pose estimate of a result submission.
type EstimationRecord struct {
	SceneID int
	ImID    int
	ObjID   int
	Score   float64
	Pose    Pose
	// Time is the wall time in seconds spent on all estimates of the image.
	Time float64
}

// ImageKey identifies a test image within a dataset split.
type ImageKey struct {
	SceneID int
	ImID    int
}

func (e EstimationRecord) Image() ImageKey {
	return ImageKey{SceneID: e.SceneID, ImID: e.ImID}
}

func (k ImageKey) String() string {
	return fmt.Sprintf("%06d_%06d", k.SceneID, k.ImID)
}

// Less orders image keys by scene and then by image id.
func (k ImageKey) Less(o ImageKey) bool {
	if k.SceneID != o.SceneID {
		return k.SceneID < o.SceneID
	}
	return k.ImID < o.ImID
}
