package detection

import "image"

// Scale maps model-input pixels back to frame pixels
type Scale struct {
	X, Y float32
}

type candidate struct {
	box     image.Rectangle
	score   float32
	classID int
}

// decodeCandidates reads a channel-major [attrs, anchors] tensor where each
// anchor holds (cx, cy, w, h) followed by one score per class, and keeps the
// anchors whose best class score is above minScore.
func decodeCandidates(data []float32, attrs, anchors int, scale Scale, minScore float32) []candidate {
	if attrs <= 4 || len(data) < attrs*anchors {
		return nil
	}

	var out []candidate
	for i := 0; i < anchors; i++ {
		best := float32(0)
		bestClass := 0
		for c := 4; c < attrs; c++ {
			if s := data[c*anchors+i]; s > best {
				best = s
				bestClass = c - 4
			}
		}

		if best <= minScore {
			continue
		}

		cx := data[0*anchors+i]
		cy := data[1*anchors+i]
		w := data[2*anchors+i]
		h := data[3*anchors+i]

		out = append(out, candidate{
			box: image.Rect(
				int((cx-w/2)*scale.X),
				int((cy-h/2)*scale.Y),
				int((cx+w/2)*scale.X),
				int((cy+h/2)*scale.Y),
			),
			score:   best,
			classID: bestClass,
		})
	}
	return out
}
