package shape

// Tally counts the labels of a single frame. It is rebuilt every frame.
type Tally struct {
	Squares int
	Circles int
}

// Count tallies a frame's labels.
func Count(shapes []Shape) Tally {
	var t Tally
	for _, s := range shapes {
		t.Add(s)
	}
	return t
}

// Add records one label.
func (t *Tally) Add(s Shape) {
	if s == Square {
		t.Squares++
		return
	}
	t.Circles++
}

// Total returns the number of labelled regions.
func (t Tally) Total() int {
	return t.Squares + t.Circles
}

// Decision is the dominant shape of a frame.
type Decision int

const (
	None Decision = iota
	CircleDominant
	SquareDominant
)

func (d Decision) String() string {
	switch d {
	case CircleDominant:
		return "circle"
	case SquareDominant:
		return "square"
	default:
		return "none"
	}
}

// TiePolicy decides what a frame with equal counts reports.
type TiePolicy int

const (
	// TieFavorsCircle reports CircleDominant on a tie, including empty frames.
	TieFavorsCircle TiePolicy = iota
	// TieUnlabeled reports None on a tie.
	TieUnlabeled
)

// Decide returns the majority decision under the given tie policy.
func (t Tally) Decide(p TiePolicy) Decision {
	switch {
	case t.Squares > t.Circles:
		return SquareDominant
	case t.Circles > t.Squares:
		return CircleDominant
	case p == TieFavorsCircle:
		return CircleDominant
	default:
		return None
	}
}

// Label is the overlay text for a decision. The two policies keep the
// wording of their respective displays.
func (d Decision) Label(p TiePolicy) string {
	if p == TieFavorsCircle {
		if d == SquareDominant {
			return "Squared leds"
		}
		return "Circular leds"
	}
	switch d {
	case SquareDominant:
		return "Squared LEDs"
	case CircleDominant:
		return "Circular LEDs"
	default:
		return ""
	}
}
