package t2048

// AnimationPhase represents the current phase of animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseSlide
	PhasePop
)

// TileAnimation is one tile moving or popping on screen.
type TileAnimation struct {
	Tile     Tile     // Tile as drawn during the animation
	From     Position // Start cell
	To       Position // End cell
	Progress float64  // 0.0 -> 1.0
}

// animator turns snapshot diffs into a slide phase followed by a pop phase.
// It never looks at the grid; everything comes from Diff output keyed by
// tile id.
type animator struct {
	slideTicks int
	popTicks   int

	phase  AnimationPhase
	ticks  int
	slides []TileAnimation
	pops   []TileAnimation
	hidden map[TileID]bool // Tiles not drawn from the grid during the slide phase
}

func newAnimator(slideTicks, popTicks int) animator {
	return animator{slideTicks: slideTicks, popTicks: popTicks}
}

// start replaces any running animation with one for changes.
func (a *animator) start(changes []Change) {
	a.slides = nil
	a.pops = nil
	a.hidden = make(map[TileID]bool)
	a.ticks = 0

	for _, c := range changes {
		switch c.Kind {
		case ChangeSlide:
			a.slides = append(a.slides, TileAnimation{Tile: c.Old, From: c.From, To: c.To})
			a.hidden[c.ID] = true
		case ChangeIncrement:
			if c.From != c.To {
				a.slides = append(a.slides, TileAnimation{Tile: c.Old, From: c.From, To: c.To})
				a.hidden[c.ID] = true
			}
			a.pops = append(a.pops, TileAnimation{Tile: c.New, From: c.To, To: c.To})
		case ChangeSpawn:
			a.pops = append(a.pops, TileAnimation{Tile: c.New, From: c.To, To: c.To})
			a.hidden[c.ID] = true
		}
	}

	switch {
	case len(a.slides) > 0 && a.slideTicks > 0:
		a.phase = PhaseSlide
	case len(a.pops) > 0 && a.popTicks > 0:
		a.phase = PhasePop
	default:
		a.finish()
	}
}

// update advances one tick. It returns true while an animation is running.
func (a *animator) update() bool {
	if a.phase == PhaseNone {
		return false
	}

	a.ticks++

	duration := a.slideTicks
	anims := a.slides
	if a.phase == PhasePop {
		duration = a.popTicks
		anims = a.pops
	}

	progress := min(float64(a.ticks)/float64(duration), 1.0)
	for i := range anims {
		anims[i].Progress = progress
	}

	if a.ticks < duration {
		return true
	}

	if a.phase == PhaseSlide && len(a.pops) > 0 && a.popTicks > 0 {
		a.phase = PhasePop
		a.ticks = 0
		return true
	}
	a.finish()
	return false
}

func (a *animator) finish() {
	a.phase = PhaseNone
	a.ticks = 0
	a.slides = nil
	a.pops = nil
	a.hidden = nil
}

// active reports whether a slide or pop is in progress.
func (a *animator) active() bool {
	return a.phase != PhaseNone
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}
