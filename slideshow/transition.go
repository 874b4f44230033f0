package slideshow

import (
	"fmt"
	"time"
)

// Transition is the visual effect used when moving between slides.
type Transition int

const (
	TransitionSlide Transition = iota
	TransitionZoom
	TransitionFadeRotate
	TransitionMorph
	TransitionWipe
)

// Transitions lists every transition in cycling order.
var Transitions = []Transition{
	TransitionSlide,
	TransitionZoom,
	TransitionFadeRotate,
	TransitionMorph,
	TransitionWipe,
}

func (t Transition) Next() Transition {
	return Transitions[(int(t)+1)%len(Transitions)]
}

func (t Transition) String() string {
	switch t {
	case TransitionSlide:
		return "slide"
	case TransitionZoom:
		return "zoom"
	case TransitionFadeRotate:
		return "fade-rotate"
	case TransitionMorph:
		return "morph"
	case TransitionWipe:
		return "wipe"
	}
	return fmt.Sprintf("transition(%d)", int(t))
}

func (t Transition) MarshalText() ([]byte, error) {
	if t < TransitionSlide || t > TransitionWipe {
		return nil, fmt.Errorf("unknown transition %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Transition) UnmarshalText(b []byte) error {
	for _, tr := range Transitions {
		if tr.String() == string(b) {
			*t = tr
			return nil
		}
	}
	return fmt.Errorf("unknown transition %q", string(b))
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	switch string(b) {
	case "forward":
		*d = Forward
	case "backward":
		*d = Backward
	default:
		return fmt.Errorf("unknown direction %q", string(b))
	}
	return nil
}

// Frame is one pose of a slide: the styles it is animated to and how long
// the move takes.
type Frame struct {
	Opacity   float64
	Transform string
	ClipPath  string
	Duration  time.Duration
	Easing    string
}

// Animation holds the three poses of a slide: entering, settled, leaving.
// Enter and Exit are expressed for a forward move; Mirror flips them for
// backward moves on transitions with a horizontal component.
type Animation struct {
	Enter  Frame
	Center Frame
	Exit   Frame
	Mirror bool
}

// Animation returns the keyframes of t.
func (t Transition) Animation() Animation {
	switch t {
	case TransitionSlide:
		return Animation{
			Enter:  Frame{Opacity: 0, Transform: "translateX(100%) scale(1.1)"},
			Center: Frame{Opacity: 1, Transform: "translateX(0) scale(1)", Duration: 1500 * time.Millisecond, Easing: "cubic-bezier(0.22, 1, 0.36, 1)"},
			Exit:   Frame{Opacity: 0, Transform: "translateX(-100%) scale(0.95)", Duration: 800 * time.Millisecond, Easing: "cubic-bezier(0.22, 1, 0.36, 1)"},
			Mirror: true,
		}
	case TransitionZoom:
		return Animation{
			Enter:  Frame{Opacity: 0, Transform: "scale(1.3)"},
			Center: Frame{Opacity: 1, Transform: "scale(1)", Duration: 1500 * time.Millisecond, Easing: "ease-out"},
			Exit:   Frame{Opacity: 0, Transform: "scale(0.8)", Duration: 800 * time.Millisecond, Easing: "ease"},
		}
	case TransitionFadeRotate:
		return Animation{
			Enter:  Frame{Opacity: 0, Transform: "rotate(-3deg) scale(1.1)"},
			Center: Frame{Opacity: 1, Transform: "rotate(0deg) scale(1)", Duration: 1500 * time.Millisecond, Easing: "ease-out"},
			Exit:   Frame{Opacity: 0, Transform: "rotate(3deg) scale(1.05)", Duration: 800 * time.Millisecond, Easing: "ease"},
		}
	case TransitionMorph:
		return Animation{
			Enter:  Frame{Opacity: 0, ClipPath: "circle(0% at 50% 50%)"},
			Center: Frame{Opacity: 1, ClipPath: "circle(150% at 50% 50%)", Duration: 1500 * time.Millisecond, Easing: "ease-out"},
			Exit:   Frame{Opacity: 0, ClipPath: "circle(0% at 50% 50%)", Duration: time.Second, Easing: "ease"},
		}
	case TransitionWipe:
		return Animation{
			Enter:  Frame{Opacity: 0, ClipPath: "inset(0 100% 0 0)"},
			Center: Frame{Opacity: 1, ClipPath: "inset(0 0% 0 0)", Duration: 1200 * time.Millisecond, Easing: "ease-in-out"},
			Exit:   Frame{Opacity: 0, ClipPath: "inset(0 0 0 100%)", Duration: time.Second, Easing: "ease"},
		}
	}
	panic(fmt.Sprintf("slideshow: no animation for %v", t))
}
