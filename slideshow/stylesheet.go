package slideshow

import (
	"fmt"
	"io"
	"strings"
	"time"
)

var mirrorX = strings.NewReplacer(
	"translateX(100%)", "translateX(-100%)",
	"translateX(-100%)", "translateX(100%)",
)

// ClassName is the CSS class carried by a slide animated with t in
// direction d.
func ClassName(t Transition, d Direction) string {
	if d == Backward && t.Animation().Mirror {
		return "hero-" + t.String() + "-rev"
	}
	return "hero-" + t.String()
}

// WriteStylesheet writes keyframes and classes for every transition.
func WriteStylesheet(w io.Writer) error {
	var b strings.Builder
	b.WriteString("/* generated from slideshow transitions */\n")
	for _, t := range Transitions {
		a := t.Animation()
		writeAnimation(&b, ClassName(t, Forward), a.Enter, a.Center, a.Exit)
		if a.Mirror {
			enter, exit := a.Enter, a.Exit
			enter.Transform = mirrorX.Replace(enter.Transform)
			exit.Transform = mirrorX.Replace(exit.Transform)
			writeAnimation(&b, ClassName(t, Backward), enter, a.Center, exit)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Stylesheet returns the generated CSS as a string.
func Stylesheet() string {
	var b strings.Builder
	_ = WriteStylesheet(&b)
	return b.String()
}

func writeAnimation(b *strings.Builder, class string, enter, center, exit Frame) {
	fmt.Fprintf(b, "@keyframes %s-enter {\n  from { %s }\n  to { %s }\n}\n", class, declarations(enter), declarations(center))
	fmt.Fprintf(b, "@keyframes %s-exit {\n  from { %s }\n  to { %s }\n}\n", class, declarations(center), declarations(exit))
	fmt.Fprintf(b, ".%s.is-entering { animation: %s-enter %s %s both; }\n", class, class, seconds(center.Duration), center.Easing)
	fmt.Fprintf(b, ".%s.is-leaving { animation: %s-exit %s %s both; }\n", class, class, seconds(exit.Duration), exit.Easing)
}

func declarations(f Frame) string {
	decls := []string{fmt.Sprintf("opacity: %g;", f.Opacity)}
	if f.Transform != "" {
		decls = append(decls, "transform: "+f.Transform+";")
	}
	if f.ClipPath != "" {
		decls = append(decls, "clip-path: "+f.ClipPath+";")
	}
	return strings.Join(decls, " ")
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%gs", d.Seconds())
}
