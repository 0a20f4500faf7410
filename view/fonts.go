// Package view draws threatscope state with Ebitengine: the scenario canvas,
// buttons, tab strip and expandable card lists. It holds no scenario logic;
// every click is forwarded to an Engine or a Registry by explicit id.
package view

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Fonts holds the regular and bold faces used by the viewer. The Go fonts
// cover Latin and Cyrillic.
type Fonts struct {
	Regular *text.GoTextFaceSource
	Bold    *text.GoTextFaceSource
}

// LoadFonts parses the embedded Go fonts.
func LoadFonts() (*Fonts, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	return &Fonts{Regular: regular, Bold: bold}, nil
}

// Face returns a regular face of the given size.
func (f *Fonts) Face(size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: f.Regular, Size: size}
}

// BoldFace returns a bold face of the given size.
func (f *Fonts) BoldFace(size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: f.Bold, Size: size}
}

// Wrap splits s into lines no wider than maxW when drawn with face. Words
// longer than maxW get a line of their own. Explicit newlines are kept.
func Wrap(s string, face text.Face, maxW float64) []string {
	var out []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if width, _ := text.Measure(candidate, face, 0); width > maxW {
				out = append(out, line)
				line = w
				continue
			}
			line = candidate
		}
		out = append(out, line)
	}
	return out
}
