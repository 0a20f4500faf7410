package view

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Shooter queues labeled screenshots and writes them as PNG files when the
// frame is flushed. It satisfies threatscope.Screenshotter.
type Shooter struct {
	Dir   string
	queue []string
	now   func() time.Time
}

// NewShooter returns a Shooter writing into dir.
func NewShooter(dir string) *Shooter {
	return &Shooter{Dir: dir, now: time.Now}
}

// Screenshot queues a capture of the next flushed frame.
func (s *Shooter) Screenshot(label string) {
	s.queue = append(s.queue, label)
}

// Pending returns the number of queued captures.
func (s *Shooter) Pending() int {
	return len(s.queue)
}

// Flush captures screen once for every queued label. Call it at the end of
// Draw. Write failures are reported on stderr and dropped.
func (s *Shooter) Flush(screen *ebiten.Image) {
	if len(s.queue) == 0 {
		return
	}
	defer func() { s.queue = s.queue[:0] }()

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[threatscope] screenshot: mkdir %s: %v\n", s.Dir, err)
		return
	}

	bounds := screen.Bounds()
	pixels := make([]byte, 4*bounds.Dx()*bounds.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, bounds.Dx(), bounds.Dy())

	stamp := s.now().Format("20060102_150405")
	for _, label := range s.queue {
		path := filepath.Join(s.Dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[threatscope] screenshot: %v\n", err)
		}
	}
}

// unpremultiply converts ebiten's premultiplied RGBA pixels to NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		copy(img.Pix[i:i+4], []byte{r, g, b, a})
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps ASCII letters, digits, '-' and '.'; everything else
// becomes '_'. Empty labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
