package overlay

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Recorder writes the rendered screen to PNG files: a numbered frame
// sequence while recording is on, plus labeled screenshots on request.
// Call Capture at the end of the game's Draw, after Overlay.Draw, so the
// recording indicator appears in the frames.
type Recorder struct {
	// Dir receives the files. It is created on first write.
	Dir string
	// Warnings receives "[overlay]" diagnostics; nil means os.Stderr.
	Warnings io.Writer

	queue  []string
	frame  int
	stamp  string
	now    func() time.Time
	pixels []byte
}

// NewRecorder returns a recorder writing into dir.
func NewRecorder(dir string) *Recorder {
	return &Recorder{Dir: dir, now: time.Now}
}

// Screenshot queues a labeled screenshot for the next Capture.
func (r *Recorder) Screenshot(label string) {
	r.queue = append(r.queue, label)
}

// Frames returns the number of recorded frames in the current session.
func (r *Recorder) Frames() int {
	return r.frame
}

// Capture writes the frame when recording is on, then every queued
// screenshot. A new recording session starts each time recording turns on
// after being off. Failures are reported on Warnings and returned joined;
// the queue is cleared either way.
func (r *Recorder) Capture(screen *ebiten.Image, recording bool) error {
	if !recording {
		r.stamp = ""
	}
	if !recording && len(r.queue) == 0 {
		return nil
	}
	defer func() { r.queue = r.queue[:0] }()

	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return r.warn(fmt.Errorf("mkdir %s: %w", r.Dir, err))
	}

	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if cap(r.pixels) < 4*w*h {
		r.pixels = make([]byte, 4*w*h)
	}
	r.pixels = r.pixels[:4*w*h]
	screen.ReadPixels(r.pixels)
	img := unpremultiply(r.pixels, w, h)

	stamp := r.now().Format("20060102_150405")
	var errs []error

	if recording {
		if r.stamp == "" {
			r.stamp = stamp
			r.frame = 0
		}
		path := filepath.Join(r.Dir, fmt.Sprintf("rec_%s_%05d.png", r.stamp, r.frame))
		r.frame++
		if err := writePNG(path, img); err != nil {
			errs = append(errs, r.warn(err))
		}
	}

	for _, label := range r.queue {
		path := filepath.Join(r.Dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			errs = append(errs, r.warn(err))
		}
	}
	return errors.Join(errs...)
}

func (r *Recorder) warn(err error) error {
	w := r.Warnings
	if w == nil {
		w = os.Stderr
	}
	_, _ = fmt.Fprintf(w, "[overlay] recorder: %v\n", err)
	return err
}

// unpremultiply converts premultiplied RGBA pixels to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// writePNG encodes an image to a PNG file at the given path.
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

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
