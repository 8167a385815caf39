package art

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding

	xdraw "golang.org/x/image/draw"

	"github.com/matzehuels/waifufy/pkg/errors"
)

// defaultCellAspect compensates for monospaced character cells being roughly
// twice as tall as they are wide.
const defaultCellAspect = 0.5

// ImageOptions controls image-to-art conversion.
type ImageOptions struct {
	// Width is the output width in characters. Required (> 0).
	Width int

	// Height is the output height in rows. When 0 it is derived from the
	// image aspect ratio and CellAspect.
	Height int

	// Threshold is the luminance cut in [1, 255]; pixels darker than the
	// threshold become ink. When 0, Otsu's method picks one automatically.
	Threshold int

	// Invert flips ink and empty cells, for light-on-dark images.
	Invert bool

	// On and Off are the output characters. Zero values mean '#' and ' '.
	On, Off byte

	// CellAspect is the width/height ratio of one character cell. Zero
	// means the default of 0.5.
	CellAspect float64
}

// DecodeImage decodes PNG, JPEG, or GIF data.
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "decode image")
	}
	return img, nil
}

// FromImage renders img as binary ASCII art suitable as input to Parse.
// Each output row is Width characters followed by '\n'.
func FromImage(img image.Image, opts ImageOptions) ([]byte, error) {
	if opts.Width <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "image conversion requires a positive width")
	}
	if opts.Threshold < 0 || opts.Threshold > 255 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "threshold %d out of range [0, 255]", opts.Threshold)
	}

	on, off := opts.On, opts.Off
	if on == 0 {
		on = '#'
	}
	if off == 0 {
		off = ' '
	}
	aspect := opts.CellAspect
	if aspect == 0 {
		aspect = defaultCellAspect
	}

	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return nil, errors.New(errors.ErrCodeInvalidImage, "image has empty bounds")
	}

	w := opts.Width
	h := opts.Height
	if h <= 0 {
		h = int(float64(srcH)/float64(srcW)*float64(w)*aspect + 0.5)
		if h < 1 {
			h = 1
		}
	}

	// Downscale to one gray pixel per character cell. CatmullRom averages
	// over the source footprint, which doubles as the per-cell mean.
	cellGray := image.NewGray(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(cellGray, cellGray.Bounds(), img, bounds, xdraw.Src, nil)

	threshold := uint8(opts.Threshold)
	if opts.Threshold == 0 {
		threshold = otsuThreshold(cellGray.Pix)
	}

	var out bytes.Buffer
	out.Grow((w + 1) * h)
	for y := 0; y < h; y++ {
		rowStart := y * cellGray.Stride
		for x := 0; x < w; x++ {
			ink := cellGray.Pix[rowStart+x] < threshold
			if opts.Invert {
				ink = !ink
			}
			if ink {
				out.WriteByte(on)
			} else {
				out.WriteByte(off)
			}
		}
		out.WriteByte('\n')
	}
	return out.Bytes(), nil
}

// otsuThreshold picks the luminance cut that minimizes intra-class variance
// over the pixel histogram. Returns 128 for degenerate (flat) histograms.
func otsuThreshold(pix []uint8) uint8 {
	var hist [256]int
	for _, p := range pix {
		hist[p]++
	}
	total := len(pix)
	if total == 0 {
		return 128
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var sumB, wB float64
	bestVar := -1.0
	best := 128
	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > bestVar {
			bestVar = between
			best = t
		}
	}
	if bestVar < 0 {
		return 128
	}
	if best >= 255 {
		best = 254
	}
	// Pixels strictly below the cut are ink; +1 so the found class boundary
	// itself lands on the dark side.
	return uint8(best + 1)
}

// Describe returns a short human-readable summary of the conversion options.
func (o ImageOptions) Describe() string {
	th := "otsu"
	if o.Threshold > 0 {
		th = fmt.Sprintf("%d", o.Threshold)
	}
	return fmt.Sprintf("w=%d h=%d threshold=%s invert=%t", o.Width, o.Height, th, o.Invert)
}
