package image

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/taigrr/rasterkit/pkg/math3d"
	"github.com/taigrr/rasterkit/pkg/rkerr"
)

// LoadPPM reads a PPM P3 (ASCII) image from path.
func LoadPPM(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, rkerr.Wrap(rkerr.IoFailure, err, "opening %s", path)
	}
	defer f.Close()
	return DecodePPM(f)
}

// DecodePPM reads a PPM P3 image from r. Unlike the original loader this
// one is line-agnostic about width: it treats the body as a flat stream of
// whitespace-separated integers, which is both what the P3 format actually
// guarantees and what SavePPM's pixel-per-line output satisfies.
func DecodePPM(r io.Reader) (*Image, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	next := func() (string, bool) {
		if sc.Scan() {
			return sc.Text(), true
		}
		return "", false
	}

	magic, ok := next()
	if !ok {
		return nil, rkerr.New(rkerr.ParseFailure, "empty PPM file")
	}
	if magic != "P3" {
		return nil, rkerr.New(rkerr.ParseFailure, "not a P3 PPM file (magic %q)", magic)
	}

	widthStr, ok := next()
	if !ok {
		return nil, rkerr.New(rkerr.ParseFailure, "missing width in PPM header")
	}
	heightStr, ok := next()
	if !ok {
		return nil, rkerr.New(rkerr.ParseFailure, "missing height in PPM header")
	}
	maxStr, ok := next()
	if !ok {
		return nil, rkerr.New(rkerr.ParseFailure, "missing max value in PPM header")
	}

	width, err := strconv.Atoi(widthStr)
	if err != nil {
		return nil, rkerr.Wrap(rkerr.ParseFailure, err, "parsing PPM width %q", widthStr)
	}
	height, err := strconv.Atoi(heightStr)
	if err != nil {
		return nil, rkerr.Wrap(rkerr.ParseFailure, err, "parsing PPM height %q", heightStr)
	}
	maxValue, err := strconv.Atoi(maxStr)
	if err != nil {
		return nil, rkerr.Wrap(rkerr.ParseFailure, err, "parsing PPM max value %q", maxStr)
	}
	if width <= 0 || height <= 0 {
		return nil, rkerr.New(rkerr.SchemaViolation, "PPM dimensions must be positive, got %dx%d", width, height)
	}
	if maxValue <= 0 {
		return nil, rkerr.New(rkerr.SchemaViolation, "PPM max value must be positive, got %d", maxValue)
	}

	img := New(width, height)
	readChannel := func() (uint8, error) {
		tok, ok := next()
		if !ok {
			return 0, rkerr.New(rkerr.ParseFailure, "PPM file ended while reading pixel data")
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return 0, rkerr.Wrap(rkerr.ParseFailure, err, "parsing PPM channel %q", tok)
		}
		if v < 0 || v > maxValue {
			return 0, rkerr.New(rkerr.SchemaViolation, "PPM channel value %d out of range [0,%d]", v, maxValue)
		}
		return uint8((v * 255) / maxValue), nil
	}

	for i := range img.Pixels {
		r, err := readChannel()
		if err != nil {
			return nil, err
		}
		g, err := readChannel()
		if err != nil {
			return nil, err
		}
		b, err := readChannel()
		if err != nil {
			return nil, err
		}
		img.Pixels[i] = math3d.Color{R: r, G: g, B: b}
	}

	return img, nil
}

// SavePPM writes the image to path in PPM P3 format.
func (img *Image) SavePPM(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return rkerr.Wrap(rkerr.IoFailure, err, "creating %s", path)
	}
	defer f.Close()
	if err := img.EncodePPM(f); err != nil {
		return err
	}
	return nil
}

// EncodePPM writes the image to w in PPM P3 format: a three-line ASCII
// header ("P3", "<W> <H>", "255"), followed by one "<r> <g> <b>" line per
// pixel in row-major order.
func (img *Image) EncodePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	var sb strings.Builder
	fmt.Fprintf(&sb, "P3\n%d %d\n255\n", img.Width, img.Height)
	for _, p := range img.Pixels {
		fmt.Fprintf(&sb, "%d %d %d\n", p.R, p.G, p.B)
	}
	if _, err := bw.WriteString(sb.String()); err != nil {
		return rkerr.Wrap(rkerr.IoFailure, err, "writing PPM body")
	}
	return bw.Flush()
}
