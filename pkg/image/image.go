// Package image provides the flat pixel buffer the rasterizer writes into
// and the texture sampler meshes read from, plus the PPM P3 codec used to
// load textures and save the final render.
package image

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/rasterkit/pkg/math3d"
)

// Image is a row-major pixel buffer, row 0 first.
type Image struct {
	Width, Height int
	Pixels        []math3d.Color
}

// New allocates a zero-initialized image of the given size.
func New(width, height int) *Image {
	return &Image{Width: width, Height: height, Pixels: make([]math3d.Color, width*height)}
}

// At returns the pixel at (x, y).
func (img *Image) At(x, y int) math3d.Color {
	return img.Pixels[y*img.Width+x]
}

// Set writes the pixel at (x, y).
func (img *Image) Set(x, y int, c math3d.Color) {
	img.Pixels[y*img.Width+x] = c
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SampleNearest samples the image at (u, v), u,v normally in [0,1]. v is
// flipped before sampling (v=1 is image row 0, the top; v=0 is the last
// row, the bottom), matching the convention OBJ texcoords are authored
// against.
func (img *Image) SampleNearest(u, v float32) math3d.Color {
	v = 1 - v
	x := clampi(int(math32.Round(u*float32(img.Width-1))), 0, img.Width-1)
	y := clampi(int(math32.Round(v*float32(img.Height-1))), 0, img.Height-1)
	return img.At(x, y)
}

// SampleBilinear samples the image at (u, v) with bilinear filtering, same
// v-flip convention as SampleNearest.
func (img *Image) SampleBilinear(u, v float32) math3d.Color {
	v = 1 - v

	fx := u * float32(img.Width-1)
	fy := v * float32(img.Height-1)

	xLo := clampi(int(math32.Floor(fx)), 0, img.Width-1)
	xHi := clampi(int(math32.Ceil(fx)), 0, img.Width-1)
	yLo := clampi(int(math32.Floor(fy)), 0, img.Height-1)
	yHi := clampi(int(math32.Ceil(fy)), 0, img.Height-1)

	const eps = 1e-6

	tx := fx - float32(xLo)
	denomX := float32(xHi - xLo)
	if denomX > eps {
		tx = (fx - float32(xLo)) / denomX
	} else {
		tx = 0
	}

	ty := fy - float32(yLo)
	denomY := float32(yHi - yLo)
	if denomY > eps {
		ty = (fy - float32(yLo)) / denomY
	} else {
		ty = 0
	}

	c00 := img.At(xLo, yLo).Vec3()
	c10 := img.At(xHi, yLo).Vec3()
	c01 := img.At(xLo, yHi).Vec3()
	c11 := img.At(xHi, yHi).Vec3()

	top := c00.Scale(1 - tx).Add(c10.Scale(tx))
	bottom := c01.Scale(1 - tx).Add(c11.Scale(tx))
	return math3d.ColorFromVec3(top.Scale(1 - ty).Add(bottom.Scale(ty)))
}
