// Package preview renders top-down walkmesh previews to images.
package preview

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// setPixel writes one pixel, ignoring coordinates outside the image.
func setPixel(img *image.RGBA, x, y int, c color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}
	img.SetRGBA(x, y, c)
}

// drawLine rasterizes a one-pixel segment with Bresenham's algorithm.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy > 0 {
		dy = -dy
	}

	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	for {
		setPixel(img, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawCircle rasterizes a one-pixel circle outline (midpoint algorithm).
func drawCircle(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	x, y := radius, 0
	err := 1 - radius

	for x >= y {
		setPixel(img, cx+x, cy+y, c)
		setPixel(img, cx+y, cy+x, c)
		setPixel(img, cx-y, cy+x, c)
		setPixel(img, cx-x, cy+y, c)
		setPixel(img, cx-x, cy-y, c)
		setPixel(img, cx-y, cy-x, c)
		setPixel(img, cx+y, cy-x, c)
		setPixel(img, cx+x, cy-y, c)

		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

// drawLabel draws a short text label with the fixed 7x13 bitmap face.
// (x, y) is the baseline start.
func drawLabel(img *image.RGBA, x, y int, s string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
