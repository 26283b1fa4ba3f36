// Package preview renders top-down walkmesh previews to images.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/image/draw"

	"github.com/whodaresx/ff7-ultima/pkg/field"
)

// Palette for rendered previews.
var (
	backgroundColor = color.RGBA{20, 22, 26, 255}
	surfaceLow      = color.RGBA{36, 66, 50, 255}
	surfaceHigh     = color.RGBA{120, 200, 150, 255}
	edgeColor       = color.RGBA{46, 84, 64, 255}
	blockedColor    = color.RGBA{204, 64, 56, 255}
	gatewayColor    = color.RGBA{255, 176, 48, 255}
	markerColor     = color.RGBA{235, 235, 245, 255}
)

// Options control how a preview is rendered.
type Options struct {
	Scale        float64 // output pixels per walkmesh unit
	Margin       int     // background border around the mesh, in pixels
	ShowGateways bool
	ShowBlocked  bool
	Supersample  bool // render at 2x and downscale for smoother edges
}

// DefaultOptions returns the renderer defaults.
func DefaultOptions() Options {
	return Options{
		Scale:        0.5,
		Margin:       16,
		ShowGateways: true,
		ShowBlocked:  true,
		Supersample:  false,
	}
}

// Renderer draws a walkmesh, its gateways, and optional markers as a
// top-down image. The vertical image axis runs opposite to the mesh's
// y axis, matching how the original fields are viewed.
type Renderer struct {
	mesh     *field.Walkmesh
	gateways []field.Gateway
	markers  []field.Placeable
	bounds   field.Bounds
	opts     Options
}

// NewRenderer builds a renderer over a decoded mesh. gateways may be nil.
func NewRenderer(mesh *field.Walkmesh, gateways []field.Gateway, opts Options) *Renderer {
	if opts.Scale <= 0 {
		opts.Scale = DefaultOptions().Scale
	}
	if opts.Margin < 0 {
		opts.Margin = 0
	}
	return &Renderer{
		mesh:     mesh,
		gateways: gateways,
		bounds:   field.ComputeBounds(mesh),
		opts:     opts,
	}
}

// SetMarkers adds placeables to draw as position markers.
func (r *Renderer) SetMarkers(markers []field.Placeable) {
	r.markers = markers
}

// Render draws the preview and returns the image.
func (r *Renderer) Render() *image.RGBA {
	factor := 1
	if r.opts.Supersample {
		factor = 2
	}

	img := r.renderAt(r.opts.Scale*float64(factor), r.opts.Margin*factor)
	if factor == 1 {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx()/factor, img.Bounds().Dy()/factor))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// WritePNG renders the preview and writes it to path, creating parent
// directories as needed.
func (r *Renderer) WritePNG(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, r.Render()); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}

	return nil
}

// renderAt draws the full preview at the given scale and margin.
func (r *Renderer) renderAt(scale float64, margin int) *image.RGBA {
	b := r.bounds

	w := int(b.Width()*scale) + 2*margin
	h := int(b.Depth()*scale) + 2*margin
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = backgroundColor.R
		img.Pix[i+1] = backgroundColor.G
		img.Pix[i+2] = backgroundColor.B
		img.Pix[i+3] = backgroundColor.A
	}

	if r.mesh.IsEmpty() {
		return img
	}

	// Pixel centers map back into mesh space; the y axis flips here.
	px := func(x float64) int { return margin + int((x-b.MinX)*scale) }
	py := func(y float64) int { return margin + int((b.MaxY-y)*scale) }

	r.fillSurface(img, scale, margin)
	r.drawEdges(img, px, py)
	if r.opts.ShowGateways {
		r.drawGateways(img, px, py)
	}
	r.drawMarkers(img, scale, px, py)

	return img
}

// fillSurface shades every pixel that projects onto the mesh by its
// interpolated elevation.
func (r *Renderer) fillSurface(img *image.RGBA, scale float64, margin int) {
	b := r.bounds
	idx := field.NewGridIndex(r.mesh, 0)
	size := img.Bounds()

	for yPix := 0; yPix < size.Dy(); yPix++ {
		wy := b.MaxY - (float64(yPix)+0.5-float64(margin))/scale
		for xPix := 0; xPix < size.Dx(); xPix++ {
			wx := b.MinX + (float64(xPix)+0.5-float64(margin))/scale
			if tri, z := idx.Locate(wx, wy); tri != field.NoTriangle {
				img.SetRGBA(xPix, yPix, r.surfaceColor(z))
			}
		}
	}
}

// surfaceColor maps an elevation to the low-high surface ramp.
func (r *Renderer) surfaceColor(z int) color.RGBA {
	t := 0.5
	if span := r.bounds.Height(); span > 0 {
		t = (float64(z) - r.bounds.MinZ) / span
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return lerpColor(surfaceLow, surfaceHigh, t)
}

func (r *Renderer) drawEdges(img *image.RGBA, px, py func(float64) int) {
	for i := range r.mesh.Triangles {
		t := &r.mesh.Triangles[i]
		for e := 0; e < 3; e++ {
			v1 := t.Vertices[e]
			v2 := t.Vertices[(e+1)%3]

			c := edgeColor
			if r.opts.ShowBlocked && t.Access[e] == field.Blocked {
				c = blockedColor
			}
			drawLine(img,
				px(float64(v1.X)), py(float64(v1.Y)),
				px(float64(v2.X)), py(float64(v2.Y)), c)
		}
	}
}

func (r *Renderer) drawGateways(img *image.RGBA, px, py func(float64) int) {
	for i := range r.gateways {
		g := &r.gateways[i]
		drawLine(img,
			px(float64(g.V1.X)), py(float64(g.V1.Y)),
			px(float64(g.V2.X)), py(float64(g.V2.Y)), gatewayColor)

		mid := g.Midpoint2D()
		drawLabel(img, px(mid.X)+3, py(mid.Y)-3, strconv.Itoa(int(g.FieldID)), gatewayColor)
	}
}

func (r *Renderer) drawMarkers(img *image.RGBA, scale float64, px, py func(float64) int) {
	for i := range r.markers {
		m := &r.markers[i]
		cx := px(float64(m.X))
		cy := py(float64(m.Y))

		if radius := int(float64(m.Radius) * scale); radius > 1 {
			drawCircle(img, cx, cy, radius, markerColor)
		}
		// Center dot stays visible at any scale.
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				setPixel(img, cx+dx, cy+dy, markerColor)
			}
		}
	}
}

// lerpColor blends a and b channel-wise; t is clamped by the caller.
func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), 255}
}
