// Package preview draws a schematic of a kinematic tree: joint anchors in an
// isometric view, parent to child segments, joint axes and link labels.
package preview

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"mobility-urdf/internal/kinematics"
)

// Options control preview rendering.
type Options struct {
	Size        int // output edge in pixels
	Supersample int // render at Size*Supersample, then downsample
	Labels      bool
}

var (
	edgeColor  = color.NRGBA{90, 90, 90, 255}
	labelColor = color.NRGBA{20, 20, 20, 255}

	jointColors = map[kinematics.JointType]color.NRGBA{
		kinematics.Fixed:      {128, 128, 128, 255},
		kinematics.Revolute:   {230, 120, 30, 255},
		kinematics.Continuous: {150, 70, 200, 255},
		kinematics.Prismatic:  {30, 150, 140, 255},
	}
)

// Render draws t onto a transparent Size x Size canvas.
func Render(t *kinematics.Tree, opts Options) *image.NRGBA {
	if opts.Size <= 0 {
		opts.Size = 256
	}
	if opts.Supersample <= 0 {
		opts.Supersample = 1
	}
	ss := float64(opts.Supersample)
	canvas := opts.Size * opts.Supersample
	img := image.NewNRGBA(image.Rect(0, 0, canvas, canvas))

	pts := layout(t, canvas)
	stroke := float32(2 * ss)
	tick := float64(canvas) * 0.08

	for _, j := range t.Joints {
		a, b := pts[j.Parent], pts[j.Child]
		strokeLine(img, a, b, stroke, edgeColor)
	}
	for _, j := range t.Joints {
		c := jointColors[j.Joint.Type]
		at := pts[j.Child]
		if j.Joint.Type != kinematics.Fixed {
			d := projectDir(j.Joint.Axis)
			end := point{at.x + d.x*tick, at.y + d.y*tick}
			strokeLine(img, at, end, stroke, c)
		}
		fillDisk(img, at, 4*ss, c)
	}
	fillDisk(img, pts[kinematics.BaseLink], 5*ss, jointColors[kinematics.Fixed])

	if opts.Supersample > 1 {
		img = Downsample(img, opts.Size)
	}
	if opts.Labels {
		for _, l := range t.Links {
			if l.Connector {
				continue
			}
			p := pts[l.Name]
			drawLabel(img, l.Name, p.x/ss+6, p.y/ss-6)
		}
	}
	return img
}

func strokeLine(dst *image.NRGBA, a, b point, width float32, c color.NRGBA) {
	dx, dy := b.x-a.x, b.y-a.y
	l := math.Hypot(dx, dy)
	if l < 1e-6 {
		return
	}
	nx := float32(-dy / l * float64(width) / 2)
	ny := float32(dx / l * float64(width) / 2)

	b0 := dst.Bounds()
	z := vector.NewRasterizer(b0.Dx(), b0.Dy())
	z.MoveTo(float32(a.x)+nx, float32(a.y)+ny)
	z.LineTo(float32(b.x)+nx, float32(b.y)+ny)
	z.LineTo(float32(b.x)-nx, float32(b.y)-ny)
	z.LineTo(float32(a.x)-nx, float32(a.y)-ny)
	z.ClosePath()
	z.Draw(dst, b0, image.NewUniform(c), image.Point{})
}

// fillDisk draws a 16-gon.
func fillDisk(dst *image.NRGBA, at point, r float64, c color.NRGBA) {
	const segments = 16
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		x, y := float32(at.x+r*math.Cos(a)), float32(at.y+r*math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

func drawLabel(dst *image.NRGBA, text string, x, y float64) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(text)
}
