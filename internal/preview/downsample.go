package preview

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample scales img to size x size with premultiplied alpha so
// antialiased edges over transparency keep their color.
func Downsample(img *image.NRGBA, size int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= size && b.Dy() <= size {
		return img
	}

	premul := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := premul.PixOffset(x, y)
			a := uint32(img.Pix[si+3])
			premul.Pix[di] = uint8((uint32(img.Pix[si])*a + 127) / 255)
			premul.Pix[di+1] = uint8((uint32(img.Pix[si+1])*a + 127) / 255)
			premul.Pix[di+2] = uint8((uint32(img.Pix[si+2])*a + 127) / 255)
			premul.Pix[di+3] = img.Pix[si+3]
		}
	}

	// CatmullRom approximates Lanczos
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	out := image.NewNRGBA(dst.Bounds())
	for i := 0; i < len(dst.Pix); i += 4 {
		a := dst.Pix[i+3]
		if a > 1 {
			inv := 255.0 / float64(a)
			out.Pix[i] = clamp8(float64(dst.Pix[i]) * inv)
			out.Pix[i+1] = clamp8(float64(dst.Pix[i+1]) * inv)
			out.Pix[i+2] = clamp8(float64(dst.Pix[i+2]) * inv)
		}
		out.Pix[i+3] = a
	}
	return out
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
