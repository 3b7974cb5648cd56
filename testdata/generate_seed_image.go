//go:build ignore

// Seed image generator for trying --from-image.
//
//	go run testdata/generate_seed_image.go
//	tintscale generate --from-image testdata/seed.png
package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

func main() {
	const size = 240
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	// A logo-like image: mostly off-white, a large teal mark and a small
	// orange accent. The teal cluster should seed the hue.
	paper := color.RGBA{R: 246, G: 245, B: 240, A: 255}
	teal := color.RGBA{R: 20, G: 140, B: 150, A: 255}
	accent := color.RGBA{R: 240, G: 130, B: 30, A: 255}

	for y := range size {
		for x := range size {
			c := paper
			dx, dy := x-size/2, y-size/2
			switch {
			case dx*dx+dy*dy < 80*80:
				c = teal
			case x > size-40 && y > size-40:
				c = accent
			}
			img.Set(x, y, c)
		}
	}

	file, err := os.Create("testdata/seed.png")
	if err != nil {
		panic(err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		panic(err)
	}

	println("Seed image created: testdata/seed.png")
}
