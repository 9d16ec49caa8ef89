package texture

import (
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/terraview/terraview/common"
)

// fillRows evaluates a pure per-pixel function over the image in row-parallel
// chunks. Output is identical to a sequential fill; only wall time changes.
func fillRows(pix []byte, w, h int, at func(x, y int) [4]byte) {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	rowsPerTask := h/runtime.GOMAXPROCS(0) + 1
	for start := 0; start < h; start += rowsPerTask {
		end := min(start+rowsPerTask, h)
		g.Go(func() error {
			for y := start; y < end; y++ {
				for x := 0; x < w; x++ {
					c := at(x, y)
					off := (y*w + x) * 4
					pix[off] = c[0]
					pix[off+1] = c[1]
					pix[off+2] = c[2]
					pix[off+3] = c[3]
				}
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
}

// Clouds synthesizes a cloud-coverage texture from three octaves of
// trigonometric noise, each octave halving amplitude and doubling frequency,
// thresholded into cloud-like alpha. RGB is white; coverage lives in alpha.
//
// Parameters:
//   - width: output width in pixels
//   - height: output height in pixels
//
// Returns:
//   - common.TextureStagingData: the RGBA cloud texture
func Clouds(width, height int) common.TextureStagingData {
	rng := rand.New(rand.NewSource(7))
	var phase [6]float64
	for i := range phase {
		phase[i] = rng.Float64() * 2 * math.Pi
	}

	pix := make([]byte, width*height*4)
	fillRows(pix, width, height, func(x, y int) [4]byte {
		u := float64(x) / float64(width)
		v := float64(y) / float64(height)

		n := 0.0
		amp := 1.0
		freq := 4.0
		for o := 0; o < 3; o++ {
			n += amp * math.Sin(u*freq*2*math.Pi+phase[o*2]) * math.Cos(v*freq*math.Pi+phase[o*2+1])
			amp *= 0.5
			freq *= 2
		}
		// n is in roughly [-1.75, 1.75]; threshold the upper range into coverage.
		coverage := common.Clamp(float32((n-0.2)/1.2), 0, 1)

		return [4]byte{255, 255, 255, byte(coverage * 255)}
	})

	return common.TextureStagingData{Pixels: pix, Width: uint32(width), Height: uint32(height)}
}

// Earth synthesizes a stand-in planet surface for when neither the local
// asset nor the remote fetch produced real imagery: ocean blue with
// continent-shaped landmasses from layered trigonometric noise, polar ice
// caps, and a latitude tint. Not geography, but unmistakably a planet.
//
// Parameters:
//   - width: output width in pixels
//   - height: output height in pixels
//
// Returns:
//   - common.TextureStagingData: the RGBA surface texture
func Earth(width, height int) common.TextureStagingData {
	rng := rand.New(rand.NewSource(42))
	var phase [8]float64
	for i := range phase {
		phase[i] = rng.Float64() * 2 * math.Pi
	}

	pix := make([]byte, width*height*4)
	fillRows(pix, width, height, func(x, y int) [4]byte {
		u := float64(x) / float64(width)
		v := float64(y) / float64(height)
		lat := math.Abs(v - 0.5) * 2 // 0 at equator, 1 at poles

		n := 0.0
		amp := 1.0
		freq := 3.0
		for o := 0; o < 4; o++ {
			n += amp * math.Sin(u*freq*2*math.Pi+phase[o*2]) * math.Cos(v*freq*math.Pi+phase[o*2+1])
			amp *= 0.55
			freq *= 2
		}

		// Polar ice overrides everything else.
		if lat > 0.88+0.04*math.Sin(u*10*math.Pi) {
			return [4]byte{235, 240, 245, 255}
		}

		if n > 0.35 {
			// Land: greener near the coast, browner inland, paler at high latitude.
			inland := common.Clamp(float32((n-0.35)/0.9), 0, 1)
			r := 60 + 70*inland + 40*float32(lat)
			g := 110 - 30*inland
			b := 50 + 10*float32(lat)
			return [4]byte{byte(r), byte(g), byte(b), 255}
		}

		// Ocean: deeper blue away from the coastline.
		depth := common.Clamp(float32((0.35-n)/1.2), 0, 1)
		return [4]byte{
			byte(20 + 15*(1-depth)),
			byte(50 + 30*(1-depth)),
			byte(120 + 40*(1-depth)),
			255,
		}
	})

	return common.TextureStagingData{Pixels: pix, Width: uint32(width), Height: uint32(height)}
}

// Starfield synthesizes a night-sky texture: a dark vertical gradient, a
// sinusoidally modulated band of brightness standing in for the galactic
// plane, and several thousand scattered stars of varying brightness and
// color temperature. Star placement depends on the random source, so tests
// compare statistics, not bytes.
//
// Parameters:
//   - width: output width in pixels
//   - height: output height in pixels
//   - stars: number of stars to scatter
//   - seed: random source seed
//
// Returns:
//   - common.TextureStagingData: the RGBA starfield texture
func Starfield(width, height, stars int, seed int64) common.TextureStagingData {
	pix := make([]byte, width*height*4)

	fillRows(pix, width, height, func(x, y int) [4]byte {
		u := float64(x) / float64(width)
		v := float64(y) / float64(height)

		// Background gradient: near-black at the poles, slightly blue at the equator.
		base := 8 + 10*math.Sin(v*math.Pi)

		// Galactic band: gaussian falloff around a tilted center line, with
		// sinusoidal brightness variation along it.
		center := 0.5 + 0.08*math.Sin(u*2*math.Pi)
		d := (v - center) / 0.07
		band := 26 * math.Exp(-d*d) * (0.6 + 0.4*math.Sin(u*9*math.Pi))

		g := base + band
		return [4]byte{byte(g * 0.9), byte(g * 0.9), byte(common.Clamp(float32(g*1.1), 0, 255)), 255}
	})

	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < stars; i++ {
		x := rng.Intn(width)
		y := rng.Intn(height)
		brightness := 0.3 + 0.7*rng.Float64()*rng.Float64()
		temp := rng.Float64()

		r := (0.8 + 0.2*temp) * brightness * 255
		g := (0.85 + 0.1*temp) * brightness * 255
		b := (1.0 - 0.25*temp) * brightness * 255

		off := (y*width + x) * 4
		pix[off] = byte(common.Clamp(float32(r), 0, 255))
		pix[off+1] = byte(common.Clamp(float32(g), 0, 255))
		pix[off+2] = byte(common.Clamp(float32(b), 0, 255))
		pix[off+3] = 255
	}

	return common.TextureStagingData{Pixels: pix, Width: uint32(width), Height: uint32(height)}
}

// SkyGradient synthesizes the deep-sky fallback for the skybox: a vertical
// gradient from near-black at the poles through a faint blue-violet mid band.
//
// Parameters:
//   - width: output width in pixels
//   - height: output height in pixels
//
// Returns:
//   - common.TextureStagingData: the RGBA skybox texture
func SkyGradient(width, height int) common.TextureStagingData {
	pix := make([]byte, width*height*4)
	fillRows(pix, width, height, func(x, y int) [4]byte {
		v := float64(y) / float64(height)
		mid := math.Sin(v * math.Pi)
		return [4]byte{
			byte(4 + 8*mid),
			byte(5 + 9*mid),
			byte(10 + 22*mid),
			255,
		}
	})
	return common.TextureStagingData{Pixels: pix, Width: uint32(width), Height: uint32(height)}
}
