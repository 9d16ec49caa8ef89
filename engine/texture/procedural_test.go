package texture

import (
	"bytes"
	"testing"
)

func TestCloudsCoverage(t *testing.T) {
	tex := Clouds(256, 128)
	if tex.Width != 256 || tex.Height != 128 {
		t.Fatalf("dimensions = %dx%d, want 256x128", tex.Width, tex.Height)
	}
	if len(tex.Pixels) != 256*128*4 {
		t.Fatalf("pixel buffer = %d bytes, want %d", len(tex.Pixels), 256*128*4)
	}

	clear, covered := 0, 0
	for i := 0; i < len(tex.Pixels); i += 4 {
		if tex.Pixels[i] != 255 || tex.Pixels[i+1] != 255 || tex.Pixels[i+2] != 255 {
			t.Fatalf("pixel %d RGB = (%d, %d, %d), want white",
				i/4, tex.Pixels[i], tex.Pixels[i+1], tex.Pixels[i+2])
		}
		switch a := tex.Pixels[i+3]; {
		case a == 0:
			clear++
		case a > 128:
			covered++
		}
	}

	// The threshold should leave plenty of open sky and plenty of cloud.
	total := 256 * 128
	if clear < total/10 {
		t.Errorf("only %d of %d pixels fully clear, want at least 10%%", clear, total)
	}
	if covered < total/50 {
		t.Errorf("only %d of %d pixels substantially covered, want at least 2%%", covered, total)
	}
}

func TestEarthDeterministic(t *testing.T) {
	a := Earth(128, 64)
	b := Earth(128, 64)
	if !bytes.Equal(a.Pixels, b.Pixels) {
		t.Error("two runs produced different surfaces")
	}
}

func TestEarthSurfaceClasses(t *testing.T) {
	tex := Earth(256, 128)

	ocean, land, ice := 0, 0, 0
	for i := 0; i < len(tex.Pixels); i += 4 {
		r, g, b := tex.Pixels[i], tex.Pixels[i+1], tex.Pixels[i+2]
		switch {
		case r > 200 && g > 200 && b > 200:
			ice++
		case b > r && b > g:
			ocean++
		case g >= b:
			land++
		}
	}

	total := 256 * 128
	if ocean < total/4 {
		t.Errorf("ocean pixels = %d of %d, want at least a quarter", ocean, total)
	}
	if land < total/20 {
		t.Errorf("land pixels = %d of %d, want at least 5%%", land, total)
	}
	if ice == 0 {
		t.Error("no polar ice pixels")
	}

	// Ice belongs at the poles. The top row is polar for any phase choice.
	for x := 0; x < 256; x++ {
		off := x * 4
		if tex.Pixels[off] < 200 {
			t.Fatalf("top row pixel %d is not ice: R=%d", x, tex.Pixels[off])
		}
	}
}

func TestStarfieldSeeding(t *testing.T) {
	a := Starfield(128, 64, 500, 3)
	b := Starfield(128, 64, 500, 3)
	if !bytes.Equal(a.Pixels, b.Pixels) {
		t.Error("same seed produced different skies")
	}

	c := Starfield(128, 64, 500, 4)
	if bytes.Equal(a.Pixels, c.Pixels) {
		t.Error("different seeds produced identical skies")
	}
}

func TestStarfieldHasBrightStars(t *testing.T) {
	tex := Starfield(256, 128, 2000, 11)

	bright := 0
	for i := 0; i < len(tex.Pixels); i += 4 {
		if tex.Pixels[i] > 150 {
			bright++
		}
	}
	if bright == 0 {
		t.Error("no bright star pixels in a 2000-star sky")
	}
	// Stars are sparse points, not area fill.
	if bright > 2000 {
		t.Errorf("bright pixels = %d, more than the star count", bright)
	}
}

func TestStarfieldGradient(t *testing.T) {
	tex := Starfield(128, 128, 0, 1)

	// With no stars, the equator band must be brighter than the pole rows.
	rowSum := func(y int) int {
		sum := 0
		for x := 0; x < 128; x++ {
			sum += int(tex.Pixels[(y*128+x)*4+2])
		}
		return sum
	}
	if top, mid := rowSum(0), rowSum(64); top >= mid {
		t.Errorf("pole row brightness %d >= equator row %d", top, mid)
	}
}

func TestSkyGradientShape(t *testing.T) {
	tex := SkyGradient(64, 64)
	if len(tex.Pixels) != 64*64*4 {
		t.Fatalf("pixel buffer = %d bytes, want %d", len(tex.Pixels), 64*64*4)
	}

	sample := func(y int) byte { return tex.Pixels[(y*64)*4+2] }
	if sample(0) >= sample(32) {
		t.Errorf("pole blue %d >= mid-band blue %d", sample(0), sample(32))
	}
	if sample(63) >= sample(32) {
		t.Errorf("bottom pole blue %d >= mid-band blue %d", sample(63), sample(32))
	}
	for i := 3; i < len(tex.Pixels); i += 4 {
		if tex.Pixels[i] != 255 {
			t.Fatal("sky gradient must be fully opaque")
		}
	}
}
