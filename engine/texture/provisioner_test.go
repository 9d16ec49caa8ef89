package texture

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/terraview/terraview/common"
)

// encodePNG builds a small solid-color PNG for serving from test tiers.
func encodePNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

// awaitResolve polls TakePending until provisioning publishes data.
func awaitResolve(t *testing.T, res *Resource) *common.TextureStagingData {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if data := res.TakePending(); data != nil {
			return data
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("provisioning did not resolve before the deadline")
	return nil
}

func TestAcquireStartsOnPlaceholder(t *testing.T) {
	p := NewProvisioner(WithPlaceholderColor(10, 20, 30, 255))
	res := p.Acquire(context.Background(), Source{
		Name:           "test",
		Fallback:       func(w, h int) common.TextureStagingData { return common.SolidStagingData(1, 2, 3, 255) },
		FallbackWidth:  1,
		FallbackHeight: 1,
	})

	ph := res.Placeholder()
	if ph.Width != 1 || ph.Height != 1 {
		t.Fatalf("placeholder = %dx%d, want 1x1", ph.Width, ph.Height)
	}
	if ph.Pixels[0] != 10 || ph.Pixels[1] != 20 || ph.Pixels[2] != 30 {
		t.Errorf("placeholder color = %v, want (10, 20, 30)", ph.Pixels[:3])
	}
}

func TestAcquireLocalTier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surface.png")
	if err := os.WriteFile(path, encodePNG(t, 4, 2, color.RGBA{200, 100, 50, 255}), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewProvisioner()
	res := p.Acquire(context.Background(), Source{Name: "local", LocalPath: path})

	data := awaitResolve(t, res)
	if data.Width != 4 || data.Height != 2 {
		t.Fatalf("resolved %dx%d, want 4x2", data.Width, data.Height)
	}
	if data.Pixels[0] != 200 || data.Pixels[1] != 100 || data.Pixels[2] != 50 {
		t.Errorf("first pixel = %v, want (200, 100, 50)", data.Pixels[:3])
	}
}

func TestAcquireRemoteTier(t *testing.T) {
	body := encodePNG(t, 2, 2, color.RGBA{5, 250, 5, 255})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(body)
	}))
	defer srv.Close()

	p := NewProvisioner()
	res := p.Acquire(context.Background(), Source{
		Name:      "remote",
		LocalPath: filepath.Join(t.TempDir(), "missing.png"),
		RemoteURL: srv.URL,
	})

	data := awaitResolve(t, res)
	if data.Width != 2 || data.Height != 2 {
		t.Fatalf("resolved %dx%d, want 2x2", data.Width, data.Height)
	}
	if data.Pixels[1] != 250 {
		t.Errorf("green channel = %d, want 250", data.Pixels[1])
	}
}

func TestAcquireFallsBackOnRemoteFailure(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		}},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not an image"))
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(c.handler)
			defer srv.Close()

			p := NewProvisioner()
			res := p.Acquire(context.Background(), Source{
				Name:      "failing",
				RemoteURL: srv.URL,
				Fallback: func(w, h int) common.TextureStagingData {
					return common.SolidStagingData(9, 8, 7, 255)
				},
				FallbackWidth:  1,
				FallbackHeight: 1,
			})

			data := awaitResolve(t, res)
			if data.Pixels[0] != 9 || data.Pixels[1] != 8 || data.Pixels[2] != 7 {
				t.Errorf("resolved %v, want procedural fallback (9, 8, 7)", data.Pixels[:3])
			}
		})
	}
}

func TestStageDownscalesOversizedImages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.png")
	if err := os.WriteFile(path, encodePNG(t, 64, 32, color.RGBA{128, 128, 128, 255}), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewProvisioner(WithMaxDimension(16))
	res := p.Acquire(context.Background(), Source{Name: "big", LocalPath: path})

	data := awaitResolve(t, res)
	if data.Width != 16 || data.Height != 8 {
		t.Errorf("downscaled to %dx%d, want 16x8", data.Width, data.Height)
	}
}

func TestTakePendingDrainsOnce(t *testing.T) {
	res := NewResource("drain", common.SolidStagingData(0, 0, 0, 255))
	if res.TakePending() != nil {
		t.Fatal("fresh resource reported pending data")
	}

	staged := common.SolidStagingData(1, 2, 3, 255)
	res.resolve(&staged)

	if res.TakePending() == nil {
		t.Fatal("resolved data not returned")
	}
	if res.TakePending() != nil {
		t.Fatal("second take returned data again")
	}
}

func TestDatedURL(t *testing.T) {
	now := time.Date(2024, 3, 1, 4, 30, 0, 0, time.UTC)
	got := DatedURL("https://imagery.example/%s/world.png", now)
	want := "https://imagery.example/2024-02-29/world.png"
	if got != want {
		t.Errorf("DatedURL = %q, want %q", got, want)
	}
}
