package texture

import (
	"context"
	"fmt"
	"image"
	"log"
	"net/http"
	"os"
	"time"

	_ "image/jpeg" // register JPEG format with image.Decode
	_ "image/png"  // register PNG format with image.Decode

	xdraw "golang.org/x/image/draw"

	"github.com/terraview/terraview/common"
)

// Source describes where a surface's color data may come from. Tiers are
// attempted in order: LocalPath, then RemoteURL, then Fallback. Empty tiers
// are skipped; Fallback must be set so Acquire always resolves to something.
type Source struct {
	// Name is a debug label for log output.
	Name string

	// LocalPath is an optional on-disk asset path tried first.
	LocalPath string

	// RemoteURL is an optional HTTP(S) URL tried second.
	RemoteURL string

	// Fallback synthesizes the texture procedurally when the other tiers fail.
	Fallback func(width, height int) common.TextureStagingData

	// FallbackWidth and FallbackHeight size the procedural output.
	FallbackWidth, FallbackHeight int
}

// provisionerImpl implements the Provisioner interface.
type provisionerImpl struct {
	client       *http.Client
	maxDimension int
	placeholder  [4]byte
}

// Provisioner acquires texture resources through the fallback chain without
// ever blocking the caller. Failures at one tier trigger the next; no tier
// is retried.
type Provisioner interface {
	// Acquire returns immediately with a placeholder-backed Resource and
	// kicks off asynchronous resolution of the source's tiers. The returned
	// resource publishes resolved data through TakePending.
	//
	// Parameters:
	//   - ctx: cancels in-flight fetches on teardown
	//   - src: the source descriptor for this surface
	//
	// Returns:
	//   - *Resource: the hot-swappable resource cell
	Acquire(ctx context.Context, src Source) *Resource
}

var _ Provisioner = &provisionerImpl{}

// NewProvisioner creates a texture provisioner.
//
// Parameters:
//   - options: functional options for HTTP client, dimension clamp, and placeholder color
//
// Returns:
//   - Provisioner: the newly created provisioner
func NewProvisioner(options ...ProvisionerBuilderOption) Provisioner {
	p := &provisionerImpl{
		client:       &http.Client{Timeout: 30 * time.Second},
		maxDimension: 8192,
		placeholder:  [4]byte{12, 16, 28, 255},
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *provisionerImpl) Acquire(ctx context.Context, src Source) *Resource {
	res := NewResource(src.Name, common.SolidStagingData(
		p.placeholder[0], p.placeholder[1], p.placeholder[2], p.placeholder[3],
	))
	go p.resolve(ctx, src, res)
	return res
}

// resolve walks the fallback chain. Each tier's failure is caught and logged
// here; nothing propagates to the frame loop.
func (p *provisionerImpl) resolve(ctx context.Context, src Source, res *Resource) {
	if src.LocalPath != "" {
		data, err := p.loadLocal(src.LocalPath)
		if err == nil {
			res.resolve(data)
			return
		}
		log.Printf("texture %s: local asset %s unavailable (%v), trying remote", src.Name, src.LocalPath, err)
	}

	if src.RemoteURL != "" {
		data, err := p.fetchRemote(ctx, src.RemoteURL)
		if err == nil {
			res.resolve(data)
			return
		}
		log.Printf("texture %s: remote fetch failed (%v), synthesizing", src.Name, err)
	}

	if src.Fallback != nil {
		data := src.Fallback(src.FallbackWidth, src.FallbackHeight)
		res.resolve(&data)
	}
}

func (p *provisionerImpl) loadLocal(path string) (*common.TextureStagingData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return p.stage(img), nil
}

func (p *provisionerImpl) fetchRemote(ctx context.Context, url string) (*common.TextureStagingData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s for %s", resp.Status, url)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return p.stage(img), nil
}

// stage converts a decoded image to tightly-packed RGBA, downscaling to the
// device texture dimension limit when the source exceeds it.
func (p *provisionerImpl) stage(img image.Image) *common.TextureStagingData {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	outW, outH := w, h
	if outW > p.maxDimension || outH > p.maxDimension {
		scale := float64(p.maxDimension) / float64(max(outW, outH))
		outW = int(float64(outW) * scale)
		outH = int(float64(outH) * scale)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, outW, outH))
	if outW == w && outH == h {
		xdraw.Draw(rgba, rgba.Bounds(), img, bounds.Min, xdraw.Src)
	} else {
		xdraw.ApproxBiLinear.Scale(rgba, rgba.Bounds(), img, bounds, xdraw.Src, nil)
	}

	return &common.TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(outW),
		Height: uint32(outH),
	}
}

// DatedURL formats a URL template containing one %s verb with a date one
// calendar day in the past, the latest day for which satellite imagery
// services reliably have a complete mosaic.
//
// Parameters:
//   - format: URL template with a single %s for the date
//   - now: the reference time
//
// Returns:
//   - string: the formatted URL
func DatedURL(format string, now time.Time) string {
	return fmt.Sprintf(format, now.AddDate(0, 0, -1).UTC().Format("2006-01-02"))
}
