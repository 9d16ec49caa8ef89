// Command terraview renders an interactively navigable 3D Earth globe with
// live day/night shading: drag to orbit, scroll to zoom, and leave it alone
// to watch it slowly turn. Satellite imagery is fetched in the background and
// swapped in over procedural placeholders; the current UTC/local time and
// subsolar point are published to overlay widgets over a websocket.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/terraview/terraview/common"
	"github.com/terraview/terraview/engine"
	"github.com/terraview/terraview/engine/astro"
	"github.com/terraview/terraview/engine/camera"
	"github.com/terraview/terraview/engine/input"
	"github.com/terraview/terraview/engine/overlay"
	"github.com/terraview/terraview/engine/renderer"
	"github.com/terraview/terraview/engine/scene"
	"github.com/terraview/terraview/engine/texture"
	"github.com/terraview/terraview/engine/window"
)

func main() {
	var (
		width  = flag.Int("width", 1280, "window width in pixels")
		height = flag.Int("height", 720, "window height in pixels")
		title  = flag.String("title", "Terraview", "window title")

		dayPath  = flag.String("day-path", "", "local path to a daytime equirectangular Earth texture")
		dayURL   = flag.String("day-url", "", "remote URL for the daytime texture; a single %s is replaced with yesterday's date")
		skyPath  = flag.String("sky-path", "", "local path to a sky background texture")
		skyURL   = flag.String("sky-url", "", "remote URL for the sky background texture")
		cloudRes = flag.Int("cloud-resolution", 1024, "width of the procedurally synthesized cloud layer")

		accurateSun = flag.Bool("accurate-sun", false, "use the high-accuracy apparent sun position model")

		overlayAddr = flag.String("overlay-addr", "", "host:port for the overlay readout websocket (empty disables)")

		msaa        = flag.Int("msaa", 4, "MSAA sample count: 1, 4, or 8")
		uncapped    = flag.Bool("uncapped", false, "disable vsync and render as fast as possible")
		profile     = flag.Bool("profile", false, "log frame cadence and memory statistics")
		softwareGPU = flag.Bool("software-gpu", false, "force the fallback software rendering adapter")
	)
	flag.Parse()

	win := window.NewWindow(
		window.WithTitle(*title),
		window.WithWidth(*width),
		window.WithHeight(*height),
	)

	presentMode := renderer.PresentModeVSync
	if *uncapped {
		presentMode = renderer.PresentModeUncapped
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(msaaCount(*msaa)),
		renderer.WithForceSoftwareRenderer(*softwareGPU),
	)
	if err != nil {
		log.Fatalf("terraview: %v", err)
	}

	cam := camera.NewCamera(
		camera.WithAspect(float32(*width)/float32(*height)),
		camera.WithDistance(4.0),
		camera.WithDistanceBounds(1.5, 10.0),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provisioner := texture.NewProvisioner()
	dayRemote := *dayURL
	if dayRemote != "" {
		dayRemote = texture.DatedURL(dayRemote, time.Now())
	}
	dayTexture := provisioner.Acquire(ctx, texture.Source{
		Name:           "day",
		LocalPath:      *dayPath,
		RemoteURL:      dayRemote,
		Fallback:       texture.Earth,
		FallbackWidth:  2048,
		FallbackHeight: 1024,
	})
	cloudTexture := provisioner.Acquire(ctx, texture.Source{
		Name:           "clouds",
		Fallback:       texture.Clouds,
		FallbackWidth:  *cloudRes,
		FallbackHeight: *cloudRes / 2,
	})
	skyTexture := provisioner.Acquire(ctx, texture.Source{
		Name:      "sky",
		LocalPath: *skyPath,
		RemoteURL: *skyURL,
		Fallback: func(w, h int) common.TextureStagingData {
			return texture.Starfield(w, h, 3000, 11)
		},
		FallbackWidth:  2048,
		FallbackHeight: 1024,
	})

	sceneOptions := []scene.SceneBuilderOption{
		scene.WithDayTexture(dayTexture),
		scene.WithCloudTexture(cloudTexture),
		scene.WithSkyTexture(skyTexture),
	}
	if *accurateSun {
		sceneOptions = append(sceneOptions, scene.WithSunModel(astro.ApparentSunPosition))
	}
	sc, err := scene.NewScene(r, cam, sceneOptions...)
	if err != nil {
		log.Fatalf("terraview: scene setup: %v", err)
	}

	controller := input.NewController(cam)
	controller.Attach(win)

	var broadcaster overlay.Broadcaster
	if *overlayAddr != "" {
		broadcaster = overlay.NewBroadcaster(overlay.WithAddress(*overlayAddr))
		if err := broadcaster.Start(); err != nil {
			log.Printf("terraview: overlay disabled: %v", err)
			broadcaster = nil
		}
	}

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScene(sc),
		engine.WithProfiling(*profile),
	)

	profiling := *profile
	win.SetKeyDownCallback(func(keyCode uint32) {
		switch keyCode {
		case common.KeyP:
			profiling = !profiling
			if profiling {
				eng.EnableProfiler()
			} else {
				eng.DisableProfiler()
			}
		case common.KeyR:
			cam.ApplyOrbitDelta(-cam.Yaw(), -cam.Pitch())
		}
	})

	eng.SetTickCallback(func(deltaTime float32) {
		controller.Tick(deltaTime)
		if broadcaster != nil {
			broadcaster.Publish(overlay.FormatReadout(time.Now(), sc.SunState()))
		}
	})

	eng.Run()

	if broadcaster != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer shutdownCancel()
		if err := broadcaster.Shutdown(shutdownCtx); err != nil {
			log.Printf("terraview: overlay shutdown: %v", err)
		}
	}
}

func msaaCount(n int) renderer.MSAASampleCount {
	switch n {
	case 1:
		return renderer.MSAAOff
	case 8:
		return renderer.MSAA8x
	default:
		return renderer.MSAA4x
	}
}
