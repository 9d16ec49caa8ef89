// package scene composites the globe view from five fixed render passes inside
// a single render pass per frame: sky shell, starfield, sun disc, planet, lens
// flare. Pass order is a correctness property, not a tuning knob; the sky and
// stars pin themselves to the far plane, the sun writes depth so the planet
// can occlude it, and the flare overlays everything.
package scene

import (
	_ "embed"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/terraview/terraview/common"
	"github.com/terraview/terraview/engine/astro"
	"github.com/terraview/terraview/engine/camera"
	"github.com/terraview/terraview/engine/geometry"
	"github.com/terraview/terraview/engine/renderer"
	"github.com/terraview/terraview/engine/renderer/bind_group_provider"
	"github.com/terraview/terraview/engine/renderer/pipeline"
	"github.com/terraview/terraview/engine/renderer/shader"
	"github.com/terraview/terraview/engine/texture"
)

//go:embed shaders/sky.wgsl
var skyShaderSource string

//go:embed shaders/stars.wgsl
var starsShaderSource string

//go:embed shaders/sun.wgsl
var sunShaderSource string

//go:embed shaders/planet.wgsl
var planetShaderSource string

//go:embed shaders/flare.wgsl
var flareShaderSource string

const (
	// planetRadius is the world-space radius of the globe. Everything else in
	// the scene is sized relative to it.
	planetRadius = 1.0

	// sunDistance places the sun disc well outside the camera's orbit range
	// but safely inside the far plane.
	sunDistance = 30.0

	// sunRadius is the world-space radius of the sun disc sphere.
	sunRadius = 1.1
)

// uniform blocks, one per pass. Field order matches the WGSL struct layout.

type skyUniforms struct {
	MVP [16]float32
}

type starUniforms struct {
	MVP    [16]float32
	Params [4]float32
}

type sunUniforms struct {
	MVP   [16]float32
	Color [4]float32
}

type planetUniforms struct {
	MVP            [16]float32
	SunDirection   [4]float32
	CameraPosition [4]float32
	Params         [4]float32
}

type flareUniforms struct {
	Params [4]float32
}

// pass bundles the GPU-side state of one render pass: its pipeline key, the
// provider holding its mesh and bind group, and the layout descriptor needed
// to rebuild the bind group after a texture hot-swap.
type pass struct {
	pipelineKey string
	provider    bind_group_provider.BindGroupProvider
	layout      wgpu.BindGroupLayoutDescriptor
}

// sceneImpl is the implementation of the Scene interface.
type sceneImpl struct {
	mu *sync.Mutex

	renderer renderer.Renderer
	camera   camera.Camera

	sunModel func(time.Time) astro.SunState
	sunState astro.SunState
	start    time.Time

	dayTexture   *texture.Resource
	cloudTexture *texture.Resource
	skyTexture   *texture.Resource

	sky    *pass
	stars  *pass
	sun    *pass
	planet *pass
	flare  *pass

	cloudFadeNear float32
	cloudFadeFar  float32
	starCount     int
	starSeed      int64
	sunColor      [4]float32
}

// Scene owns the five-pass globe compositor: it holds the camera, the current
// sun state, and the GPU resources of every pass, and drives one full frame per
// Frame call. Accessors are safe for concurrent use; Frame must only be called
// from the render thread that owns the GPU surface.
type Scene interface {
	// Camera returns the scene's orbit camera.
	Camera() camera.Camera

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// SunState returns the most recently computed sun state.
	//
	// Returns:
	//   - astro.SunState: declination, subsolar longitude, and direction
	SunState() astro.SunState

	// Frame renders one complete frame: drains pending texture swaps,
	// recomputes the sun state and camera matrices, writes every pass's
	// uniform block, then encodes the five draws in fixed order within a
	// single render pass and presents.
	//
	// Parameters:
	//   - now: the wall-clock instant driving the sun model and animations
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired;
	//     the caller should skip the frame and retry on the next one
	Frame(now time.Time) error

	// Resize reconfigures the render surface and updates the camera's
	// aspect ratio for a new drawable size.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height int)
}

var _ Scene = &sceneImpl{}

// NewScene creates the globe scene and initializes all GPU resources: meshes,
// shaders, pipelines, samplers, placeholder textures, and bind groups. Texture
// resources supplied via options start on their placeholders and are swapped
// in as provisioning resolves.
//
// Parameters:
//   - r: the renderer that owns the GPU device and surface
//   - cam: the orbit camera
//   - options: functional options for textures, sun model, and tuning
//
// Returns:
//   - Scene: the fully initialized scene
//   - error: an error if any GPU resource could not be created
func NewScene(r renderer.Renderer, cam camera.Camera, options ...SceneBuilderOption) (Scene, error) {
	s := &sceneImpl{
		mu:            &sync.Mutex{},
		renderer:      r,
		camera:        cam,
		sunModel:      astro.SunPosition,
		start:         time.Now(),
		cloudFadeNear: 1.8,
		cloudFadeFar:  3.5,
		starCount:     2500,
		starSeed:      1,
		sunColor:      [4]float32{1.0, 0.93, 0.78, 1.0},
	}
	for _, option := range options {
		option(s)
	}

	if err := s.initPasses(); err != nil {
		return nil, err
	}
	s.sunState = s.sunModel(time.Now())
	return s, nil
}

func (s *sceneImpl) Camera() camera.Camera {
	return s.camera
}

func (s *sceneImpl) Renderer() renderer.Renderer {
	return s.renderer
}

func (s *sceneImpl) SunState() astro.SunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sunState
}

func (s *sceneImpl) Resize(width, height int) {
	s.renderer.Resize(width, height)
	if height > 0 {
		s.camera.SetAspect(float32(width) / float32(height))
	}
}

func (s *sceneImpl) Frame(now time.Time) error {
	s.pollTextures()

	state := s.sunModel(now)
	s.mu.Lock()
	s.sunState = state
	s.mu.Unlock()

	elapsed := float32(now.Sub(s.start).Seconds())
	viewProj := s.camera.ViewProjection()
	rotVP := s.camera.RotationViewProjection()
	camX, camY, camZ := s.camera.Position()

	var sunModelMat, sunMVP [16]float32
	common.BuildModelMatrix(sunModelMat[:],
		state.Direction[0]*sunDistance,
		state.Direction[1]*sunDistance,
		state.Direction[2]*sunDistance,
		0, 0, 0,
		sunRadius, sunRadius, sunRadius,
	)
	common.Mul4(sunMVP[:], viewProj[:], sunModelMat[:])

	cloudOpacity := cloudOpacityFor(s.camera.Distance(), s.cloudFadeNear, s.cloudFadeFar)

	ndcX, ndcY, intensity := flareState(viewProj, camX, camY, camZ, state.Direction)

	s.renderer.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: s.sky.provider, Binding: 0, Data: common.StructToBytes(&skyUniforms{
			MVP: rotVP,
		})},
		{Provider: s.stars.provider, Binding: 0, Data: common.StructToBytes(&starUniforms{
			MVP:    rotVP,
			Params: [4]float32{elapsed, 0, 0, 0},
		})},
		{Provider: s.sun.provider, Binding: 0, Data: common.StructToBytes(&sunUniforms{
			MVP:   sunMVP,
			Color: s.sunColor,
		})},
		{Provider: s.planet.provider, Binding: 0, Data: common.StructToBytes(&planetUniforms{
			MVP:            viewProj,
			SunDirection:   [4]float32{state.Direction[0], state.Direction[1], state.Direction[2], 0},
			CameraPosition: [4]float32{camX, camY, camZ, 1},
			Params:         [4]float32{cloudOpacity, elapsed, 0, 0},
		})},
		{Provider: s.flare.provider, Binding: 0, Data: common.StructToBytes(&flareUniforms{
			Params: [4]float32{ndcX, ndcY, intensity, s.camera.Aspect()},
		})},
	})

	if err := s.renderer.BeginFrame(); err != nil {
		return err
	}

	// Encode order is composite order. Sky and stars do not touch depth, the
	// sun writes it, and the planet's depth test then occludes the sun when
	// it sits behind the globe.
	for _, p := range []*pass{s.sky, s.stars, s.sun, s.planet, s.flare} {
		if err := s.renderer.DrawCall(p.pipelineKey, p.provider, 1, []bind_group_provider.BindGroupProvider{p.provider}); err != nil {
			return fmt.Errorf("draw %s: %w", p.pipelineKey, err)
		}
	}

	s.renderer.EndFrame()
	s.renderer.Present()
	return nil
}

// pollTextures drains resolved texture data and re-uploads the affected
// passes' textures. Runs on the render thread between frames so a swap is
// never observed mid-encode.
func (s *sceneImpl) pollTextures() {
	swaps := []struct {
		res     *texture.Resource
		target  *pass
		binding int
	}{
		{s.dayTexture, s.planet, 1},
		{s.cloudTexture, s.planet, 2},
		{s.skyTexture, s.sky, 1},
	}

	for _, swap := range swaps {
		if swap.res == nil {
			continue
		}
		data := swap.res.TakePending()
		if data == nil {
			continue
		}
		if err := s.renderer.InitTextureView(swap.target.provider, swap.binding, *data); err != nil {
			log.Printf("scene: texture swap for %s failed: %v", swap.res.Name(), err)
			continue
		}
		if err := s.renderer.InitBindGroup(swap.target.provider, swap.target.layout, nil); err != nil {
			log.Printf("scene: bind group rebuild for %s failed: %v", swap.res.Name(), err)
		}
	}
}

// cloudOpacityFor ramps the cloud layer's opacity linearly with camera
// distance: fully transparent at or below near, fully opaque at or beyond
// far. Zooming in close fades the clouds out so the surface stays readable.
func cloudOpacityFor(distance, near, far float32) float32 {
	if far <= near {
		return 1
	}
	return common.Clamp((distance-near)/(far-near), 0, 1)
}

// flareState projects the sun's world position through the view-projection
// matrix and derives the lens flare's screen position and intensity. The
// flare is live only when the sun is in front of the camera (clip w > 0) and
// its NDC coordinates land on screen; intensity then scales with how directly
// the camera looks at the sun, so it blooms at alignment and dies off toward
// the screen edge.
func flareState(viewProj [16]float32, camX, camY, camZ float32, sunDir [3]float32) (ndcX, ndcY, intensity float32) {
	clip := common.TransformVec4(viewProj[:],
		sunDir[0]*sunDistance,
		sunDir[1]*sunDistance,
		sunDir[2]*sunDistance,
		1,
	)
	if clip[3] <= 0 {
		return 0, 0, 0
	}

	ndcX = clip[0] / clip[3]
	ndcY = clip[1] / clip[3]
	ndcZ := clip[2] / clip[3]
	if ndcX < -1 || ndcX > 1 || ndcY < -1 || ndcY > 1 || ndcZ < 0 || ndcZ > 1 {
		return ndcX, ndcY, 0
	}

	// The orbit camera always looks at the origin, so the forward vector is
	// the normalized negated camera position.
	forward := []float32{-camX, -camY, -camZ}
	common.Normalize3(forward)
	alignment := common.Dot3(forward, sunDir[:])

	intensity = common.Clamp((alignment-0.2)/0.8, 0, 1)
	intensity *= intensity
	return ndcX, ndcY, intensity
}

// initPasses builds every pass's GPU state. Pipelines are registered once;
// bind groups are created against placeholder textures and rebuilt later as
// provisioning resolves.
func (s *sceneImpl) initPasses() error {
	skyLayout := wgpu.BindGroupLayoutDescriptor{
		Label: "Sky Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(0, wgpu.ShaderStageVertex, uniformSize[skyUniforms]()),
			textureEntry(1),
			samplerEntry(2),
		},
	}
	starsLayout := wgpu.BindGroupLayoutDescriptor{
		Label: "Stars Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(0, wgpu.ShaderStageVertex, uniformSize[starUniforms]()),
		},
	}
	sunLayout := wgpu.BindGroupLayoutDescriptor{
		Label: "Sun Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(0, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, uniformSize[sunUniforms]()),
		},
	}
	planetLayout := wgpu.BindGroupLayoutDescriptor{
		Label: "Planet Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(0, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, uniformSize[planetUniforms]()),
			textureEntry(1),
			textureEntry(2),
			samplerEntry(3),
		},
	}
	flareLayout := wgpu.BindGroupLayoutDescriptor{
		Label: "Flare Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(0, wgpu.ShaderStageFragment, uniformSize[flareUniforms]()),
		},
	}

	s.sky = &pass{pipelineKey: "sky", provider: bind_group_provider.NewBindGroupProvider("Sky"), layout: skyLayout}
	s.stars = &pass{pipelineKey: "stars", provider: bind_group_provider.NewBindGroupProvider("Stars"), layout: starsLayout}
	s.sun = &pass{pipelineKey: "sun", provider: bind_group_provider.NewBindGroupProvider("Sun"), layout: sunLayout}
	s.planet = &pass{pipelineKey: "planet", provider: bind_group_provider.NewBindGroupProvider("Planet"), layout: planetLayout}
	s.flare = &pass{pipelineKey: "flare", provider: bind_group_provider.NewBindGroupProvider("Flare"), layout: flareLayout}

	if err := s.initMeshes(); err != nil {
		return err
	}
	if err := s.initTextures(); err != nil {
		return err
	}
	if err := s.registerPipelines(skyLayout, starsLayout, sunLayout, planetLayout, flareLayout); err != nil {
		return err
	}

	for _, p := range []*pass{s.sky, s.stars, s.sun, s.planet, s.flare} {
		if err := s.renderer.InitBindGroup(p.provider, p.layout, nil); err != nil {
			return fmt.Errorf("bind group for %s: %w", p.pipelineKey, err)
		}
	}
	return nil
}

func (s *sceneImpl) initMeshes() error {
	meshes := []struct {
		target *pass
		mesh   *geometry.Mesh
	}{
		{s.sky, geometry.GenerateSkySphere(planetRadius, 16, 32)},
		{s.stars, geometry.GenerateStarPoints(s.starCount, planetRadius, s.starSeed)},
		{s.sun, geometry.GenerateSphere(planetRadius, 24, 48)},
		{s.planet, geometry.GenerateSphere(planetRadius, 64, 128)},
		{s.flare, geometry.GenerateFullscreenQuad()},
	}
	for _, m := range meshes {
		if err := s.renderer.InitMeshBuffers(m.target.provider, m.mesh.VertexBytes(), m.mesh.IndexBytes(), len(m.mesh.Indices)); err != nil {
			return fmt.Errorf("mesh buffers for %s: %w", m.target.pipelineKey, err)
		}
	}
	return nil
}

// initTextures binds each surface's placeholder so the first frame can render
// before any asynchronous provisioning resolves.
func (s *sceneImpl) initTextures() error {
	dayPlaceholder := common.SolidStagingData(24, 48, 96, 255)
	if s.dayTexture != nil {
		dayPlaceholder = s.dayTexture.Placeholder()
	}
	cloudPlaceholder := common.SolidStagingData(255, 255, 255, 0)
	if s.cloudTexture != nil {
		cloudPlaceholder = s.cloudTexture.Placeholder()
	}
	skyPlaceholder := common.SolidStagingData(2, 2, 6, 255)
	if s.skyTexture != nil {
		skyPlaceholder = s.skyTexture.Placeholder()
	}

	if err := s.renderer.InitTextureView(s.planet.provider, 1, dayPlaceholder); err != nil {
		return err
	}
	if err := s.renderer.InitTextureView(s.planet.provider, 2, cloudPlaceholder); err != nil {
		return err
	}
	if err := s.renderer.InitTextureView(s.sky.provider, 1, skyPlaceholder); err != nil {
		return err
	}

	if err := s.renderer.InitSampler(s.planet.provider, 3, common.SamplerStagingData{}); err != nil {
		return err
	}
	return s.renderer.InitSampler(s.sky.provider, 2, common.SamplerStagingData{})
}

func (s *sceneImpl) registerPipelines(skyLayout, starsLayout, sunLayout, planetLayout, flareLayout wgpu.BindGroupLayoutDescriptor) error {
	additive := &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOne,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOne,
			Operation: wgpu.BlendOperationAdd,
		},
	}

	skyPipeline := pipeline.NewPipeline("sky",
		pipeline.WithVertexShader(shader.NewShader("sky_vs", shader.ShaderTypeVertex, skyShaderSource,
			shader.WithBindGroupLayout(0, skyLayout),
			shader.WithVertexLayout(0, meshVertexLayout...),
		)),
		pipeline.WithFragmentShader(shader.NewShader("sky_fs", shader.ShaderTypeFragment, skyShaderSource,
			shader.WithBindGroupLayout(0, skyLayout),
		)),
		pipeline.WithDepthTestEnabled(false),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithCullMode(wgpu.CullModeFront),
	)

	starsPipeline := pipeline.NewPipeline("stars",
		pipeline.WithVertexShader(shader.NewShader("stars_vs", shader.ShaderTypeVertex, starsShaderSource,
			shader.WithBindGroupLayout(0, starsLayout),
			shader.WithVertexLayout(0, pointVertexLayout...),
		)),
		pipeline.WithFragmentShader(shader.NewShader("stars_fs", shader.ShaderTypeFragment, starsShaderSource,
			shader.WithBindGroupLayout(0, starsLayout),
		)),
		pipeline.WithDepthTestEnabled(false),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithTopology(wgpu.PrimitiveTopologyPointList),
		pipeline.WithBlendEnabled(true),
		pipeline.WithBlendState(additive),
	)

	sunPipeline := pipeline.NewPipeline("sun",
		pipeline.WithVertexShader(shader.NewShader("sun_vs", shader.ShaderTypeVertex, sunShaderSource,
			shader.WithBindGroupLayout(0, sunLayout),
			shader.WithVertexLayout(0, meshVertexLayout...),
		)),
		pipeline.WithFragmentShader(shader.NewShader("sun_fs", shader.ShaderTypeFragment, sunShaderSource,
			shader.WithBindGroupLayout(0, sunLayout),
		)),
		pipeline.WithBlendEnabled(true),
		pipeline.WithBlendState(additive),
	)

	planetPipeline := pipeline.NewPipeline("planet",
		pipeline.WithVertexShader(shader.NewShader("planet_vs", shader.ShaderTypeVertex, planetShaderSource,
			shader.WithBindGroupLayout(0, planetLayout),
			shader.WithVertexLayout(0, meshVertexLayout...),
		)),
		pipeline.WithFragmentShader(shader.NewShader("planet_fs", shader.ShaderTypeFragment, planetShaderSource,
			shader.WithBindGroupLayout(0, planetLayout),
		)),
		pipeline.WithCullMode(wgpu.CullModeBack),
	)

	flarePipeline := pipeline.NewPipeline("flare",
		pipeline.WithVertexShader(shader.NewShader("flare_vs", shader.ShaderTypeVertex, flareShaderSource,
			shader.WithBindGroupLayout(0, flareLayout),
			shader.WithVertexLayout(0, meshVertexLayout...),
		)),
		pipeline.WithFragmentShader(shader.NewShader("flare_fs", shader.ShaderTypeFragment, flareShaderSource,
			shader.WithBindGroupLayout(0, flareLayout),
		)),
		pipeline.WithDepthTestEnabled(false),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithBlendEnabled(true),
		pipeline.WithBlendState(additive),
	)

	return s.renderer.RegisterPipelines(skyPipeline, starsPipeline, sunPipeline, planetPipeline, flarePipeline)
}

// meshVertexLayout is the interleaved position+uv layout shared by the sky,
// sun, planet, and flare passes.
var meshVertexLayout = []wgpu.VertexBufferLayout{{
	ArrayStride: 20,
	StepMode:    wgpu.VertexStepModeVertex,
	Attributes: []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
	},
}}

// pointVertexLayout is the position+color layout of the starfield points.
var pointVertexLayout = []wgpu.VertexBufferLayout{{
	ArrayStride: 28,
	StepMode:    wgpu.VertexStepModeVertex,
	Attributes: []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1},
	},
}}

func uniformEntry(binding uint32, visibility wgpu.ShaderStage, size uint64) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
		Buffer: wgpu.BufferBindingLayout{
			Type:           wgpu.BufferBindingTypeUniform,
			MinBindingSize: size,
		},
	}
}

func textureEntry(binding uint32) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: wgpu.ShaderStageFragment,
		Texture: wgpu.TextureBindingLayout{
			SampleType:    wgpu.TextureSampleTypeFloat,
			ViewDimension: wgpu.TextureViewDimension2D,
		},
	}
}

func samplerEntry(binding uint32) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: wgpu.ShaderStageFragment,
		Sampler: wgpu.SamplerBindingLayout{
			Type: wgpu.SamplerBindingTypeFiltering,
		},
	}
}

// uniformSize reports the byte size of a uniform block struct.
func uniformSize[T any]() uint64 {
	var v T
	return uint64(len(common.StructToBytes(&v)))
}
