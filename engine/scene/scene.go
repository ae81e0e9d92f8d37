package scene

import (
	"io/fs"
	"sync"

	"github.com/Carmen-Shannon/oxy-shadows/assets"
	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/Carmen-Shannon/oxy-shadows/engine/camera"
	"github.com/Carmen-Shannon/oxy-shadows/engine/config"
	"github.com/Carmen-Shannon/oxy-shadows/engine/light"
	"github.com/Carmen-Shannon/oxy-shadows/engine/loader"
	"github.com/Carmen-Shannon/oxy-shadows/engine/model"
	"github.com/Carmen-Shannon/oxy-shadows/engine/profiler"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-shadows/engine/window"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Shader sources inside the asset file system.
const (
	ShadowVertexShaderPath = "shaders/shadow.vert.wgsl"
	LitVertexShaderPath    = "shaders/lit.vert.wgsl"
	LitFragmentShaderPath  = "shaders/lit.frag.wgsl"
)

// Variable names the scene looks up in the lit pipeline.
const (
	globalsVarName       = "globals"
	objectVarName        = "obj"
	lightVarName         = "light"
	shadowMapVarName     = "s_ShadowMap"
	shadowSamplerVarName = "s_ShadowSampler"
)

// Scene is the application driven by the engine loop: it owns the camera, the light,
// the meshes and both render passes.
type Scene interface {
	// Name returns the name of the scene.
	Name() string

	// State returns the current lifecycle state.
	State() State

	// WindowConfig returns the window the scene wants to be shown in.
	//
	// Returns:
	//   - window.Config: title, size, refresh rate, resizability and graphics backend
	WindowConfig() window.Config

	// SetRenderer attaches the renderer used by Initialize and every frame.
	//
	// Parameters:
	//   - r: the renderer
	SetRenderer(r renderer.Renderer)

	// SetViewport records the framebuffer size the camera aspect is built from in Initialize.
	// On high-DPI displays it differs from the window size in WindowConfig.
	//
	// Parameters:
	//   - width: the framebuffer width in pixels
	//   - height: the framebuffer height in pixels
	SetViewport(width, height int)

	// Initialize creates shaders, pipelines, the shadow map, uniform buffers, the camera
	// and the meshes, then moves Uninitialized -> Initialized. On failure the state is unchanged
	// and the error describes the failing step.
	//
	// Returns:
	//   - error: ErrInvalidTransition when not Uninitialized, or the wrapped setup error
	Initialize() error

	// Tick advances one frame: camera update, uniform upload, shadow pass, lit pass.
	// The first Tick moves Initialized -> Running. Ticks in other states do nothing.
	//
	// Parameters:
	//   - ctx: the per-frame input
	Tick(ctx FrameContext)

	// OnKey routes a key event to the camera controller. G toggles the debug overlay.
	//
	// Parameters:
	//   - keyCode: the platform key code
	//   - action: press or release
	OnKey(keyCode uint32, action common.Action)

	// OnMouse routes a mouse button event to the camera controller.
	//
	// Parameters:
	//   - button: the mouse button
	//   - action: press or release
	OnMouse(button int, action common.Action)

	// OnResize reconfigures the swapchain, updates the camera aspect and recreates the
	// shadow map. Zero-sized resizes (minimized window) are ignored.
	//
	// Parameters:
	//   - width: the new framebuffer width
	//   - height: the new framebuffer height
	OnResize(width, height int)

	// Dispose moves to ShuttingDown and releases the scene's GPU resources.
	Dispose()

	// Camera returns the scene camera, or nil before Initialize.
	Camera() camera.Camera

	// Light returns the directional light.
	Light() light.Light

	// OverlayEnabled reports whether the debug overlay is on.
	OverlayEnabled() bool
}

// shadowScene renders a fixed set of meshes lit by one shadow-casting directional light.
type shadowScene struct {
	lifecycle

	mu *sync.Mutex

	name   string
	cfg    config.Config
	assets fs.FS
	logger *zap.Logger

	r      renderer.Renderer
	cam    camera.Camera
	light  light.Light
	loader loader.Loader

	objects []*sceneObject

	globals      bind_group_provider.BindGroupProvider
	globalsSlot  int
	objectSlot   int
	lightBGP     bind_group_provider.BindGroupProvider
	lightGroup   int
	lightSlot    int
	mapSlot      int
	bindsShadow  bool
	bindsLight   bool
	shadowMapRes int
	viewport     [2]int

	shadow *shadowPass
	lit    *litPass

	overlay  bool
	profiler *profiler.Profiler

	writes []bind_group_provider.BufferWrite
}

var _ Scene = &shadowScene{}

// NewShadowScene creates the shadow demo scene. Nothing touches the GPU until Initialize.
//
// Parameters:
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewShadowScene(options ...SceneBuilderOption) Scene {
	s := &shadowScene{
		mu:      &sync.Mutex{},
		name:    "shadows",
		cfg:     config.Default(),
		assets:  assets.FS,
		logger:  zap.NewNop(),
		overlay: true,
	}

	for _, option := range options {
		option(s)
	}

	s.light = light.NewDirectionalLight(
		light.WithDirection(mgl32.Vec3(s.cfg.Light.Direction)),
		light.WithTarget(mgl32.Vec3(s.cfg.Light.Target)),
		light.WithColor(mgl32.Vec3(s.cfg.Light.Color)),
		light.WithShadow(light.ShadowSettings{
			HalfExtent: s.cfg.Shadow.Extents,
			Near:       s.cfg.Shadow.Near,
			Far:        s.cfg.Shadow.Far,
			Distance:   s.cfg.Shadow.Distance,
			Bias:       s.cfg.Shadow.Bias,
		}),
	)
	s.shadowMapRes = int(common.Coalesce(s.cfg.Shadow.MapSize, uint32(light.ShadowMapResolution)))
	s.profiler = profiler.NewProfiler(s.logger.Named("overlay"))
	return s
}

func (s *shadowScene) Name() string {
	return s.name
}

func (s *shadowScene) WindowConfig() window.Config {
	w := s.cfg.Window
	return window.Config{
		Title:       w.Title,
		Width:       w.Width,
		Height:      w.Height,
		RefreshRate: w.RefreshRate,
		Resizable:   w.Resizable,
		Backend:     w.Backend,
	}
}

func (s *shadowScene) SetRenderer(r renderer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r = r
}

func (s *shadowScene) SetViewport(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = [2]int{width, height}
}

func (s *shadowScene) Camera() camera.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cam
}

func (s *shadowScene) Light() light.Light {
	return s.light
}

func (s *shadowScene) OverlayEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlay
}

func (s *shadowScene) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st := s.lifecycle.State(); st != StateUninitialized {
		return errors.Wrapf(ErrInvalidTransition, "initialize from %s", st)
	}
	if s.r == nil {
		return errors.New("scene: no renderer attached")
	}

	if err := s.initPipelines(); err != nil {
		s.releaseResources()
		return err
	}
	if err := s.initUniforms(); err != nil {
		s.releaseResources()
		return err
	}
	if err := s.initObjects(); err != nil {
		s.releaseResources()
		return err
	}
	s.initCamera()

	s.shadow = newShadowPass(s.globals, s.lightBGP, s.mapSlot)
	var litLight bind_group_provider.BindGroupProvider
	if s.bindsShadow {
		litLight = s.lightBGP
	}
	s.lit = newLitPass(s.globals, litLight)

	if err := s.transition(StateInitialized); err != nil {
		return err
	}
	s.logger.Info("scene initialized",
		zap.String("scene", s.name),
		zap.Int("objects", len(s.objects)),
		zap.Int("shadow_map", s.shadowMapRes),
		zap.Bool("shadow_sampled", s.bindsShadow),
	)
	return nil
}

// initPipelines builds the three shaders and registers the depth-only and lit pipelines.
func (s *shadowScene) initPipelines() error {
	pp := func() shader.PreProcessor {
		return shader.NewPreProcessor(
			shader.WithStruct("vertex", model.GPUVertexSource, model.GPUVertexType),
			shader.WithStruct("globals", GPUGlobalUniformsSource, GPUGlobalUniformsType),
			shader.WithStruct("object", model.GPUObjectUniformsSource, model.GPUObjectUniformsType),
			shader.WithStruct("light", light.GPULightUniformsSource, light.GPULightUniformsType),
		)
	}

	shadowVS, err := shader.NewShaderFromFile(s.assets, "shadow_vs", shader.StageVertex, ShadowVertexShaderPath, pp())
	if err != nil {
		return errors.Wrap(err, "shadow vertex shader")
	}
	litVS, err := shader.NewShaderFromFile(s.assets, "lit_vs", shader.StageVertex, LitVertexShaderPath, pp())
	if err != nil {
		return errors.Wrap(err, "lit vertex shader")
	}
	litFS, err := shader.NewShaderFromFile(s.assets, "lit_fs", shader.StageFragment, LitFragmentShaderPath, pp())
	if err != nil {
		return errors.Wrap(err, "lit fragment shader")
	}

	shadowPipeline := pipeline.NewPipeline(ShadowPipelineKey, pipeline.PipelineTypeDepthOnly,
		pipeline.WithVertexShader(shadowVS),
		pipeline.WithCullMode(wgpu.CullModeNone),
	)
	litPipeline := pipeline.NewPipeline(LitPipelineKey, pipeline.PipelineTypeRender,
		pipeline.WithVertexShader(litVS),
		pipeline.WithFragmentShader(litFS),
		pipeline.WithCullMode(wgpu.CullModeNone),
	)
	if err := s.r.RegisterPipelines(shadowPipeline, litPipeline); err != nil {
		return errors.Wrap(err, "register pipelines")
	}
	return nil
}

// initUniforms creates the global block and the light group that owns the shadow map.
// The light group is only bound by the lit pass when its fragment shader samples the shadow map.
func (s *shadowScene) initUniforms() error {
	lit := s.r.Pipeline(LitPipelineKey)

	globalsGroup, globalsSlot, ok := lit.Binding(globalsVarName)
	if !ok || globalsGroup != 0 {
		return errors.Errorf("lit pipeline must declare %s at group 0", globalsVarName)
	}
	s.globalsSlot = globalsSlot
	s.globals = bind_group_provider.NewBindGroupProvider("globals")
	if err := s.r.InitBindGroup(s.globals, LitPipelineKey, 0); err != nil {
		return errors.Wrap(err, "globals bind group")
	}

	s.lightBGP = bind_group_provider.NewBindGroupProvider("light")
	s.lightGroup, s.mapSlot = 2, 1
	mapGroup, mapSlot, sampled := lit.Binding(shadowMapVarName)
	if sampled {
		s.lightGroup, s.mapSlot = mapGroup, mapSlot
	}
	if err := s.r.InitShadowMap(s.lightBGP, s.mapSlot, s.shadowMapRes); err != nil {
		return errors.Wrap(err, "shadow map")
	}

	s.bindsShadow = false
	s.bindsLight = false
	if !sampled {
		s.logger.Warn("lit shader does not sample the shadow map", zap.String("binding", shadowMapVarName))
		return nil
	}

	if _, samplerSlot, ok := lit.Binding(shadowSamplerVarName); ok {
		if err := s.r.InitSampler(s.lightBGP, samplerSlot, common.ShadowSamplerData()); err != nil {
			return errors.Wrap(err, "shadow sampler")
		}
	}
	if group, slot, ok := lit.Binding(lightVarName); ok && group == s.lightGroup {
		s.lightSlot = slot
		s.bindsLight = true
	}
	if err := s.r.InitBindGroup(s.lightBGP, LitPipelineKey, s.lightGroup); err != nil {
		return errors.Wrap(err, "light bind group")
	}
	s.bindsShadow = true
	return nil
}

// initObjects loads every configured mesh and gives each object its own uniform buffer.
func (s *shadowScene) initObjects() error {
	lit := s.r.Pipeline(LitPipelineKey)
	group, slot, ok := lit.Binding(objectVarName)
	if !ok || group != 1 {
		return errors.Errorf("lit pipeline must declare %s at group 1", objectVarName)
	}
	s.objectSlot = slot

	paths := make([]string, len(s.cfg.Scene.Objects))
	for i, oc := range s.cfg.Scene.Objects {
		paths[i] = oc.Mesh
	}

	s.loader = loader.NewLoader(s.assets,
		loader.WithUploader(s.r),
		loader.WithLogger(s.logger),
	)
	meshes, err := s.loader.LoadAll(paths...)
	if err != nil {
		return errors.Wrap(err, "load meshes")
	}

	s.objects = make([]*sceneObject, 0, len(meshes))
	for i, oc := range s.cfg.Scene.Objects {
		obj := &sceneObject{
			name: oc.Name,
			mesh: meshes[i],
			transform: model.Transform{
				Scale:     oc.Scale,
				RotationY: oc.RotationY,
			},
			color:    mgl32.Vec4(s.cfg.Scene.BaseColor),
			provider: bind_group_provider.NewBindGroupProvider("object_" + oc.Name),
		}
		if err := s.r.InitBindGroup(obj.provider, LitPipelineKey, 1); err != nil {
			return errors.Wrapf(err, "object %s bind group", oc.Name)
		}
		s.objects = append(s.objects, obj)
		s.logger.Debug("object ready",
			zap.String("object", oc.Name),
			zap.Stringer("mesh_id", obj.mesh.ID()),
			zap.String("mesh", oc.Mesh),
		)
	}
	return nil
}

func (s *shadowScene) initCamera() {
	c := s.cfg.Camera
	width, height := s.viewport[0], s.viewport[1]
	if width <= 0 || height <= 0 {
		width, height = s.cfg.Window.Width, s.cfg.Window.Height
	}
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	s.cam = camera.NewCamera(
		camera.WithFov(c.FOV),
		camera.WithAspect(aspect),
		camera.WithNear(c.Near),
		camera.WithFar(c.Far),
		camera.WithController(camera.NewFlyController(
			camera.WithPosition(mgl32.Vec3(c.Position)),
			camera.WithInitialRotation(mgl32.Vec3(c.Rotation)),
			camera.WithSpeed(c.Speed),
			camera.WithSensitivity(c.Sensitivity),
		)),
	)
}

func (s *shadowScene) Tick(ctx FrameContext) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.lifecycle.State() {
	case StateInitialized:
		if err := s.transition(StateRunning); err != nil {
			s.logger.Error("scene start", zap.Error(err))
			return
		}
	case StateRunning:
	default:
		return
	}

	ctrl := s.cam.Controller()
	ctrl.Update(ctx.DeltaMillis, ctx.MouseDeltaX, ctx.MouseDeltaY)
	s.cam.Update()

	globals := NewGPUGlobalUniforms(s.cam.ViewProjectionMatrix(), s.light.ViewProjection(), ctrl.Position())
	s.writes = append(s.writes[:0], bind_group_provider.NewBufferWrite(s.globals, s.globalsSlot, &globals))
	for _, obj := range s.objects {
		s.writes = append(s.writes, bind_group_provider.NewBufferWrite(obj.provider, s.objectSlot, obj.uniforms()))
	}
	if s.bindsLight {
		lu := light.NewGPULightUniforms(s.light)
		s.writes = append(s.writes, bind_group_provider.NewBufferWrite(s.lightBGP, s.lightSlot, &lu))
	}
	s.r.WriteBuffers(s.writes)

	if err := s.shadow.Render(s.r, s.objects); err != nil {
		s.logger.Error("shadow pass", zap.Error(err), zap.Uint64("frame", ctx.FrameIndex))
	}
	if !s.restoreLightGroup() {
		s.logger.Warn("lit pass skipped", zap.String("reason", "no light bind group"), zap.Uint64("frame", ctx.FrameIndex))
	} else if err := s.lit.Render(s.r, s.objects); err != nil {
		s.logger.Warn("lit pass", zap.Error(err), zap.Uint64("frame", ctx.FrameIndex))
	}

	if s.overlay {
		pos := ctrl.Position()
		dir := s.light.Direction()
		s.profiler.Tick(
			zap.Float32s("camera_position", pos[:]),
			zap.Float32("camera_yaw", ctrl.Yaw()),
			zap.Float32("camera_pitch", ctrl.Pitch()),
			zap.Float32s("light_direction", dir[:]),
			zap.Float32("shadow_bias", s.light.Bias()),
		)
	}
}

// restoreLightGroup rebuilds the lit pass's group 2 after a failed resize.
// It reports whether the lit pass can draw this frame.
func (s *shadowScene) restoreLightGroup() bool {
	if !s.bindsShadow || s.lit.light != nil {
		return true
	}
	if err := s.r.InitBindGroup(s.lightBGP, LitPipelineKey, s.lightGroup); err != nil {
		s.logger.Debug("light bind group still missing", zap.Error(err))
		return false
	}
	s.lit.light = s.lightBGP
	s.logger.Info("light bind group restored")
	return true
}

func (s *shadowScene) OnKey(keyCode uint32, action common.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keyCode == common.KeyG {
		if action == common.ActionPress {
			s.overlay = !s.overlay
			s.profiler.Reset()
			s.logger.Info("debug overlay", zap.Bool("enabled", s.overlay))
		}
		return
	}
	if s.cam != nil {
		s.cam.Controller().HandleKey(keyCode, action)
	}
}

func (s *shadowScene) OnMouse(button int, action common.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cam != nil {
		s.cam.Controller().HandleMouseButton(button, action)
	}
}

func (s *shadowScene) OnResize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}
	if st := s.lifecycle.State(); st != StateInitialized && st != StateRunning {
		return
	}

	s.r.Resize(width, height)
	s.cam.SetAspect(float32(width) / float32(height))

	// The shadow map size is fixed; it is rebuilt so the bind group never outlives a resize.
	if err := s.r.InitShadowMap(s.lightBGP, s.mapSlot, s.shadowMapRes); err != nil {
		s.logger.Error("recreate shadow map", zap.Error(err))
		return
	}
	if s.bindsShadow {
		if err := s.r.InitBindGroup(s.lightBGP, LitPipelineKey, s.lightGroup); err != nil {
			// The old group points at the released shadow map; the lit pass waits until it is rebuilt.
			s.lit.light = nil
			s.logger.Error("recreate light bind group", zap.Error(err))
			return
		}
	}
	s.logger.Debug("resized", zap.Int("width", width), zap.Int("height", height))
}

func (s *shadowScene) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.transition(StateShuttingDown); err != nil {
		s.logger.Warn("dispose", zap.Error(err))
		return
	}
	s.releaseResources()
	s.logger.Info("scene disposed", zap.String("scene", s.name))
}

// releaseResources frees every GPU handle the scene created. Safe on partial setup.
func (s *shadowScene) releaseResources() {
	for _, obj := range s.objects {
		obj.provider.Release()
	}
	s.objects = nil
	if s.loader != nil {
		for _, m := range s.loader.Meshes() {
			if mp := m.MeshProvider(); mp != nil {
				mp.Release()
			}
		}
		s.loader = nil
	}
	if s.globals != nil {
		s.globals.Release()
		s.globals = nil
	}
	if s.lightBGP != nil {
		s.lightBGP.Release()
		s.lightBGP = nil
	}
}
