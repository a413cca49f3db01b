package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/camera"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/light"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/model"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/renderer/material"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene_object"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/rs/zerolog"
)

// FrameStats summarizes the last drawn frame across all views.
type FrameStats struct {
	// Objects is the number of visible objects with geometry.
	Objects int
	// Draws is the number of draw calls issued, counting each view separately.
	Draws int
	// Culled is the number of object/view pairs skipped by frustum culling.
	Culled int
}

// objectResources tracks the GPU state of one scene object.
type objectResources struct {
	provider bind_group_provider.BindGroupProvider
	mesh     *model.Mesh
	ready    bool
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu      *sync.Mutex
	logger  zerolog.Logger
	backend RendererBackend

	pipelineCache map[string]pipeline.Pipeline
	layouts       []*wgpu.BindGroupLayout
	layoutDescs   []wgpu.BindGroupLayoutDescriptor

	objects map[string]*objectResources
	views   []bind_group_provider.BindGroupProvider
	stats   FrameStats

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           *common.Color
}

// Renderer draws the scene registry once per view of the rig. Each view gets its own viewport
// and scissor rectangle and its own frustum cull; opaque objects are drawn first and transparent
// ones after them, far to near. GPU buffers for an object are created the first frame it appears
// in the registry and released the first frame after it is removed.
type Renderer interface {
	// Resize reconfigures the surface after the framebuffer size changes.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Draw renders one frame.
	//
	// Parameters:
	//   - registry: the scene to draw
	//   - rig: the views to draw it into
	//   - key: the key light
	//
	// Returns:
	//   - error: an error if the frame could not be acquired; the frame is skipped
	Draw(registry scene.Registry, rig camera.ViewRig, key light.Light) error

	// Pipeline retrieves a registered pipeline by key, or nil.
	//
	// Parameters:
	//   - key: PipelineKeyOpaque or PipelineKeyTransparent
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline or nil
	Pipeline(key string) pipeline.Pipeline

	// Stats returns counters from the last drawn frame.
	Stats() FrameStats

	// Close releases every GPU resource.
	Close()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing into the window's surface and registers the flat
// shading pipelines.
//
// Parameters:
//   - backendType: the type of rendering backend to use
//   - win: the window providing the surface and its initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the renderer
//   - error: an error wrapping ErrUnsupportedEnvironment when no GPU is usable, or a pipeline error
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(options...)

	var backend RendererBackend
	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		backend, err = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
	}
	if err != nil {
		return nil, err
	}
	if err := r.init(backend, win.Width(), win.Height()); err != nil {
		backend.Release()
		return nil, err
	}
	return r, nil
}

func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		logger:        zerolog.Nop(),
		pipelineCache: make(map[string]pipeline.Pipeline),
		objects:       make(map[string]*objectResources),
		presentMode:   PresentModeVSync,
		msaa:          MSAA4x,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// init configures the surface and registers the pipelines on a created backend.
func (r *renderer) init(backend RendererBackend, width, height int) error {
	r.backend = backend
	r.backend.SetPresentMode(r.presentMode)
	if r.clearColor != nil {
		r.backend.SetClearColor(*r.clearColor)
	}
	r.backend.ConfigureSurface(width, height)

	r.layoutDescs = flatBindGroupLayouts()
	layouts, err := r.backend.CreateBindGroupLayouts(r.layoutDescs)
	if err != nil {
		return err
	}
	r.layouts = layouts

	opaque, transparent := flatPipelines()
	for _, p := range []pipeline.Pipeline{opaque, transparent} {
		if err := r.backend.RegisterRenderPipeline(p, r.layouts); err != nil {
			return fmt.Errorf("register pipeline %q: %w", p.PipelineKey(), err)
		}
		r.pipelineCache[p.PipelineKey()] = p
	}
	return nil
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Stats() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *renderer) Draw(registry scene.Registry, rig camera.ViewRig, key light.Light) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.syncObjects(registry.Objects())
	r.syncViews(rig.Len())

	drawables := collectDrawables(registry)
	writes := make([]bind_group_provider.BufferWrite, 0, len(drawables)+2*rig.Len())
	for _, d := range drawables {
		res := r.objects[d.object.ID()]
		if res == nil || !res.ready {
			continue
		}
		params := material.NewGPUObjectParams(d.object, d.world)
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: res.provider,
			Binding:  bindingObjectParams,
			Data:     params.Marshal(),
		})
	}

	var gpuLight light.GPULight
	if key != nil {
		gpuLight = key.GPU()
	} else {
		gpuLight = light.NewLight().GPU()
	}
	lightBytes := gpuLight.Marshal()
	for i, v := range rig.Views() {
		params := material.NewGPUViewParams(v.Camera.ViewProjectionMatrix(), v.Camera.Position())
		writes = append(writes,
			bind_group_provider.BufferWrite{Provider: r.views[i], Binding: bindingViewParams, Data: params.Marshal()},
			bind_group_provider.BufferWrite{Provider: r.views[i], Binding: bindingLight, Data: lightBytes},
		)
	}
	r.backend.WriteBuffers(writes)

	if err := r.backend.BeginFrame(); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}

	opaquePipeline := r.pipelineCache[PipelineKeyOpaque]
	transparentPipeline := r.pipelineCache[PipelineKeyTransparent]
	width, height := rig.Size()
	stats := FrameStats{Objects: len(drawables)}
	for i, v := range rig.Views() {
		x, y, w, h := v.Viewport.Pixels(width, height)
		if w <= 0 || h <= 0 {
			continue
		}
		r.backend.SetViewport(x, y, w, h)

		opaque, transparent, culled := cullView(drawables, v.Camera.ViewProjectionMatrix(), v.Camera.Position())
		stats.Culled += culled
		stats.Draws += r.drawList(opaquePipeline, r.views[i], opaque)
		stats.Draws += r.drawList(transparentPipeline, r.views[i], transparent)
	}

	r.backend.EndFrame()
	r.backend.Present()
	r.stats = stats
	return nil
}

func (r *renderer) drawList(p pipeline.Pipeline, view bind_group_provider.BindGroupProvider, list []drawable) int {
	draws := 0
	for _, d := range list {
		res := r.objects[d.object.ID()]
		if res == nil || !res.ready {
			continue
		}
		r.backend.DrawCall(p, res.provider, []bind_group_provider.BindGroupProvider{view, res.provider})
		draws++
	}
	return draws
}

// syncObjects uploads meshes for new objects and releases the resources of removed ones.
// An object whose upload fails is remembered so the upload is not retried every frame.
func (r *renderer) syncObjects(objects []scene_object.SceneObject) {
	seen := make(map[string]struct{}, len(objects))
	for _, obj := range objects {
		seen[obj.ID()] = struct{}{}
		mesh := obj.Mesh()
		if res, ok := r.objects[obj.ID()]; ok && res.mesh == mesh {
			continue
		} else if ok {
			res.provider.Release()
			delete(r.objects, obj.ID())
		}
		if mesh.Empty() {
			continue
		}

		res := &objectResources{
			provider: bind_group_provider.NewBindGroupProvider(obj.ID()),
			mesh:     mesh,
		}
		r.objects[obj.ID()] = res

		indexData, indexCount := mesh.IndexBytes()
		if err := r.backend.InitMeshBuffers(res.provider, mesh.VertexBytes(), indexData, indexCount); err != nil {
			r.logger.Error().Err(err).Str("object", obj.ID()).Msg("failed to upload mesh")
			continue
		}
		if err := r.backend.InitBindGroup(res.provider, r.layouts[groupObject], r.layoutDescs[groupObject]); err != nil {
			r.logger.Error().Err(err).Str("object", obj.ID()).Msg("failed to create object bind group")
			continue
		}
		res.ready = true
	}

	for id, res := range r.objects {
		if _, ok := seen[id]; !ok {
			res.provider.Release()
			delete(r.objects, id)
		}
	}
}

// syncViews keeps one view bind group per rig view.
func (r *renderer) syncViews(n int) {
	for len(r.views) < n {
		p := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("view %d", len(r.views)))
		if err := r.backend.InitBindGroup(p, r.layouts[groupView], r.layoutDescs[groupView]); err != nil {
			r.logger.Error().Err(err).Int("view", len(r.views)).Msg("failed to create view bind group")
		}
		r.views = append(r.views, p)
	}
}

func (r *renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, res := range r.objects {
		res.provider.Release()
		delete(r.objects, id)
	}
	for _, v := range r.views {
		v.Release()
	}
	r.views = nil
	for _, l := range r.layouts {
		if l != nil {
			l.Release()
		}
	}
	r.layouts = nil
	if r.backend != nil {
		r.backend.Release()
	}
}
