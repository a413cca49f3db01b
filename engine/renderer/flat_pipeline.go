package renderer

import (
	_ "embed"

	"github.com/Carmen-Shannon/anatomy-viewer/engine/light"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/renderer/material"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// Pipeline cache keys.
const (
	PipelineKeyOpaque      = "flat_opaque"
	PipelineKeyTransparent = "flat_transparent"
)

// Bind group indices and bindings used by the flat shader.
const (
	groupView   = 0
	groupObject = 1

	bindingViewParams   = 0
	bindingLight        = 1
	bindingObjectParams = 0
)

//go:embed assets/flat.wgsl
var flatShaderBody string

// flatShaderSource is the full flat shader: the canonical uniform structs followed by the stages.
var flatShaderSource = material.GPUViewParamsSource + light.GPULightSource + material.GPUObjectParamsSource + flatShaderBody

// flatBindGroupLayouts describes group 0 (per view: camera and light) and group 1 (per object).
func flatBindGroupLayouts() []wgpu.BindGroupLayoutDescriptor {
	var view material.GPUViewParams
	var obj material.GPUObjectParams
	var key light.GPULight
	return []wgpu.BindGroupLayoutDescriptor{
		groupView: {
			Label: "View Params",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    bindingViewParams,
					Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
					Buffer: wgpu.BufferBindingLayout{
						Type:           wgpu.BufferBindingTypeUniform,
						MinBindingSize: uint64(view.Size()),
					},
				},
				{
					Binding:    bindingLight,
					Visibility: wgpu.ShaderStageFragment,
					Buffer: wgpu.BufferBindingLayout{
						Type:           wgpu.BufferBindingTypeUniform,
						MinBindingSize: uint64(key.Size()),
					},
				},
			},
		},
		groupObject: {
			Label: "Object Params",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    bindingObjectParams,
					Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
					Buffer: wgpu.BufferBindingLayout{
						Type:           wgpu.BufferBindingTypeUniform,
						MinBindingSize: uint64(obj.Size()),
					},
				},
			},
		},
	}
}

// flatPipelines builds the opaque and the transparent variant of the flat pipeline. The
// transparent variant blends and leaves depth untouched so objects behind it stay visible.
func flatPipelines() (opaque, transparent pipeline.Pipeline) {
	layouts := flatBindGroupLayouts()
	vertex := wgpu.VertexBufferLayout{
		ArrayStride: 12,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		},
	}
	shared := []pipeline.PipelineBuilderOption{
		pipeline.WithSource(flatShaderSource, "vs_main", "fs_main"),
		pipeline.WithBindGroupLayouts(layouts...),
		pipeline.WithVertexLayouts(vertex),
	}
	opaque = pipeline.NewPipeline(PipelineKeyOpaque, shared...)
	transparent = pipeline.NewPipeline(PipelineKeyTransparent, append(shared,
		pipeline.WithBlendEnabled(true),
		pipeline.WithDepthWriteEnabled(false),
	)...)
	return opaque, transparent
}
