package gpuadapter

import (
	"testing"

	"github.com/gogpu/wgpu/core"

	"github.com/gogpu/cdlod/gpucore"
)

func newTestAdapter() *WGPUAdapter {
	return &WGPUAdapter{
		initialized:      true,
		buffers:          make(map[gpucore.BufferID]*bufferEntry),
		bindGroupLayouts: make(map[gpucore.BindGroupLayoutID]*bindGroupLayoutEntry),
		pipelineLayouts:  make(map[gpucore.PipelineLayoutID]*pipelineLayoutEntry),
		computePipelines: make(map[gpucore.ComputePipelineID]*computePipelineEntry),
		renderPipelines:  make(map[gpucore.RenderPipelineID]*renderPipelineEntry),
		bindGroups:       make(map[gpucore.BindGroupID]*bindGroupEntry),
		shaderHandles:    make(map[gpucore.ShaderModuleID]core.ShaderModuleID),
	}
}

func TestCreateBindGroupLayoutNilDesc(t *testing.T) {
	a := newTestAdapter()
	if _, err := a.CreateBindGroupLayout(nil); err == nil {
		t.Error("CreateBindGroupLayout(nil) should error")
	}
}

func TestCreatePipelineLayoutUnknownBindGroupLayout(t *testing.T) {
	a := newTestAdapter()
	if _, err := a.CreatePipelineLayout([]gpucore.BindGroupLayoutID{999}); err == nil {
		t.Error("CreatePipelineLayout() with an unregistered layout should error")
	}
}

func TestCreateComputePipelineUnknownLayout(t *testing.T) {
	a := newTestAdapter()
	desc := &gpucore.ComputePipelineDesc{Layout: 999, ShaderModule: 1}
	if _, err := a.CreateComputePipeline(desc); err == nil {
		t.Error("CreateComputePipeline() with an unregistered layout should error")
	}
}

func TestCreateComputePipelineUnknownShader(t *testing.T) {
	a := newTestAdapter()
	a.pipelineLayouts[1] = &pipelineLayoutEntry{}
	desc := &gpucore.ComputePipelineDesc{Layout: 1, ShaderModule: 999}
	if _, err := a.CreateComputePipeline(desc); err == nil {
		t.Error("CreateComputePipeline() with an unregistered shader module should error")
	}
}

func TestCreateBindGroupUnknownLayout(t *testing.T) {
	a := newTestAdapter()
	desc := &gpucore.BindGroupDesc{Layout: 999}
	if _, err := a.CreateBindGroup(desc); err == nil {
		t.Error("CreateBindGroup() with an unregistered layout should error")
	}
}

func TestDestroyBindGroupLayoutIsIdempotent(t *testing.T) {
	a := newTestAdapter()
	a.DestroyBindGroupLayout(1)
	a.DestroyBindGroupLayout(1)
}

func TestToWGPUTopologyDefaultsToTriangleList(t *testing.T) {
	want := toWGPUTopology(gpucore.PrimitiveTopologyTriangleList)
	if got := toWGPUTopology(gpucore.PrimitiveTopology(99)); got != want {
		t.Errorf("toWGPUTopology() with an unknown topology should default to triangle list, got %v, want %v", got, want)
	}
}
