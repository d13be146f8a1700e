package gpuadapter

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"
	wgputypes "github.com/gogpu/wgpu/types"

	"github.com/gogpu/cdlod/gpucore"
)

// BackendName identifies this adapter implementation.
const BackendName = "wgpu"

// WGPUAdapter implements gpucore.Adapter over a real WebGPU device.
//
// It owns the instance, adapter, device, and queue handles and records
// every resource it creates in per-kind maps. Close releases only the
// device and the adapter; the resources in those maps are not destroyed
// one by one.
type WGPUAdapter struct {
	mu sync.RWMutex

	instance *core.Instance
	adapter  core.AdapterID
	device   core.DeviceID
	queue    core.QueueID

	caps        gpucore.AdapterCapabilities
	initialized bool

	logger *slog.Logger

	buffers       map[gpucore.BufferID]*bufferEntry
	textures      map[gpucore.TextureID]*textureEntry
	views         map[gpucore.TextureViewID]*viewEntry
	samplers      map[gpucore.SamplerID]struct{}
	shaderHandles map[gpucore.ShaderModuleID]core.ShaderModuleID

	bindGroupLayouts map[gpucore.BindGroupLayoutID]*bindGroupLayoutEntry
	pipelineLayouts  map[gpucore.PipelineLayoutID]*pipelineLayoutEntry
	computePipelines map[gpucore.ComputePipelineID]*computePipelineEntry
	renderPipelines  map[gpucore.RenderPipelineID]*renderPipelineEntry
	bindGroups       map[gpucore.BindGroupID]*bindGroupEntry

	nextID   uint64
	uniforms *uniformRing

	pendingEncoder core.CommandEncoderID
}

// Options configures WGPUAdapter construction.
type Options struct {
	// Label names the device for debugging.
	Label string

	// UniformRingSize bounds the per-frame dynamic uniform allocator
	// (§6 "a dynamic-uniform allocator returning (pointer, offset) pairs
	// valid for the frame"). Defaults to 1 MiB.
	UniformRingSize uint64

	// Logger overrides the package logger for this adapter instance.
	Logger *slog.Logger
}

// New creates and initializes a WGPUAdapter: instance, adapter, device,
// and queue acquisition, mirroring the teacher's Backend.Init sequence.
func New(opts Options) (*WGPUAdapter, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	a := &WGPUAdapter{
		logger:           logger,
		buffers:          make(map[gpucore.BufferID]*bufferEntry),
		textures:         make(map[gpucore.TextureID]*textureEntry),
		views:            make(map[gpucore.TextureViewID]*viewEntry),
		samplers:         make(map[gpucore.SamplerID]struct{}),
		shaderHandles:    make(map[gpucore.ShaderModuleID]core.ShaderModuleID),
		bindGroupLayouts: make(map[gpucore.BindGroupLayoutID]*bindGroupLayoutEntry),
		pipelineLayouts:  make(map[gpucore.PipelineLayoutID]*pipelineLayoutEntry),
		computePipelines: make(map[gpucore.ComputePipelineID]*computePipelineEntry),
		renderPipelines:  make(map[gpucore.RenderPipelineID]*renderPipelineEntry),
		bindGroups:       make(map[gpucore.BindGroupID]*bindGroupEntry),
	}

	desc := &gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
		Flags:    0,
	}
	a.instance = core.NewInstance(desc)

	adapterID, err := a.instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoGPU, err)
	}
	a.adapter = adapterID

	label := opts.Label
	if label == "" {
		label = "cdlod-device"
	}
	deviceID, err := createDevice(adapterID, label)
	if err != nil {
		return nil, fmt.Errorf("gpuadapter: device creation failed: %w", err)
	}
	a.device = deviceID

	queueID, err := getDeviceQueue(deviceID)
	if err != nil {
		_ = releaseDevice(deviceID)
		return nil, fmt.Errorf("gpuadapter: queue retrieval failed: %w", err)
	}
	a.queue = queueID

	ringSize := opts.UniformRingSize
	if ringSize == 0 {
		ringSize = 1 << 20
	}
	a.uniforms = newUniformRing(ringSize)

	ringBufferHandle, err := core.CreateBuffer(a.device, &wgputypes.BufferDescriptor{
		Size:  ringSize,
		Usage: wgputypes.BufferUsageUniform | wgputypes.BufferUsageCopyDst,
	})
	if err != nil {
		_ = releaseDevice(deviceID)
		return nil, fmt.Errorf("gpuadapter: uniform ring buffer creation failed: %w", err)
	}
	a.nextID++
	ringBufferID := gpucore.BufferID(a.nextID)
	a.buffers[ringBufferID] = &bufferEntry{handle: ringBufferHandle, size: int(ringSize), usage: gpucore.BufferUsageUniform | gpucore.BufferUsageCopyDst}
	a.uniforms.buffer = ringBufferID

	a.caps = gpucore.AdapterCapabilities{
		SupportsCompute:                  true,
		MaxWorkgroupSizeX:                256,
		MaxWorkgroupSizeY:                256,
		MaxWorkgroupSizeZ:                64,
		MaxWorkgroupInvocations:          1024,
		MaxBufferSize:                    1 << 30,
		MaxStorageBufferBindingSize:      1 << 30,
		MaxComputeWorkgroupsPerDimension: 65535,
	}

	a.initialized = true
	logger.Info("gpuadapter: device initialized", "label", label)
	return a, nil
}

// Close releases all backend resources. The adapter must not be used
// afterwards.
func (a *WGPUAdapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return nil
	}

	if !a.device.IsZero() {
		if err := releaseDevice(a.device); err != nil {
			a.logger.Warn("gpuadapter: error releasing device", "err", err)
		}
		a.device = core.DeviceID{}
	}
	if !a.adapter.IsZero() {
		if err := releaseAdapter(a.adapter); err != nil {
			a.logger.Warn("gpuadapter: error releasing adapter", "err", err)
		}
		a.adapter = core.AdapterID{}
	}

	a.instance = nil
	a.queue = core.QueueID{}
	a.initialized = false
	return nil
}

func (a *WGPUAdapter) SupportsCompute() bool { return a.caps.SupportsCompute }

func (a *WGPUAdapter) MaxWorkgroupSize() [3]uint32 {
	return [3]uint32{a.caps.MaxWorkgroupSizeX, a.caps.MaxWorkgroupSizeY, a.caps.MaxWorkgroupSizeZ}
}

func (a *WGPUAdapter) MaxBufferSize() uint64 { return a.caps.MaxBufferSize }

func (a *WGPUAdapter) nextResourceID() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextID++
	return a.nextID
}

var _ gpucore.Adapter = (*WGPUAdapter)(nil)
