package gpuadapter

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/core"
	"github.com/gogpu/wgpu/types"

	"github.com/gogpu/cdlod/gpucore"
)

// CompileWGSL translates WGSL shader source into the SPIR-V word stream
// CreateShaderModule expects. It lets a caller that only has the clipmap,
// atlas-preprocess, or mip-build shaders as WGSL text (rather than
// pre-baked SPIR-V) still populate an atlas.ShaderSet/clipmap.ShaderSet
// without shelling out to a separate build step.
func CompileWGSL(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("gpuadapter: compile WGSL: %w", err)
	}

	spirv := make([]uint32, len(spirvBytes)/4)
	for i := range spirv {
		spirv[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirv, nil
}

// CreateShaderModule compiles a SPIR-V module produced by naga from the
// offline-compiled WGSL shader sources the shader collaborator owns (the
// core itself only consumes compiled modules).
func (a *WGPUAdapter) CreateShaderModule(spirv []uint32, label string) (gpucore.ShaderModuleID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return 0, ErrNotInitialized
	}
	if len(spirv) == 0 {
		return 0, fmt.Errorf("gpuadapter: empty shader module %q", label)
	}

	handle, err := core.CreateShaderModule(a.device, &types.ShaderModuleDescriptor{
		Label: label,
		Code:  spirv,
	})
	if err != nil {
		return 0, fmt.Errorf("gpuadapter: compile shader %q: %w", label, err)
	}

	a.nextID++
	id := gpucore.ShaderModuleID(a.nextID)
	a.shaderHandles[id] = handle
	return id, nil
}

// DestroyShaderModule releases a compiled shader module.
func (a *WGPUAdapter) DestroyShaderModule(id gpucore.ShaderModuleID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.shaderHandles, id)
}
