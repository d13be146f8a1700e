package gpuadapter

import "testing"

const testComputeWGSL = `
@group(0) @binding(0)
var<storage, read_write> data: array<f32>;

@compute @workgroup_size(64)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
	data[id.x] = data[id.x] * 2.0;
}
`

func TestCompileWGSLProducesSPIRV(t *testing.T) {
	spirv, err := CompileWGSL(testComputeWGSL)
	if err != nil {
		t.Fatalf("CompileWGSL: %v", err)
	}
	if len(spirv) == 0 {
		t.Fatal("expected a non-empty SPIR-V word stream")
	}
}

func TestCompileWGSLRejectsInvalidSource(t *testing.T) {
	_, err := CompileWGSL("this is not a shader")
	if err == nil {
		t.Fatal("expected an error compiling invalid WGSL")
	}
}
