//go:build !nogpu

package gpu

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/curve.wgsl
var curveShaderSource string

// compileCurveShader compiles the curve shader from WGSL to SPIR-V words.
func compileCurveShader() ([]uint32, error) {
	if curveShaderSource == "" {
		return nil, errors.New("curve shader source is empty")
	}
	spirvBytes, err := naga.Compile(curveShaderSource)
	if err != nil {
		return nil, fmt.Errorf("compile curve shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile curve shader: SPIR-V length %d is not word aligned", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}

// createCurveShaderModule compiles the curve shader and loads it on device.
func createCurveShaderModule(device hal.Device) (hal.ShaderModule, error) {
	code, err := compileCurveShader()
	if err != nil {
		return nil, err
	}
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "curve_shader",
		Source: hal.ShaderSource{SPIRV: code},
	})
}
