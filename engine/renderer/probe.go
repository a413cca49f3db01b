package renderer

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrUnsupportedEnvironment reports that no GPU adapter capable of running the viewer exists.
var ErrUnsupportedEnvironment = errors.New("unsupported environment: no compatible GPU adapter")

// Probe checks that a WebGPU adapter can be obtained before any window or renderer is built,
// so an unsupported machine gets a clear message instead of a crash during setup.
//
// Parameters:
//   - forceFallbackAdapter: probe for the software fallback adapter instead of hardware
//
// Returns:
//   - error: nil when an adapter is available, otherwise an error wrapping ErrUnsupportedEnvironment
func Probe(forceFallbackAdapter bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrUnsupportedEnvironment, r)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	if instance == nil {
		return ErrUnsupportedEnvironment
	}
	defer instance.Release()

	adapter, reqErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
	})
	if reqErr != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedEnvironment, reqErr)
	}
	if adapter == nil {
		return ErrUnsupportedEnvironment
	}
	adapter.Release()
	return nil
}
