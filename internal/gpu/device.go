//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// ErrNoAdapter is returned when a backend exposes no GPU adapter.
var ErrNoAdapter = errors.New("no GPU adapters found")

// Device is a standalone HAL device opened for headless rendering, when no
// window host shares its device.
type Device struct {
	instance hal.Instance

	Device hal.Device
	Queue  hal.Queue
	Name   string
}

// OpenVulkan opens a device on the Vulkan backend, preferring a discrete
// or integrated GPU over software adapters.
func OpenVulkan() (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("vulkan backend not available")
	}
	return openDevice(backend)
}

func openDevice(backend hal.Backend) (*Device, error) {
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}
	slogger().Info("curveview/gpu: device opened", "adapter", selected.Info.Name)
	return &Device{
		instance: instance,
		Device:   openDev.Device,
		Queue:    openDev.Queue,
		Name:     selected.Info.Name,
	}, nil
}

// Close destroys the device and its instance. Safe to call more than once.
func (d *Device) Close() {
	if d.Device != nil {
		d.Device.Destroy()
		d.Device = nil
		d.Queue = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}
