package core

import "fmt"

// MaterializeDevice creates the logical device on gpu with a single
// queue in the family recorded by indices, then retrieves the queue at
// slot 0. No optional features are requested. The indices must be
// complete, the orchestrator only gets here after the suitability check
// passed.
func MaterializeDevice(gpu PhysicalDevice, indices QueueFamilyIndices, cfg InstanceConfiguration) (Device, Queue, error) {
	if !indices.Complete() {
		return nil, nil, fmt.Errorf("%w: queue family indices incomplete", ErrDeviceCreationFailed)
	}

	opts := DeviceOptions{
		QueueFamily: *indices.Graphics,
	}
	if cfg.Diagnostics {
		// Legacy dual level layer enablement: the layers validated for
		// the instance are re-asserted on the device, and portability
		// exposed devices need the subset extension enabled.
		opts.Extensions = append(opts.Extensions, ExtPortabilitySubset)
		opts.Layers = append(opts.Layers, cfg.Layers...)
	}

	device, err := gpu.CreateDevice(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDeviceCreationFailed, err)
	}

	queue, err := device.Queue(0)
	if err != nil {
		device.Destroy()
		return nil, nil, fmt.Errorf("%w: queue retrieval: %v", ErrDeviceCreationFailed, err)
	}
	return device, queue, nil
}
