package core

import "fmt"

// QueueFamilyIndices holds the queue family indices discovered on a
// physical device. Graphics stays nil until a graphics capable family is
// found.
type QueueFamilyIndices struct {
	Graphics *uint32
}

// Complete reports whether every required family was found.
func (q QueueFamilyIndices) Complete() bool {
	return q.Graphics != nil
}

// FindQueueFamilies scans the device's queue family table in driver
// order and records the index of the first family whose flags include
// graphics. The scan stops at the first match, later qualifying families
// are never observed.
func FindQueueFamilies(dev PhysicalDevice) (QueueFamilyIndices, error) {
	families, err := dev.QueueFamilies()
	if err != nil {
		return QueueFamilyIndices{}, fmt.Errorf("queue family enumeration: %w", err)
	}
	var indices QueueFamilyIndices
	for i, family := range families {
		if family.Flags&QueueGraphics != 0 {
			idx := uint32(i)
			indices.Graphics = &idx
			break
		}
	}
	return indices, nil
}

// deviceSuitable is the suitability predicate: a device qualifies iff it
// exposes at least one graphics capable queue family. Intentionally
// minimal, richer scoring (discrete GPU preference, memory thresholds)
// would slot in here.
func deviceSuitable(dev PhysicalDevice) (bool, error) {
	indices, err := FindQueueFamilies(dev)
	if err != nil {
		return false, err
	}
	return indices.Complete(), nil
}

// SelectPhysicalDevice enumerates the accelerators visible through the
// instance and picks the first suitable one, in driver reported order.
// First match wins, devices after it are not probed.
func SelectPhysicalDevice(instance Instance) (PhysicalDevice, error) {
	devices, err := instance.PhysicalDevices()
	if err != nil {
		return nil, fmt.Errorf("device enumeration: %w", err)
	}
	if len(devices) == 0 {
		return nil, ErrNoDeviceFound
	}
	for _, dev := range devices {
		ok, err := deviceSuitable(dev)
		if err != nil {
			return nil, err
		}
		if ok {
			return dev, nil
		}
	}
	return nil, ErrNoSuitableDevice
}
