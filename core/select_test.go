package core_test

import (
	"errors"
	"testing"

	"github.com/vantage3d/vantage/core"
)

func TestFindQueueFamiliesFirstMatchWins(t *testing.T) {
	dev := &fakePhysicalDevice{families: []core.QueueFamily{
		computeFamily(),
		graphicsFamily(),
		graphicsFamily(),
	}}

	indices, err := core.FindQueueFamilies(dev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !indices.Complete() {
		t.Fatal("expected a graphics family to be found")
	}
	if *indices.Graphics != 1 {
		t.Fatalf("expected first matching family 1, got %d", *indices.Graphics)
	}
}

func TestFindQueueFamiliesIncomplete(t *testing.T) {
	dev := &fakePhysicalDevice{families: []core.QueueFamily{
		computeFamily(),
		{Flags: core.QueueTransfer, Queues: 2},
	}}

	indices, err := core.FindQueueFamilies(dev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if indices.Complete() {
		t.Fatal("expected no graphics family on a compute only device")
	}
}

func TestFindQueueFamiliesEmptyTable(t *testing.T) {
	dev := &fakePhysicalDevice{}
	indices, err := core.FindQueueFamilies(dev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if indices.Complete() {
		t.Fatal("expected incomplete indices for an empty family table")
	}
}

func TestSelectPhysicalDeviceZeroDevices(t *testing.T) {
	inst := &fakeInstance{}

	_, err := core.SelectPhysicalDevice(inst)
	if !errors.Is(err, core.ErrNoDeviceFound) {
		t.Fatalf("expected ErrNoDeviceFound, got %v", err)
	}
}

func TestSelectPhysicalDeviceEarlyExit(t *testing.T) {
	unsuitable := &fakePhysicalDevice{name: "igpu", families: []core.QueueFamily{computeFamily()}}
	first := &fakePhysicalDevice{name: "dgpu-0", families: []core.QueueFamily{graphicsFamily()}}
	second := &fakePhysicalDevice{name: "dgpu-1", families: []core.QueueFamily{graphicsFamily()}}
	inst := &fakeInstance{devices: []*fakePhysicalDevice{unsuitable, first, second}}

	dev, err := core.SelectPhysicalDevice(inst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dev.Name() != "dgpu-0" {
		t.Fatalf("expected the first suitable device, got %q", dev.Name())
	}
	if second.probes != 0 {
		t.Fatalf("device after the first match must not be probed, got %d probes", second.probes)
	}
}

func TestSelectPhysicalDeviceNoneSuitable(t *testing.T) {
	inst := &fakeInstance{devices: []*fakePhysicalDevice{
		{families: []core.QueueFamily{computeFamily()}},
		{families: []core.QueueFamily{computeFamily()}},
	}}

	_, err := core.SelectPhysicalDevice(inst)
	if !errors.Is(err, core.ErrNoSuitableDevice) {
		t.Fatalf("expected ErrNoSuitableDevice, got %v", err)
	}
}

func TestSelectPhysicalDeviceEnumerationError(t *testing.T) {
	boom := errors.New("driver lost")
	inst := &fakeInstance{enumErr: boom}

	_, err := core.SelectPhysicalDevice(inst)
	if !errors.Is(err, boom) {
		t.Fatalf("expected enumeration error to propagate, got %v", err)
	}
}
