package core_test

import (
	"github.com/vantage3d/vantage/core"
)

// The fakes stand in for the driver and the window system, recording
// lifecycle events into a shared log so order laws can be asserted.

type eventLog struct {
	events []string
}

func (l *eventLog) record(event string) {
	if l != nil {
		l.events = append(l.events, event)
	}
}

type fakeDriver struct {
	layers    []string
	layersErr error
	instance  *fakeInstance
	createErr error

	lastOptions *core.InstanceOptions
}

func (d *fakeDriver) InstalledLayers() ([]string, error) {
	return d.layers, d.layersErr
}

func (d *fakeDriver) CreateInstance(opts core.InstanceOptions) (core.Instance, error) {
	d.lastOptions = &opts
	if d.createErr != nil {
		return nil, d.createErr
	}
	d.instance.created = true
	return d.instance, nil
}

type fakeInstance struct {
	log *eventLog

	devices    []*fakePhysicalDevice
	enumErr    error
	capability *fakeCapability

	created    bool
	enumerated bool
	destroyed  bool
}

func (i *fakeInstance) PhysicalDevices() ([]core.PhysicalDevice, error) {
	i.enumerated = true
	if i.enumErr != nil {
		return nil, i.enumErr
	}
	out := make([]core.PhysicalDevice, len(i.devices))
	for n, d := range i.devices {
		out[n] = d
	}
	return out, nil
}

func (i *fakeInstance) Diagnostics() core.DiagnosticsCapability {
	return i.capability
}

func (i *fakeInstance) Destroy() {
	i.destroyed = true
	i.log.record("instance destroyed")
}

type fakeCapability struct {
	available bool
	openErr   error
	channel   *fakeChannel

	opened int
}

func (c *fakeCapability) Available() bool { return c.available }

func (c *fakeCapability) Open(cfg core.DiagnosticsConfig) (core.DiagnosticsChannel, error) {
	c.opened++
	if !c.available {
		return nil, core.ErrExtensionUnavailable
	}
	if c.openErr != nil {
		return nil, c.openErr
	}
	c.channel.config = cfg
	return c.channel, nil
}

type fakeChannel struct {
	log *eventLog

	config core.DiagnosticsConfig
	closed bool
}

func (c *fakeChannel) Close() {
	c.closed = true
	c.log.record("channel closed")
}

type fakePhysicalDevice struct {
	log *eventLog

	name      string
	families  []core.QueueFamily
	familyErr error
	device    *fakeDevice
	createErr error

	probes      int
	lastOptions *core.DeviceOptions
}

func (d *fakePhysicalDevice) Name() string { return d.name }

func (d *fakePhysicalDevice) QueueFamilies() ([]core.QueueFamily, error) {
	d.probes++
	return d.families, d.familyErr
}

func (d *fakePhysicalDevice) CreateDevice(opts core.DeviceOptions) (core.Device, error) {
	d.lastOptions = &opts
	if d.createErr != nil {
		return nil, d.createErr
	}
	d.device.family = opts.QueueFamily
	return d.device, nil
}

type fakeDevice struct {
	log *eventLog

	family   uint32
	queueErr error

	queueSlots []uint32
	destroyed  bool
}

func (d *fakeDevice) Queue(slot uint32) (core.Queue, error) {
	if d.queueErr != nil {
		return nil, d.queueErr
	}
	d.queueSlots = append(d.queueSlots, slot)
	return &fakeQueue{family: d.family, slot: slot}, nil
}

func (d *fakeDevice) Destroy() {
	d.destroyed = true
	d.log.record("device destroyed")
}

type fakeQueue struct {
	family uint32
	slot   uint32
}

func (q *fakeQueue) Native() interface{} {
	return [2]uint32{q.family, q.slot}
}

type fakeWindowSystem struct {
	log *eventLog

	window    *fakeWindow
	createErr error

	terminated bool
}

func (s *fakeWindowSystem) CreateWindow(cfg core.WindowConfiguration) (core.Window, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.window, nil
}

func (s *fakeWindowSystem) Terminate() {
	s.terminated = true
	s.log.record("window system terminated")
}

type fakeWindow struct {
	log *eventLog

	extensions []string
	closeAfter int

	polls     int
	destroyed bool
}

func (w *fakeWindow) InstanceExtensions() []string { return w.extensions }

func (w *fakeWindow) ShouldClose() bool { return w.polls >= w.closeAfter }

func (w *fakeWindow) PollEvents() { w.polls++ }

func (w *fakeWindow) Destroy() {
	w.destroyed = true
	w.log.record("window destroyed")
}

// graphicsFamily and friends build queue family tables.
func graphicsFamily() core.QueueFamily {
	return core.QueueFamily{Flags: core.QueueGraphics | core.QueueTransfer, Queues: 1}
}

func computeFamily() core.QueueFamily {
	return core.QueueFamily{Flags: core.QueueCompute | core.QueueTransfer, Queues: 1}
}

// world is a fully wired fake environment for orchestrator tests.
type world struct {
	log    *eventLog
	driver *fakeDriver
	ws     *fakeWindowSystem
	window *fakeWindow
	inst   *fakeInstance
	cap    *fakeCapability
	chann  *fakeChannel
	gpu    *fakePhysicalDevice
	device *fakeDevice
}

func newWorld() *world {
	log := &eventLog{}
	device := &fakeDevice{log: log}
	gpu := &fakePhysicalDevice{
		log:      log,
		name:     "fake gpu",
		families: []core.QueueFamily{graphicsFamily()},
		device:   device,
	}
	chann := &fakeChannel{log: log}
	capability := &fakeCapability{available: true, channel: chann}
	inst := &fakeInstance{
		log:        log,
		devices:    []*fakePhysicalDevice{gpu},
		capability: capability,
	}
	window := &fakeWindow{
		log:        log,
		extensions: []string{"VK_KHR_surface", "VK_KHR_xcb_surface"},
		closeAfter: 2,
	}
	return &world{
		log:    log,
		driver: &fakeDriver{layers: []string{"VK_LAYER_KHRONOS_validation"}, instance: inst},
		ws:     &fakeWindowSystem{log: log, window: window},
		window: window,
		inst:   inst,
		cap:    capability,
		chann:  chann,
		gpu:    gpu,
		device: device,
	}
}

func (w *world) configuration(diagnostics bool) core.Configuration {
	return core.Configuration{
		Instance: core.InstanceConfiguration{
			Name:        "test",
			Diagnostics: diagnostics,
		},
		Window: core.WindowConfiguration{Width: 640, Height: 480, Title: "test"},
		Time:   core.TimeConfiguration{EventPollDelay: 1},
	}
}
