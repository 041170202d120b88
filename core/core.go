// Package core implements the capability negotiation and resource
// acquisition sequence that stands up a graphics execution context:
// API instance, optional diagnostics channel, physical device selection,
// and logical device with one execution queue.
//
// The sequencing logic is written against the Driver and WindowSystem
// interfaces. The only real Driver is backed by Vulkan, the interfaces
// exist so the sequencer can be exercised without a GPU.
package core

// Driver abstracts the graphics runtime the bootstrap talks to.
type Driver interface {
	// InstalledLayers enumerates the layer names installed on the host.
	InstalledLayers() ([]string, error)

	// CreateInstance creates the top level API instance. The returned
	// Instance owns the handle until Destroy is called.
	CreateInstance(opts InstanceOptions) (Instance, error)
}

// InstanceOptions carries everything negotiated before instance creation.
type InstanceOptions struct {
	// Name identifies the application to the driver.
	Name string

	// Extensions is the full instance extension list, the window
	// system's extensions first.
	Extensions []string

	// Layers are the layer names to enable, already checked against the
	// host with CheckLayerSupport.
	Layers []string

	// Diagnostics, when set, is chained into the instance creation call
	// itself so diagnostics cover instance creation, which predates the
	// standalone channel. Used for that single call only, not retained.
	Diagnostics *DiagnosticsConfig
}

// Instance is one initialized connection to the graphics driver. Every
// other handle is derived from it and must be released before it.
type Instance interface {
	// PhysicalDevices enumerates the accelerators visible to the driver,
	// in driver reported order.
	PhysicalDevices() ([]PhysicalDevice, error)

	// Diagnostics returns the diagnostics capability probed once, at
	// instance creation time.
	Diagnostics() DiagnosticsCapability

	// Destroy releases the instance. Must be called last.
	Destroy()
}

// DiagnosticsCapability is the result of resolving the optional
// diagnostics entry points on a live instance.
type DiagnosticsCapability interface {
	// Available reports whether the runtime resolved the entry points.
	Available() bool

	// Open installs a diagnostics channel on the instance. Fails with
	// ErrExtensionUnavailable when the capability is not available.
	Open(cfg DiagnosticsConfig) (DiagnosticsChannel, error)
}

// DiagnosticsChannel bridges the driver's diagnostic message stream to a
// sink. It must be closed before the owning instance is destroyed.
type DiagnosticsChannel interface {
	// Close uninstalls the channel. Closing a channel whose entry points
	// were never resolved is a silent no-op, not an error.
	Close()
}

// PhysicalDevice is a non-owning reference into the driver's device
// table. It is selected, never created or destroyed here.
type PhysicalDevice interface {
	// Name returns the driver reported device name, for logging.
	Name() string

	// QueueFamilies returns the device's queue family table in driver
	// order.
	QueueFamilies() ([]QueueFamily, error)

	// CreateDevice materializes a logical device bound to this physical
	// device.
	CreateDevice(opts DeviceOptions) (Device, error)
}

// QueueFamily describes one entry of a physical device's queue family
// table.
type QueueFamily struct {
	Flags  QueueFlags
	Queues uint32
}

// QueueFlags is the capability bitmask of a queue family.
type QueueFlags uint32

// Queue family capability bits.
const (
	QueueGraphics QueueFlags = 1 << iota
	QueueCompute
	QueueTransfer
)

// DeviceOptions configures logical device creation. The device always
// gets exactly one queue at fixed maximum priority, that part is not
// configurable.
type DeviceOptions struct {
	// QueueFamily is the family index to create the queue in.
	QueueFamily uint32

	// Extensions are device level extension names.
	Extensions []string

	// Layers re-asserts the instance layers on the device. Modern
	// drivers ignore device layers, older loaders still want them.
	Layers []string
}

// Device is an owned execution context bound to one physical device.
type Device interface {
	// Queue retrieves the queue at slot within the family the device
	// was created with. Valid only while the device is alive.
	Queue(slot uint32) (Queue, error)

	// Destroy releases the device. Must happen before the instance is
	// destroyed.
	Destroy()
}

// Queue is a non-owning handle for command submission.
type Queue interface {
	// Native exposes the underlying driver handle.
	Native() interface{}
}

// WindowSystem is the windowing collaborator that owns window and event
// machinery.
type WindowSystem interface {
	// CreateWindow opens a fixed size, non-resizable window without a
	// secondary graphics context.
	CreateWindow(cfg WindowConfiguration) (Window, error)

	// Terminate releases the window system. Called last during
	// teardown.
	Terminate()
}

// Window is one open window.
type Window interface {
	// InstanceExtensions returns the instance extensions the window
	// system requires. Queried once, before instance creation.
	InstanceExtensions() []string

	// ShouldClose reports whether an external close was requested.
	ShouldClose() bool

	// PollEvents processes pending window events. Called every idle
	// iteration.
	PollEvents()

	// Destroy closes the window.
	Destroy()
}
