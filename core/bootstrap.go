package core

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// State identifies the orchestrator's position in the bootstrap
// sequence. Transitions are one way and never retried.
type State int

// Bootstrap states, in acquisition order.
const (
	Uninitialized State = iota
	WindowReady
	InstanceReady
	DiagnosticsReady
	DeviceSelected
	LogicalDeviceReady
	Running
	TearingDown
	Terminated
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case WindowReady:
		return "window-ready"
	case InstanceReady:
		return "instance-ready"
	case DiagnosticsReady:
		return "diagnostics-ready"
	case DeviceSelected:
		return "device-selected"
	case LogicalDeviceReady:
		return "logical-device-ready"
	case Running:
		return "running"
	case TearingDown:
		return "tearing-down"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Bootstrap sequences the acquisition of every graphics handle and owns
// all of them until teardown. It is single threaded, every call blocks
// until the driver returns.
type Bootstrap struct {
	// DiagnosticsSink receives diagnostic messages in diagnostics mode.
	// Nil means the messages go to the error log.
	DiagnosticsSink MessageSink

	cfg Configuration
	drv Driver
	ws  WindowSystem

	state State

	// release is the rollback list: every acquired resource pushes its
	// release closure here, teardown and the failure path both pop in
	// reverse so nothing acquired can outlive a partial bootstrap.
	release []func()

	window      Window
	instance    Instance
	diagnostics DiagnosticsChannel
	gpu         PhysicalDevice
	families    QueueFamilyIndices
	device      Device
	queue       Queue
}

// New wires a Bootstrap. The diagnostics toggle and the layer set come
// from cfg only, there is no ambient mode switch anywhere.
func New(cfg Configuration, drv Driver, ws WindowSystem) *Bootstrap {
	if cfg.Instance.Diagnostics && len(cfg.Instance.Layers) == 0 {
		cfg.Instance.Layers = append([]string{}, DefaultValidationLayers...)
	}
	return &Bootstrap{cfg: cfg, drv: drv, ws: ws, state: Uninitialized}
}

// State returns the current bootstrap state.
func (b *Bootstrap) State() State { return b.state }

// Queue returns the queue handle retrieved from the logical device.
// Valid from LogicalDeviceReady until teardown.
func (b *Bootstrap) Queue() Queue { return b.queue }

func (b *Bootstrap) transition(next State) {
	log.WithFields(log.Fields{"from": b.state, "to": next}).Debug("bootstrap transition")
	b.state = next
}

func (b *Bootstrap) acquired(name string, release func()) {
	b.release = append(b.release, release)
	log.WithField("resource", name).Debug("acquired")
}

// rollback releases everything acquired so far in exact reverse order of
// acquisition.
func (b *Bootstrap) rollback() {
	for i := len(b.release) - 1; i >= 0; i-- {
		b.release[i]()
	}
	b.release = nil
}

// Up runs the acquisition sequence through LogicalDeviceReady. On any
// failure every handle acquired so far is released, in reverse order,
// before the error is returned.
func (b *Bootstrap) Up() error {
	if err := b.up(); err != nil {
		b.rollback()
		return err
	}
	return nil
}

func (b *Bootstrap) up() error {
	window, err := b.ws.CreateWindow(b.cfg.Window)
	if err != nil {
		return fmt.Errorf("window creation: %w", err)
	}
	b.window = window
	b.acquired("window", window.Destroy)
	b.transition(WindowReady)

	if err := b.createInstance(); err != nil {
		return err
	}
	b.transition(InstanceReady)

	if b.cfg.Instance.Diagnostics {
		if err := b.openDiagnostics(); err != nil {
			return err
		}
		b.transition(DiagnosticsReady)
	}

	gpu, err := SelectPhysicalDevice(b.instance)
	if err != nil {
		return err
	}
	families, err := FindQueueFamilies(gpu)
	if err != nil {
		return err
	}
	b.gpu, b.families = gpu, families
	log.WithField("device", gpu.Name()).Info("physical device selected")
	b.transition(DeviceSelected)

	device, queue, err := MaterializeDevice(gpu, families, b.cfg.Instance)
	if err != nil {
		return err
	}
	b.device, b.queue = device, queue
	b.acquired("logical device", device.Destroy)
	b.transition(LogicalDeviceReady)
	return nil
}

func (b *Bootstrap) createInstance() error {
	cfg := b.cfg.Instance
	if cfg.Diagnostics {
		ok, err := CheckLayerSupport(b.drv, cfg.Layers)
		if err != nil {
			return fmt.Errorf("layer enumeration: %w", err)
		}
		if !ok {
			// Fails before any call that would create a handle.
			return fmt.Errorf("%w: %v", ErrLayersUnavailable, cfg.Layers)
		}
	}

	opts := InstanceOptions{
		Name:       cfg.Name,
		Extensions: RequiredExtensions(b.window.InstanceExtensions(), cfg.Diagnostics),
	}
	if cfg.Diagnostics {
		opts.Layers = cfg.Layers
		// The ephemeral copy that covers the creation call itself.
		dc := NewDiagnosticsConfig(b.sink())
		opts.Diagnostics = &dc
	}

	instance, err := b.drv.CreateInstance(opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInstanceCreationFailed, err)
	}
	b.instance = instance
	b.acquired("instance", instance.Destroy)
	return nil
}

func (b *Bootstrap) openDiagnostics() error {
	channel, err := b.instance.Diagnostics().Open(NewDiagnosticsConfig(b.sink()))
	if err != nil {
		return fmt.Errorf("diagnostics channel: %w", err)
	}
	b.diagnostics = channel
	b.acquired("diagnostics channel", channel.Close)
	return nil
}

func (b *Bootstrap) sink() MessageSink {
	if b.DiagnosticsSink != nil {
		return b.DiagnosticsSink
	}
	return defaultSink
}

// defaultSink writes diagnostic messages to the error visible log.
func defaultSink(severity Severity, category Category, message string) {
	log.WithFields(log.Fields{
		"severity": severity,
		"category": category,
	}).Error(message)
}

// Run executes the full bootstrap: acquisition, the idle loop, and
// teardown. It returns once the window reports an external close, or
// with the bootstrap error after everything acquired was rolled back.
func (b *Bootstrap) Run() error {
	if err := b.Up(); err != nil {
		b.ws.Terminate()
		return err
	}
	b.transition(Running)
	b.idle()
	b.Down()
	return nil
}

// idle is the only suspension point. Each tick control returns to the
// poller, there is no blocking wait on the window system.
func (b *Bootstrap) idle() {
	t := NewTime(b.cfg.Time)
	defer t.Stop()
	for !b.window.ShouldClose() {
		<-t.EventTicker().C
		b.window.PollEvents()
	}
}

// Down tears everything down in exact reverse order of creation: logical
// device, diagnostics channel if present, instance, window, and finally
// the window system itself.
func (b *Bootstrap) Down() {
	b.transition(TearingDown)
	b.rollback()
	b.ws.Terminate()
	b.transition(Terminated)
}
