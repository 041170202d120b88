package core

import (
	"fmt"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// extDebugReport is the callback surface the binding ships. The debug
// utils messenger entry points are not bound by vulkan-go, so diagnostic
// messages arrive over the older debug report path and the backend
// enables this extension alongside the negotiated ones in diagnostics
// mode.
const extDebugReport = "VK_EXT_debug_report"

// NewVulkanDriver initializes the Vulkan loader and returns a Driver
// backed by it. procAddr is the windowing system's instance proc
// address, nil selects the default loader.
func NewVulkanDriver(procAddr unsafe.Pointer) (Driver, error) {
	if procAddr == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return nil, fmt.Errorf("vk.SetDefaultGetInstanceProcAddr(): %w", err)
		}
	} else {
		vk.SetGetInstanceProcAddr(procAddr)
	}
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("vk.Init(): %w", err)
	}
	return &vulkanDriver{}, nil
}

type vulkanDriver struct{}

// InstalledLayers implements Driver.
func (d *vulkanDriver) InstalledLayers() ([]string, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, nil)); err != nil {
		return nil, fmt.Errorf("vk.EnumerateInstanceLayerProperties(): %w", err)
	}
	props := make([]vk.LayerProperties, count)
	if count > 0 {
		if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, props)); err != nil {
			return nil, fmt.Errorf("vk.EnumerateInstanceLayerProperties(): %w", err)
		}
	}
	layers := make([]string, 0, count)
	for _, p := range props {
		p.Deref()
		layers = append(layers, vk.ToString(p.LayerName[:]))
	}
	return layers, nil
}

// CreateInstance implements Driver.
func (d *vulkanDriver) CreateInstance(opts InstanceOptions) (Instance, error) {
	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         vk.MakeVersion(1, 0, 0),
		ApplicationVersion: vk.MakeVersion(1, 0, 0),
		PApplicationName:   safeString(opts.Name),
		PEngineName:        "Vantage\x00",
	}

	extensions := make([]string, 0, len(opts.Extensions)+1)
	extensions = append(extensions, opts.Extensions...)
	if opts.Diagnostics != nil {
		extensions = append(extensions, extDebugReport)
	}

	instanceInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: safeStrings(extensions),
		EnabledLayerCount:       uint32(len(opts.Layers)),
		PpEnabledLayerNames:     safeStrings(opts.Layers),
	}

	if opts.Diagnostics != nil {
		// Chain the ephemeral channel configuration into the creation
		// call so diagnostics cover instance creation itself.
		setActiveSink(opts.Diagnostics.Sink)
		dbg := debugReportCreateInfo(*opts.Diagnostics)
		ref, _ := dbg.PassRef()
		instanceInfo.PNext = unsafe.Pointer(ref)
	}

	var instance vk.Instance
	if err := vk.Error(vk.CreateInstance(&instanceInfo, nil, &instance)); err != nil {
		return nil, fmt.Errorf("vk.CreateInstance(): %w", err)
	}
	vk.InitInstance(instance)

	return &vulkanInstance{
		instance:    instance,
		diagnostics: probeDiagnostics(instance),
	}, nil
}

type vulkanInstance struct {
	instance    vk.Instance
	diagnostics DiagnosticsCapability
}

// PhysicalDevices implements Instance.
func (v *vulkanInstance) PhysicalDevices() ([]PhysicalDevice, error) {
	var count uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(v.instance, &count, nil)); err != nil {
		return nil, fmt.Errorf("vulkan physical device enumeration failed: %w", err)
	}
	handles := make([]vk.PhysicalDevice, count)
	if count > 0 {
		if err := vk.Error(vk.EnumeratePhysicalDevices(v.instance, &count, handles)); err != nil {
			return nil, fmt.Errorf("vulkan physical device enumeration failed: %w", err)
		}
	}
	devices := make([]PhysicalDevice, len(handles))
	for i, h := range handles {
		devices[i] = &vulkanPhysicalDevice{handle: h}
	}
	return devices, nil
}

// Diagnostics implements Instance.
func (v *vulkanInstance) Diagnostics() DiagnosticsCapability {
	return v.diagnostics
}

// Destroy implements Instance.
func (v *vulkanInstance) Destroy() {
	vk.DestroyInstance(v.instance, nil)
}

// probeDiagnostics resolves the diagnostics capability once, at instance
// creation time. The extension either is or is not present on the host,
// there is nothing to re-resolve at later call sites.
func probeDiagnostics(instance vk.Instance) DiagnosticsCapability {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, nil)); err != nil {
		return &vulkanDiagnostics{}
	}
	props := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, props)); err != nil {
		return &vulkanDiagnostics{}
	}
	for _, p := range props {
		p.Deref()
		if vk.ToString(p.ExtensionName[:]) == extDebugReport {
			return &vulkanDiagnostics{instance: instance, available: true}
		}
	}
	return &vulkanDiagnostics{}
}

type vulkanDiagnostics struct {
	instance  vk.Instance
	available bool
}

// Available implements DiagnosticsCapability.
func (d *vulkanDiagnostics) Available() bool { return d.available }

// Open implements DiagnosticsCapability.
func (d *vulkanDiagnostics) Open(cfg DiagnosticsConfig) (DiagnosticsChannel, error) {
	if !d.available {
		return nil, ErrExtensionUnavailable
	}
	setActiveSink(cfg.Sink)
	info := debugReportCreateInfo(cfg)
	var callback vk.DebugReportCallback
	if err := vk.Error(vk.CreateDebugReportCallback(d.instance, &info, nil, &callback)); err != nil {
		return nil, fmt.Errorf("vk.CreateDebugReportCallback(): %w", err)
	}
	return &vulkanChannel{instance: d.instance, callback: callback}, nil
}

type vulkanChannel struct {
	instance vk.Instance
	callback vk.DebugReportCallback
	closed   bool
}

// Close implements DiagnosticsChannel.
func (c *vulkanChannel) Close() {
	if c.closed {
		return
	}
	c.closed = true
	vk.DestroyDebugReportCallback(c.instance, c.callback, nil)
}

// The debug report callback must be a plain function, so the active sink
// is routed through a package variable. The bootstrap is single threaded
// and owns at most one channel plus the ephemeral instance creation
// copy, both configured with the same sink.
var activeSink MessageSink

func setActiveSink(sink MessageSink) {
	activeSink = sink
}

func debugReportCallback(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint64, location uint, messageCode int32, layerPrefix string,
	message string, userData unsafe.Pointer) vk.Bool32 {

	if sink := activeSink; sink != nil {
		sink(reportSeverity(flags), reportCategory(flags), message)
	}
	// Never abort the triggering call.
	return vk.Bool32(vk.False)
}

func debugReportCreateInfo(cfg DiagnosticsConfig) vk.DebugReportCallbackCreateInfo {
	return vk.DebugReportCallbackCreateInfo{
		SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags:       debugReportFlags(cfg),
		PfnCallback: debugReportCallback,
	}
}

// debugReportFlags maps the channel subscription onto the debug report
// bits. The report path has no category axis, performance interest maps
// to its dedicated warning bit.
func debugReportFlags(cfg DiagnosticsConfig) vk.DebugReportFlags {
	var flags vk.DebugReportFlagBits
	if cfg.Severities&SeverityVerbose != 0 {
		flags |= vk.DebugReportInformationBit | vk.DebugReportDebugBit
	}
	if cfg.Severities&SeverityWarning != 0 {
		flags |= vk.DebugReportWarningBit
	}
	if cfg.Severities&SeverityError != 0 {
		flags |= vk.DebugReportErrorBit
	}
	if cfg.Categories&CategoryPerformance != 0 {
		flags |= vk.DebugReportPerformanceWarningBit
	}
	return vk.DebugReportFlags(flags)
}

func reportSeverity(flags vk.DebugReportFlags) Severity {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		return SeverityError
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit|vk.DebugReportPerformanceWarningBit) != 0:
		return SeverityWarning
	}
	return SeverityVerbose
}

func reportCategory(flags vk.DebugReportFlags) Category {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		return CategoryPerformance
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit|vk.DebugReportWarningBit) != 0:
		return CategoryValidation
	}
	return CategoryGeneral
}

type vulkanPhysicalDevice struct {
	handle vk.PhysicalDevice
}

// Name implements PhysicalDevice.
func (p *vulkanPhysicalDevice) Name() string {
	var props vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(p.handle, &props)
	props.Deref()
	return vk.ToString(props.DeviceName[:])
}

// QueueFamilies implements PhysicalDevice.
func (p *vulkanPhysicalDevice) QueueFamilies() ([]QueueFamily, error) {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(p.handle, &count, nil)
	props := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(p.handle, &count, props)

	families := make([]QueueFamily, len(props))
	for i, qf := range props {
		qf.Deref()
		var flags QueueFlags
		if qf.QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0 {
			flags |= QueueGraphics
		}
		if qf.QueueFlags&vk.QueueFlags(vk.QueueComputeBit) != 0 {
			flags |= QueueCompute
		}
		if qf.QueueFlags&vk.QueueFlags(vk.QueueTransferBit) != 0 {
			flags |= QueueTransfer
		}
		families[i] = QueueFamily{Flags: flags, Queues: qf.QueueCount}
	}
	return families, nil
}

// CreateDevice implements PhysicalDevice.
func (p *vulkanPhysicalDevice) CreateDevice(opts DeviceOptions) (Device, error) {
	queueInfos := []vk.DeviceQueueCreateInfo{{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: opts.QueueFamily,
		QueueCount:       1,
		// One queue at maximum priority, nothing competes with it.
		PQueuePriorities: []float32{1.0},
	}}

	dci := vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: uint32(len(queueInfos)),
		PQueueCreateInfos:    queueInfos,
		// Baseline feature set, no optional features requested.
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{{}},
		EnabledExtensionCount:   uint32(len(opts.Extensions)),
		PpEnabledExtensionNames: safeStrings(opts.Extensions),
		EnabledLayerCount:       uint32(len(opts.Layers)),
		PpEnabledLayerNames:     safeStrings(opts.Layers),
	}

	var device vk.Device
	if err := vk.Error(vk.CreateDevice(p.handle, &dci, nil, &device)); err != nil {
		return nil, fmt.Errorf("vk.CreateDevice(): %w", err)
	}
	return &vulkanDevice{handle: device, family: opts.QueueFamily}, nil
}

type vulkanDevice struct {
	handle vk.Device
	family uint32
}

// Queue implements Device.
func (d *vulkanDevice) Queue(slot uint32) (Queue, error) {
	var queue vk.Queue
	vk.GetDeviceQueue(d.handle, d.family, slot, &queue)
	if queue == nil {
		return nil, fmt.Errorf("vk.GetDeviceQueue(): no queue at family %d slot %d", d.family, slot)
	}
	return &vulkanQueue{handle: queue}, nil
}

// Destroy implements Device.
func (d *vulkanDevice) Destroy() {
	vk.DestroyDevice(d.handle, nil)
}

type vulkanQueue struct {
	handle vk.Queue
}

// Native implements Queue.
func (q *vulkanQueue) Native() interface{} { return q.handle }
