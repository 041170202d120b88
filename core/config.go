package core

// Configuration is the explicit bootstrap configuration. It is passed
// into the orchestrator, components never read ambient state.
type Configuration struct {
	Instance InstanceConfiguration `toml:"instance"`
	Window   WindowConfiguration   `toml:"window"`
	Time     TimeConfiguration     `toml:"time"`
}

// InstanceConfiguration configures instance creation and diagnostics.
type InstanceConfiguration struct {
	// Name identifies the application to the driver.
	Name string `toml:"name"`

	// Diagnostics enables the validation layers and the diagnostics
	// channel.
	Diagnostics bool `toml:"diagnostics"`

	// Layers are the diagnostic layer names to request in diagnostics
	// mode. Empty means DefaultValidationLayers.
	Layers []string `toml:"layers"`
}

// WindowConfiguration configures the single application window.
type WindowConfiguration struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// TimeConfiguration is used to configure time services.
type TimeConfiguration struct {
	// EventPollDelay paces the idle loop's event polling, in
	// milliseconds.
	EventPollDelay int `toml:"event_poll_delay"`
}

// DefaultValidationLayers is the layer set requested in diagnostics mode
// when the configuration does not name any.
var DefaultValidationLayers = []string{"VK_LAYER_KHRONOS_validation"}
