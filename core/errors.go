package core

import "errors"

// Bootstrap failures. All of them are fatal: there is no retry anywhere,
// every driver call either succeeds or ends the run.
var (
	// ErrLayersUnavailable means diagnostics were requested but the host
	// does not have the requested layers installed. Raised before any
	// call that would create a handle.
	ErrLayersUnavailable = errors.New("requested layers unavailable on host")

	// ErrExtensionUnavailable means the diagnostics entry points could
	// not be resolved on the instance.
	ErrExtensionUnavailable = errors.New("diagnostics extension unavailable")

	// ErrNoDeviceFound means the driver reported zero accelerators.
	ErrNoDeviceFound = errors.New("no graphics device found")

	// ErrNoSuitableDevice means no enumerated accelerator passed the
	// suitability check.
	ErrNoSuitableDevice = errors.New("no suitable graphics device")

	// ErrDeviceCreationFailed means the driver rejected the logical
	// device request.
	ErrDeviceCreationFailed = errors.New("logical device creation failed")

	// ErrInstanceCreationFailed means the driver rejected instance
	// creation.
	ErrInstanceCreationFailed = errors.New("instance creation failed")
)
