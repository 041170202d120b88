package core

// Extension names involved in diagnostics mode. The portability pair
// keeps instance creation working on hosts that only expose the API
// through a compatibility layer.
const (
	ExtDebugUtils             = "VK_EXT_debug_utils"
	ExtPortabilityEnumeration = "VK_KHR_portability_enumeration"
	ExtPhysicalDeviceProps2   = "VK_KHR_get_physical_device_properties2"

	// ExtPortabilitySubset is the device level portability extension,
	// required on devices exposed through a portability layer.
	ExtPortabilitySubset = "VK_KHR_portability_subset"
)

// RequiredExtensions assembles the instance extension list: the window
// system's mandatory extensions first, then, only in diagnostics mode,
// the diagnostics and portability extensions. The list is never
// deduplicated, callers must not request the same extension twice.
func RequiredExtensions(windowExtensions []string, diagnostics bool) []string {
	extensions := make([]string, 0, len(windowExtensions)+3)
	extensions = append(extensions, windowExtensions...)
	if diagnostics {
		extensions = append(extensions,
			ExtDebugUtils,
			ExtPortabilityEnumeration,
			ExtPhysicalDeviceProps2,
		)
	}
	return extensions
}

// CheckLayerSupport reports whether every requested layer name exactly
// matches a layer installed on the host. Comparison is case sensitive
// and stops at the first missing layer.
func CheckLayerSupport(drv Driver, requested []string) (bool, error) {
	installed, err := drv.InstalledLayers()
	if err != nil {
		return false, err
	}
	for _, want := range requested {
		found := false
		for _, have := range installed {
			if want == have {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}
	return true, nil
}
