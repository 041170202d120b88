package core

// Severity is a bitmask of diagnostic message severities.
type Severity uint32

// Diagnostic message severities.
const (
	SeverityVerbose Severity = 1 << iota
	SeverityWarning
	SeverityError
)

// SeverityAll subscribes to every severity.
const SeverityAll = SeverityVerbose | SeverityWarning | SeverityError

// String names a single severity bit.
func (s Severity) String() string {
	switch s {
	case SeverityVerbose:
		return "verbose"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

// Category is a bitmask of diagnostic message categories.
type Category uint32

// Diagnostic message categories.
const (
	CategoryGeneral Category = 1 << iota
	CategoryValidation
	CategoryPerformance
)

// CategoryAll subscribes to every category.
const CategoryAll = CategoryGeneral | CategoryValidation | CategoryPerformance

// String names a single category bit.
func (c Category) String() string {
	switch c {
	case CategoryGeneral:
		return "general"
	case CategoryValidation:
		return "validation"
	case CategoryPerformance:
		return "performance"
	}
	return "unknown"
}

// MessageSink receives diagnostic messages from the driver. It must not
// block, the driver may deliver from inside any API call.
type MessageSink func(severity Severity, category Category, message string)

// DiagnosticsConfig configures a diagnostics channel. Whatever the sink
// does, the channel never aborts the triggering driver call.
type DiagnosticsConfig struct {
	Severities Severity
	Categories Category
	Sink       MessageSink
}

// NewDiagnosticsConfig returns the standard channel configuration: every
// severity and every category, delivered to sink.
func NewDiagnosticsConfig(sink MessageSink) DiagnosticsConfig {
	return DiagnosticsConfig{
		Severities: SeverityAll,
		Categories: CategoryAll,
		Sink:       sink,
	}
}
