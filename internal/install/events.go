package install

// EventKind classifies an Event.
type EventKind int

const (
	// EventNotFound: a requested or required component is not in the
	// registry.
	EventNotFound EventKind = iota
	// EventInstalled: a file was written.
	EventInstalled
	// EventSkipped: the user declined to overwrite a file.
	EventSkipped
	// EventBackedUp: an existing file was renamed to .bak.
	EventBackedUp
	// EventFailed: a file could not be fetched or written.
	EventFailed
	// EventDependencyPresent: an npm package already resolves.
	EventDependencyPresent
	// EventDependencyInstalling: the package manager is about to run.
	EventDependencyInstalling
	// EventDependencyFailed: the package manager failed.
	EventDependencyFailed
)

// Target says what an Event is about.
type Target string

const (
	TargetComponent  Target = "component"
	TargetHook       Target = "hook"
	TargetDependency Target = "dependency"
)

// Event is a single progress notification.
type Event struct {
	Kind   EventKind
	Target Target

	// Name is the component, hook file or package name.
	Name string

	// Path is the destination or backup file, when there is one.
	Path string

	// Version is set for dependency events.
	Version string

	// Err is set for failures.
	Err error
}

// Reporter receives progress events.
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Event)

// Report calls f.
func (f ReporterFunc) Report(e Event) {
	f(e)
}

type discardReporter struct{}

func (discardReporter) Report(Event) {}
