package registry

import (
	"sort"
	"strings"
)

// Component is a single installable entry in the component map.
type Component struct {
	// URL points at the component source file.
	URL string `json:"url" yaml:"url"`

	// Deps maps npm package names to the version to install.
	Deps map[string]string `json:"deps,omitempty" yaml:"deps"`

	// Requires lists other components that must be installed first.
	Requires []string `json:"requires,omitempty" yaml:"requires"`

	// Hooks lists hook files installed alongside the component.
	Hooks []string `json:"hooks,omitempty" yaml:"hooks"`
}

// DepNames returns the dependency package names, sorted.
func (c Component) DepNames() []string {
	names := make([]string, 0, len(c.Deps))
	for name := range c.Deps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registry is a decoded component map.
type Registry struct {
	// HookBaseURL is the prefix hook file names are appended to.
	HookBaseURL string `json:"hookBaseUrl"`

	// Components maps component names to their entries.
	Components map[string]Component `json:"components"`
}

// Lookup finds a component by name, ignoring case. An exact match wins;
// otherwise the first matching key in sorted order is used so the result
// does not depend on map iteration.
func (r *Registry) Lookup(name string) (string, Component, bool) {
	if comp, ok := r.Components[name]; ok {
		return name, comp, true
	}
	for _, key := range r.Names() {
		if strings.EqualFold(key, name) {
			return key, r.Components[key], true
		}
	}
	return "", Component{}, false
}

// Names returns all component names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Components))
	for name := range r.Components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HookURL returns the source URL for a hook file.
func (r *Registry) HookURL(hook, ext string) string {
	return r.HookBaseURL + hook + ext
}
