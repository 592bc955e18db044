// Package event builds the immutable per-invocation device event context.
//
// A helper process handles exactly one kernel hotplug event. All event state
// is captured once, at construction, from the environment the dispatcher set
// up; nothing in the core reads the process environment after that. Property
// lookups go through the snapshot as well, so the historical indirect
// variable expansion becomes an explicit table lookup.
package event

import (
	"strings"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/devplug/internal/pathutil"
)

// Environment variable names set by the dispatcher, kept compatible with the
// kernel hotplug convention.
const (
	EnvAction    = "ACTION"
	EnvDevPath   = "DEVPATH"
	EnvSubsystem = "SUBSYSTEM"
	EnvMajor     = "MAJOR"
	EnvMinor     = "MINOR"
	EnvDevType   = "DEVTYPE"
	EnvDevName   = "DEVNAME"
	EnvIfIndex   = "IFINDEX"
)

// Event is the immutable context for one helper invocation. Exactly one of
// {Major+Minor, IfIndex, Subsystem+DevPath} is expected to be populated for
// id derivation; the groups are not mutually exclusive on the wire, so the
// derivation priority lives in the devid package, not here.
type Event struct {
	// InvocationID correlates all log lines of this helper run.
	InvocationID string

	Action    string
	DevPath   string
	DevName   string
	Subsystem string
	DevType   string

	Major string
	Minor string

	IfIndex string

	// Block is true for block devices; derived from the subsystem.
	Block bool

	props map[string]string
}

// FromEnviron builds an Event from an environ-style KEY=VALUE slice. The
// full slice is snapshotted as the property lookup table; later mutation of
// the source environment is not observed.
func FromEnviron(environ []string) Event {
	props := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		props[k] = v
	}

	ev := Event{
		InvocationID: uuid.NewString(),
		Action:       props[EnvAction],
		DevPath:      props[EnvDevPath],
		DevName:      props[EnvDevName],
		Subsystem:    props[EnvSubsystem],
		DevType:      props[EnvDevType],
		Major:        props[EnvMajor],
		Minor:        props[EnvMinor],
		IfIndex:      props[EnvIfIndex],
		props:        props,
	}
	ev.Block = ev.Subsystem == "block"
	return ev
}

// Lookup returns the value of a property from the invocation snapshot. The
// empty string with ok=true is possible and means "present but empty".
func (e Event) Lookup(name string) (string, bool) {
	v, ok := e.props[name]
	return v, ok
}

// SysName returns the final segment of the device-tree path, the kernel
// name of the device itself.
func (e Event) SysName() string {
	return pathutil.LastSegment(e.DevPath)
}

// HasDevNum reports whether both major and minor numbers are present.
func (e Event) HasDevNum() bool {
	return e.Major != "" && e.Minor != ""
}
