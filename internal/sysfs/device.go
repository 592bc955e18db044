package sysfs

import (
	"git.home.luguber.info/inful/devplug/internal/errors"
	"git.home.luguber.info/inful/devplug/internal/pathutil"
)

// ParentDevice returns the closest proper ancestor of path that carries a
// "device" entry, the conventional marker for a parent device directory.
// The starting path itself is excluded so a device never resolves to itself.
func ParentDevice(path string) (string, error) {
	up := pathutil.Up(pathutil.TrimTrailingSlash(path))
	if up == "" {
		return "", errors.NotFound("parent device", path)
	}
	return FindAncestorWithLink(up, "device")
}

// Driver returns the driver name bound nearest to path, the first hit of
// the upward "driver" link walk.
func Driver(path string) (string, error) {
	names, err := ListLinkTargets(path, "driver")
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", errors.NotFound("driver", path)
	}
	return names[0], nil
}

// Subsystem returns the subsystem name nearest to path, the first hit of
// the upward "subsystem" link walk.
func Subsystem(path string) (string, error) {
	names, err := ListLinkTargets(path, "subsystem")
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", errors.NotFound("subsystem", path)
	}
	return names[0], nil
}
