// Package sysfs implements ancestor traversal over the kernel device tree.
//
// Ancestry is defined by truncating the final path segment, never by
// following "..". Every operation strips one trailing separator before use
// and terminates when the path becomes empty, which marks the tree root.
package sysfs

import (
	"os"
	"strings"

	"git.home.luguber.info/inful/devplug/internal/errors"
	"git.home.luguber.info/inful/devplug/internal/pathutil"
)

// FindAncestorWithLink walks upward from path (inclusive) and returns the
// first ancestor at which linkName exists as a directory entry. For the
// "device" link used in parent lookup any existing entry counts, so this
// checks presence with Lstat rather than requiring a symlink. Fails with
// KindNotFound when nothing up to the root has the entry.
func FindAncestorWithLink(path, linkName string) (string, error) {
	for p := pathutil.TrimTrailingSlash(path); p != ""; p = pathutil.Up(p) {
		if _, err := os.Lstat(p + "/" + linkName); err == nil {
			return p, nil
		}
	}
	return "", errors.NotFound(linkName+" link", path)
}

// ListLinkTargets collects the base name of the linkName target at every
// ancestor where the link resolves, walking from path up to the root. The
// result is in leaf-to-root order and may legally contain duplicates when
// two ancestors link to the same name. Used for both driver and subsystem
// names. An empty result is success, not an error.
func ListLinkTargets(path, linkName string) ([]string, error) {
	var names []string
	for p := pathutil.TrimTrailingSlash(path); p != ""; p = pathutil.Up(p) {
		target, err := os.Readlink(p + "/" + linkName)
		if err != nil {
			continue
		}
		names = append(names, pathutil.LastSegment(target))
	}
	return names, nil
}

// Attr reads the attribute file name directly under path. No ancestor
// search: the entry must be a regular file at exactly the given path. A
// single trailing newline is stripped, matching how the kernel terminates
// sysfs attribute values.
func Attr(name, path string) (string, error) {
	p := pathutil.TrimTrailingSlash(path) + "/" + name
	fi, err := os.Lstat(p)
	if err != nil || !fi.Mode().IsRegular() {
		return "", errors.NotFound("attribute "+name, path)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return "", errors.IO("read attribute", p, err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

// Attrs walks upward from path to the root and collects the value of the
// attribute name wherever it is present, in leaf-to-root order. An empty
// sequence is a valid success (walked but found nothing); an invalid
// starting path is distinguished and fails with KindNotFound.
func Attrs(name, path string) ([]string, error) {
	start := pathutil.TrimTrailingSlash(path)
	if _, err := os.Lstat(start); err != nil {
		return nil, errors.NotFound("start path", path)
	}
	var values []string
	for p := start; p != ""; p = pathutil.Up(p) {
		v, err := Attr(name, p)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	return values, nil
}
