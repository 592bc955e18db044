// Package devid derives the canonical device id for an event.
//
// The id is computed once per invocation and used as the device's key in tag
// storage. Uniqueness across all device classes is by prefix convention
// only: "b"/"c" for block/char device numbers, "n" for network interfaces,
// "+" for subsystem-scoped kernel names.
package devid

import (
	"fmt"

	"git.home.luguber.info/inful/devplug/internal/errors"
	"git.home.luguber.info/inful/devplug/internal/event"
)

// Compute returns the device id for ev. Pure function of the event; no side
// effects. Priority, first match wins:
//
//  1. major+minor present: "b{major}:{minor}" for block devices,
//     "c{major}:{minor}" otherwise. An interface index that is also present
//     is ignored.
//  2. interface index present: "n{ifindex}".
//  3. subsystem and devpath present: "+{subsystem}:{sysname}".
//
// Anything else fails with KindNotDerivable.
func Compute(ev event.Event) (string, error) {
	switch {
	case ev.HasDevNum():
		prefix := "c"
		if ev.Block {
			prefix = "b"
		}
		return fmt.Sprintf("%s%s:%s", prefix, ev.Major, ev.Minor), nil

	case ev.IfIndex != "":
		return "n" + ev.IfIndex, nil

	case ev.Subsystem != "" && ev.DevPath != "":
		return fmt.Sprintf("+%s:%s", ev.Subsystem, ev.SysName()), nil
	}
	return "", errors.NotDerivable()
}
