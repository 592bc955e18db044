package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyDeviceID    = "device_id"
	KeyAction      = "action"
	KeyDevPath     = "devpath"
	KeySubsystem   = "subsystem"
	KeyTarget      = "target"
	KeySource      = "source"
	KeyTag         = "tag"
	KeyFeature     = "feature"
	KeyProperty    = "property"
	KeyFlavor      = "flavor"
	KeyInvocation  = "invocation_id"
	KeyMetadataDir = "metadata_dir"
	KeyDurationMS  = "duration_ms"
	KeyCount       = "count"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func DeviceID(id string) slog.Attr    { return slog.String(KeyDeviceID, id) }
func Action(a string) slog.Attr       { return slog.String(KeyAction, a) }
func DevPath(p string) slog.Attr      { return slog.String(KeyDevPath, p) }
func Subsystem(s string) slog.Attr    { return slog.String(KeySubsystem, s) }
func Target(t string) slog.Attr       { return slog.String(KeyTarget, t) }
func Source(s string) slog.Attr       { return slog.String(KeySource, s) }
func Tag(t string) slog.Attr          { return slog.String(KeyTag, t) }
func Feature(f string) slog.Attr      { return slog.String(KeyFeature, f) }
func Property(p string) slog.Attr     { return slog.String(KeyProperty, p) }
func Flavor(f string) slog.Attr       { return slog.String(KeyFlavor, f) }
func Invocation(id string) slog.Attr  { return slog.String(KeyInvocation, id) }
func MetadataDir(d string) slog.Attr  { return slog.String(KeyMetadataDir, d) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
