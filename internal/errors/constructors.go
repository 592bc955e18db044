package errors

// Convenience constructors for common error patterns.

func NotDerivable() *HelperError {
	return New(KindNotDerivable, "unable to derive a device id from the event context")
}

func NotFound(what, path string) *HelperError {
	return New(KindNotFound, what+" not found").WithContext("path", path)
}

func IO(operation, path string, cause error) *HelperError {
	return Wrap(cause, KindIO, operation+" failed").WithContext("path", path)
}

func MalformedInput(fragment string) *HelperError {
	return New(KindMalformedInput, "unparseable probe token").WithContext("fragment", fragment)
}

func ProbeExit(code int, cause error) *HelperError {
	e := Wrap(cause, KindProbe, "probe tool exited non-zero")
	e.ExitCode = code
	return e
}

func ProbeFailed(cause error) *HelperError {
	return Wrap(cause, KindProbe, "probe tool could not be run")
}

func ConfigInvalid(field, reason string) *HelperError {
	return New(KindConfig, "invalid configuration").
		WithContext("field", field).
		WithContext("reason", reason)
}
