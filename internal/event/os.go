package event

import "os"

// FromOS builds the Event from the current process environment. This is the
// single place the core touches ambient process state; everything downstream
// receives the immutable Event value.
func FromOS() Event {
	return FromEnviron(os.Environ())
}
