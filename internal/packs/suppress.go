package packs

import "os"

// redirectOutput swaps the process's standard streams for a discard sink and
// returns the function that restores them. Restoration must be deferred so
// it runs on every exit path, including a panic inside a plugin call.
func redirectOutput() func() {
	devnull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return func() {}
	}
	savedOut, savedErr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = devnull, devnull
	return func() {
		os.Stdout, os.Stderr = savedOut, savedErr
		devnull.Close()
	}
}

// callQuiet runs a plugin entry point with output suppressed unless the
// registry is in debug mode.
func (r *Registry) callQuiet(fn func()) {
	if r.debug {
		fn()
		return
	}
	restore := redirectOutput()
	defer restore()
	fn()
}

// callQuietBool is callQuiet for entry points that report success.
func (r *Registry) callQuietBool(fn func() bool) bool {
	if r.debug {
		return fn()
	}
	restore := redirectOutput()
	defer restore()
	return fn()
}
