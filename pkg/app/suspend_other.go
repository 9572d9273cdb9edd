//go:build !unix

package app

// suspendProcess is a no-op on platforms without job control; the loop
// just re-acquires the terminal and resumes.
var suspendProcess = func() {}
