//go:build unix

package app

import (
	"os"
	"syscall"
)

// suspendProcess stops the process the way ctrl-z would from a cooked
// terminal. The caller has already released the terminal; on SIGCONT the
// loop re-acquires it. A variable so tests can stub it out.
var suspendProcess = func() {
	_ = syscall.Kill(os.Getpid(), syscall.SIGTSTP)
}
