//go:build windows

package ops

import "os"

// createExclusive creates a new 0600 file for writing.
// O_EXCL fails on an existing symlink; ValidatePath has already rejected symlinked targets.
func createExclusive(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
}
