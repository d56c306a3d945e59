package storage

import (
	"fmt"
	"os"
	"syscall"
)

// lockBlob acquires an exclusive advisory lock on the blob's companion
// lock file, serializing load-mutate-save cycles across processes. The
// in-process mutex only protects a single store instance; two taskflow
// invocations against the same directory need this.
func lockBlob(path string) (unlock func() error, err error) {
	f, err := os.OpenFile(path+".lock", os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		f.Close()
		return nil, fmt.Errorf("acquiring blob lock: %w", err)
	}

	return func() error {
		defer f.Close()
		return syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
	}, nil
}
