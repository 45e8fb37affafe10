// internal/repository/textfile/lock_other.go

//go:build !unix

package textfile

import (
	"errors"
	"fmt"
	"os"
	"time"
)

const lockWait = 10 * time.Second

// lockFile creates path exclusively, retrying while another writer holds it,
// and removes it on unlock.
func lockFile(path string) (unlock func() error, err error) {
	deadline := time.Now().Add(lockWait)
	for {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if err == nil {
			return func() error {
				return errors.Join(f.Close(), os.Remove(path))
			}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, err
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("lock %s: still held after %s", path, lockWait)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
