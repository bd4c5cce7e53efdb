package processing

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// PrepareDestination makes sure dir exists. An existing dir is emptied first
// when overwrite is set; otherwise extraction writes over it.
func PrepareDestination(dir string, overwrite bool) error {
	if dir == "" {
		return errors.New("destination not set")
	}

	_, err := os.Stat(dir)
	if !errors.Is(err, fs.ErrNotExist) {
		if err != nil {
			return fmt.Errorf("checking destination %s: %w", dir, err)
		}
		if overwrite {
			if err := os.RemoveAll(dir); err != nil {
				return fmt.Errorf("cleaning destination %s: %w", dir, err)
			}
		}
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating destination %s: %w", dir, err)
	}
	return nil
}
