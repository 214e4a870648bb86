package probe

import (
	"errors"
	"fmt"
)

// ErrProbe marks failures while inspecting a media container.
var ErrProbe = errors.New("probe failed")

func probeError(tool string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrProbe, tool, err)
}
