package planning

import (
	"errors"
	"fmt"
	"sync"
)

// ErrPathCollision reports two distinct source files planning the same
// output path, which can only happen in flat output mode.
var ErrPathCollision = errors.New("output path collision")

// claimRegistry tracks which source file owns each output path. All methods
// are goroutine-safe; workers claim targets concurrently.
type claimRegistry struct {
	mu     sync.Mutex
	owners map[string]string // output path -> owning source file
}

func newClaimRegistry() *claimRegistry {
	return &claimRegistry{owners: make(map[string]string)}
}

func (r *claimRegistry) claim(source, output string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, exists := r.owners[output]
	if !exists || owner == source {
		r.owners[output] = source
		return nil
	}
	return fmt.Errorf("%w: %s already claimed by %s", ErrPathCollision, output, owner)
}
