package testsupport

import (
	"testing"

	"sublift/internal/config"
	"sublift/internal/logging"
	"sublift/internal/resume"
)

// MustOpenStore opens the resume journal configured for the test and closes
// it on cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *resume.Store {
	t.Helper()

	store, err := resume.Open(cfg.Paths.ResumeDB, logging.NewNop())
	if err != nil {
		t.Fatalf("open resume store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close resume store: %v", err)
		}
	})
	return store
}
