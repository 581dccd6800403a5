package config

import "sync"

// SnapshotWriter saves config snapshots taken at increasing generations.
// Saves may run on any goroutine; a snapshot older than one already on
// disk is skipped, so the file always ends with the newest generation.
type SnapshotWriter struct {
	mu      sync.Mutex
	written uint64
}

// Write saves cfg as generation gen and reports whether it was written.
func (w *SnapshotWriter) Write(gen uint64, cfg Config) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if gen <= w.written {
		return false, nil
	}
	if err := cfg.Save(); err != nil {
		return false, err
	}
	w.written = gen
	return true, nil
}
