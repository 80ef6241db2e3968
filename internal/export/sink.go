package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile delivers an artifact into dir and returns the final path. The
// data goes to a temporary file that is renamed into place, so a failed
// write leaves no partial file under the artifact's name.
func WriteFile(dir string, art *Artifact) (string, error) {
	if art == nil {
		return "", fmt.Errorf("write artifact: nil artifact")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tiaki-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(art.Data); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", fmt.Errorf("write %s: %w", art.Filename, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", fmt.Errorf("close %s: %w", art.Filename, err)
	}

	final := filepath.Join(dir, filepath.Base(art.Filename))
	if err := os.Rename(tmpName, final); err != nil {
		cleanup()
		return "", fmt.Errorf("rename %s: %w", art.Filename, err)
	}
	return final, nil
}
