package ephemeris

import (
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	// Path каталог с таблицами VSOP87 (VSOP87B.ear, VSOP87B.mar, ...)
	Path string `envconfig:"SE_EPHE_PATH" default:"ephe"`
}

// EnsureDir создаёт каталог эфемерид и проверяет, что в него можно писать.
// Ошибка здесь должна останавливать старт сервиса.
func (c *Config) EnsureDir() (string, error) {
	dir, err := filepath.Abs(c.Path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve ephemeris path %s: %w", c.Path, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create ephemeris dir %s: %w", dir, err)
	}

	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return "", fmt.Errorf("ephemeris dir %s is not writable: %w", dir, err)
	}
	probe.Close()
	_ = os.Remove(probe.Name())

	return dir, nil
}
