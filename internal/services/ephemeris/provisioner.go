package ephemeris

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"log/slog"

	"github.com/dogumharitan777/astro-api/internal/ports/storage"
)

// Provisioner докачивает недостающие файлы эфемерид из S3 в локальный каталог
type Provisioner struct {
	s3     storage.IS3Client
	prefix string
	dir    string
	log    *slog.Logger
}

func NewProvisioner(s3 storage.IS3Client, prefix, dir string, log *slog.Logger) *Provisioner {
	return &Provisioner{
		s3:     s3,
		prefix: prefix,
		dir:    dir,
		log:    log,
	}
}

// Sync скачивает объекты, базовое имя которых отсутствует в каталоге.
// Возвращает число скачанных файлов.
func (p *Provisioner) Sync(ctx context.Context) (int, error) {
	keys, err := p.s3.ListFiles(ctx, p.prefix)
	if err != nil {
		return 0, fmt.Errorf("failed to list ephemeris files: %w", err)
	}

	downloaded := 0
	for _, key := range keys {
		name := path.Base(key)
		if name == "." || name == "/" {
			continue
		}

		dst := filepath.Join(p.dir, name)
		_, err := os.Stat(dst)
		if err == nil {
			continue
		}
		if !errors.Is(err, os.ErrNotExist) {
			return downloaded, fmt.Errorf("failed to stat %s: %w", dst, err)
		}

		if err := p.s3.DownloadFile(ctx, key, dst); err != nil {
			return downloaded, err
		}
		downloaded++
	}

	p.log.Info("ephemeris provisioned",
		"dir", p.dir,
		"listed", len(keys),
		"downloaded", downloaded,
	)

	return downloaded, nil
}
