package jobs

import (
	"context"
	"log/slog"
	"time"
)

const ephemerisSyncName = "ephemeris-sync"

// ephemerisSyncer докачивает файлы эфемерид (ephemeris.Provisioner)
type ephemerisSyncer interface {
	Sync(ctx context.Context) (int, error)
}

// EphemerisSync периодически докачивает новые таблицы VSOP87 из S3.
// Тела, ранее попадавшие в missing, начинают считаться без рестарта.
type EphemerisSync struct {
	syncer   ephemerisSyncer
	interval time.Duration
	log      *slog.Logger
}

func NewEphemerisSync(syncer ephemerisSyncer, interval time.Duration, log *slog.Logger) *EphemerisSync {
	return &EphemerisSync{
		syncer:   syncer,
		interval: interval,
		log:      log,
	}
}

func (j *EphemerisSync) Name() string {
	return ephemerisSyncName
}

func (j *EphemerisSync) NextRun(now time.Time) time.Time {
	return now.Add(j.interval)
}

func (j *EphemerisSync) Run(ctx context.Context) error {
	downloaded, err := j.syncer.Sync(ctx)
	if err != nil {
		return err
	}
	if downloaded > 0 {
		j.log.Info("new ephemeris files downloaded", "count", downloaded)
	}
	return nil
}
