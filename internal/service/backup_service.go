package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/robfig/cron/v3"

	"github.com/mvanholst/portfolio-tracker-backend/internal/config"
)

// BackupService writes scheduled JSON snapshot dumps to the configured
// backup directory. When a fernet key is configured the dump is encrypted;
// otherwise it is written as plain JSON.
type BackupService struct {
	snapshotService *SnapshotService
	dir             string
	schedule        string
	key             *fernet.Key
	cron            *cron.Cron
}

// NewBackupService creates a BackupService from the backup configuration.
// Returns (nil, nil) when no backup directory is configured.
func NewBackupService(snapshotService *SnapshotService, cfg config.BackupConfig) (*BackupService, error) {
	if cfg.Dir == "" {
		return nil, nil
	}

	s := &BackupService{
		snapshotService: snapshotService,
		dir:             cfg.Dir,
		schedule:        cfg.Schedule,
		cron:            cron.New(cron.WithLocation(time.UTC)),
	}

	if cfg.Key != "" {
		key, err := fernet.DecodeKey(cfg.Key)
		if err != nil {
			return nil, fmt.Errorf("invalid backup key: %w", err)
		}
		s.key = key
	}

	return s, nil
}

// Start registers the backup job and starts the scheduler.
func (s *BackupService) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.RunBackup(context.Background()); err != nil {
			log.Printf("Scheduled backup failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	log.Printf("Backup scheduler started: %q -> %s", s.schedule, s.dir)
	return nil
}

// Stop stops the scheduler and waits for a running backup to finish.
func (s *BackupService) Stop() {
	<-s.cron.Stop().Done()
}

// RunBackup exports the current snapshot and writes it to a timestamped file
// in the backup directory, returning the file path.
func (s *BackupService) RunBackup(ctx context.Context) (string, error) {
	snapshot, err := s.snapshotService.Export(ctx)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	name := "snapshot-" + time.Now().UTC().Format("20060102T150405Z") + ".json"
	if s.key != nil {
		token, err := fernet.EncryptAndSign(data, s.key)
		if err != nil {
			return "", fmt.Errorf("failed to encrypt snapshot: %w", err)
		}
		data = token
		name += ".fernet"
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return path, nil
}
