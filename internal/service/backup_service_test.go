package service_test

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/mvanholst/portfolio-tracker-backend/internal/config"
	"github.com/mvanholst/portfolio-tracker-backend/internal/model"
	"github.com/mvanholst/portfolio-tracker-backend/internal/service"
	"github.com/mvanholst/portfolio-tracker-backend/internal/testutil"
)

// TestBackupService_RunBackup tests writing snapshot dumps to disk.
//
// WHY: Backups are only worth having if they restore: a plain dump must be a
// valid snapshot document and an encrypted dump must decrypt back to one with
// the configured key.
func TestBackupService_RunBackup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	snapshotService := testutil.NewTestSnapshotService(t, db)
	ctx := context.Background()

	testutil.CreateAsset(t, db, "VAS", 100, 0.5)

	t.Run("plain backup is a valid snapshot document", func(t *testing.T) {
		svc, err := service.NewBackupService(snapshotService, config.BackupConfig{
			Dir:      t.TempDir(),
			Schedule: "0 3 * * *",
		})
		if err != nil {
			t.Fatalf("NewBackupService returned unexpected error: %v", err)
		}

		path, err := svc.RunBackup(ctx)
		if err != nil {
			t.Fatalf("RunBackup returned unexpected error: %v", err)
		}
		if !strings.HasSuffix(path, ".json") {
			t.Errorf("Expected a .json backup file, got %s", path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read backup file: %v", err)
		}
		var snapshot model.Snapshot
		if err := json.Unmarshal(data, &snapshot); err != nil {
			t.Fatalf("Backup is not a valid snapshot document: %v", err)
		}
		if len(snapshot.Assets) != 1 || snapshot.Assets[0].Ticker != "VAS" {
			t.Errorf("Backup does not contain the portfolio, got %+v", snapshot.Assets)
		}
	})

	t.Run("encrypted backup decrypts with the configured key", func(t *testing.T) {
		var key fernet.Key
		if err := key.Generate(); err != nil {
			t.Fatalf("Failed to generate key: %v", err)
		}

		svc, err := service.NewBackupService(snapshotService, config.BackupConfig{
			Dir:      t.TempDir(),
			Schedule: "0 3 * * *",
			Key:      key.Encode(),
		})
		if err != nil {
			t.Fatalf("NewBackupService returned unexpected error: %v", err)
		}

		path, err := svc.RunBackup(ctx)
		if err != nil {
			t.Fatalf("RunBackup returned unexpected error: %v", err)
		}
		if !strings.HasSuffix(path, ".json.fernet") {
			t.Errorf("Expected a .json.fernet backup file, got %s", path)
		}

		token, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read backup file: %v", err)
		}
		data := fernet.VerifyAndDecrypt(token, time.Hour, []*fernet.Key{&key})
		if data == nil {
			t.Fatal("Backup did not decrypt with the configured key")
		}
		var snapshot model.Snapshot
		if err := json.Unmarshal(data, &snapshot); err != nil {
			t.Fatalf("Decrypted backup is not a valid snapshot document: %v", err)
		}
	})

	t.Run("no backup directory disables the service", func(t *testing.T) {
		svc, err := service.NewBackupService(snapshotService, config.BackupConfig{})
		if err != nil {
			t.Fatalf("NewBackupService returned unexpected error: %v", err)
		}
		if svc != nil {
			t.Error("Expected nil service when no directory is configured")
		}
	})

	t.Run("invalid key is rejected", func(t *testing.T) {
		_, err := service.NewBackupService(snapshotService, config.BackupConfig{
			Dir:      t.TempDir(),
			Schedule: "0 3 * * *",
			Key:      "not-a-key",
		})
		if err == nil {
			t.Error("Expected an error for an undecodable key")
		}
	})
}
