package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const backupDirName = "backup"

// CreateBackup copies a database file into the backup/ directory next to
// it, named with the current local time, and returns the backup path.
func CreateBackup(dbPath string) (string, error) {
	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("Database file does not exist")
		}
		return "", err
	}
	backupDir := filepath.Join(filepath.Dir(dbPath), backupDirName)
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", err
	}
	stamp := time.Now().Format("2006-01-02_15-04-05")
	backupPath := filepath.Join(backupDir, stamp+"_"+filepath.Base(dbPath))
	if err := copyFile(dbPath, backupPath); err != nil {
		return "", err
	}
	return backupPath, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
