package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrNoBackups is returned by restore when no usable backup exists for
// the session.
var ErrNoBackups = errors.New("no backups found")

// Backup is one saved copy of a transcript, named
// <sessionId>.jsonl.<unixMillis> inside the sibling backups directory.
type Backup struct {
	Path  string
	Stamp time.Time
}

// BackupDir returns the backups directory that sits next to a transcript.
func BackupDir(transcriptPath string) string {
	return filepath.Join(filepath.Dir(transcriptPath), "backups")
}

// CreateBackup durably copies the transcript into its backups directory
// and returns the backup path. The copy is synced to disk before this
// returns; the transcript itself must never be overwritten first.
func CreateBackup(transcriptPath, sessionID string) (string, error) {
	data, err := os.ReadFile(transcriptPath)
	if err != nil {
		return "", fmt.Errorf("reading transcript: %w", err)
	}

	dir := BackupDir(transcriptPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup dir: %w", err)
	}

	// Bump the stamp on collision so rapid consecutive backups never
	// overwrite each other.
	stamp := time.Now().UnixMilli()
	var dst string
	for {
		dst = filepath.Join(dir, fmt.Sprintf("%s.jsonl.%d", sessionID, stamp))
		if _, err := os.Stat(dst); os.IsNotExist(err) {
			break
		}
		stamp++
	}

	if err := writeFileDurable(dst, data); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}
	return dst, nil
}

// ListBackups returns the session's backups, newest first. Files whose
// timestamp suffix does not parse as an integer are ignored.
func ListBackups(transcriptPath, sessionID string) ([]Backup, error) {
	dir := BackupDir(transcriptPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading backup dir: %w", err)
	}

	prefix := sessionID + ".jsonl."
	var backups []Backup
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		millis, err := strconv.ParseInt(strings.TrimPrefix(e.Name(), prefix), 10, 64)
		if err != nil {
			continue
		}
		backups = append(backups, Backup{
			Path:  filepath.Join(dir, e.Name()),
			Stamp: time.UnixMilli(millis),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Stamp.After(backups[j].Stamp)
	})
	return backups, nil
}

// LatestBackup returns the backup with the numerically largest timestamp
// suffix, or ErrNoBackups.
func LatestBackup(transcriptPath, sessionID string) (Backup, error) {
	backups, err := ListBackups(transcriptPath, sessionID)
	if err != nil {
		return Backup{}, err
	}
	if len(backups) == 0 {
		return Backup{}, ErrNoBackups
	}
	return backups[0], nil
}

// Restore copies the latest backup over the live transcript and returns
// the backup that was used. No new backup is taken, so running restore
// twice yields the same transcript.
func Restore(transcriptPath, sessionID string) (Backup, error) {
	latest, err := LatestBackup(transcriptPath, sessionID)
	if err != nil {
		return Backup{}, err
	}

	data, err := os.ReadFile(latest.Path)
	if err != nil {
		return Backup{}, fmt.Errorf("reading backup: %w", err)
	}
	if err := writeFileDurable(transcriptPath, data); err != nil {
		return Backup{}, fmt.Errorf("restoring transcript: %w", err)
	}
	return latest, nil
}

// WriteLines atomically replaces a transcript with the given lines, one
// record per line with a trailing newline. Zero lines produce an empty
// file.
func WriteLines(path string, lines [][]byte) error {
	size := 0
	for _, l := range lines {
		size += len(l) + 1
	}
	data := make([]byte, 0, size)
	for _, l := range lines {
		data = append(data, l...)
		data = append(data, '\n')
	}
	return writeFileDurable(path, data)
}

// writeFileDurable writes data through a synced temp file in the
// destination directory, then renames it into place. A crash mid-write
// leaves the destination untouched.
func writeFileDurable(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".tmp_prune_*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
