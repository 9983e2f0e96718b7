package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrSessionNotFound is returned when no transcript exists for the
// requested session ID under the Claude projects directory.
var ErrSessionNotFound = errors.New("session not found")

// Info describes one discovered transcript without loading it.
type Info struct {
	Path       string
	Project    string // decoded display name (e.g., "gitlore")
	ProjectDir string // raw directory name
	SessionID  string // extracted from filename
	IsSubagent bool
	Size       int64
	ModTime    time.Time
}

// Find locates the transcript for a session ID by walking the Claude
// projects directory. Returns ErrSessionNotFound when no file matches.
func Find(claudeDir, sessionID string) (string, error) {
	target := sessionID + ".jsonl"
	projectsDir := filepath.Join(claudeDir, "projects")

	var found string
	err := filepath.WalkDir(projectsDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries
		}
		if d.IsDir() || d.Name() != target {
			return nil
		}
		found = path
		return filepath.SkipAll
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", ErrSessionNotFound
	}
	return found, nil
}

// Discover walks the Claude projects directory and lists every JSONL
// transcript with its project and file metadata.
func Discover(claudeDir string) ([]Info, error) {
	projectsDir := filepath.Join(claudeDir, "projects")

	stat, err := os.Stat(projectsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !stat.IsDir() {
		return nil, nil
	}

	var infos []Info

	err = filepath.WalkDir(projectsDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries
		}
		if d.IsDir() || filepath.Ext(path) != ".jsonl" {
			return nil
		}
		// Skip backups written next to the transcripts
		if filepath.Base(filepath.Dir(path)) == "backups" {
			return nil
		}

		rel, _ := filepath.Rel(projectsDir, path)
		parts := strings.Split(rel, string(filepath.Separator))
		if len(parts) < 2 {
			return nil
		}

		name := d.Name()
		info := Info{
			Path:       path,
			Project:    decodeProjectName(parts[0]),
			ProjectDir: parts[0],
			SessionID:  strings.TrimSuffix(name, ".jsonl"),
		}
		// Subagent transcripts live at <project>/<session>/subagents/agent-<id>.jsonl
		if len(parts) >= 4 && parts[2] == "subagents" {
			info.IsSubagent = true
		}

		if fi, err := d.Info(); err == nil {
			info.Size = fi.Size()
			info.ModTime = fi.ModTime()
		}

		infos = append(infos, info)
		return nil
	})

	return infos, err
}

// decodeProjectName extracts a human-readable project name from the
// encoded directory name. Claude Code encodes absolute paths by
// replacing "/" with "-", so:
//
//	"-Users-alice-projects-gitlore" -> "gitlore"
//	"-Users-alice-projects-my-cool-project" -> "my-cool-project"
//
// We find the last known parent component ("projects", "repos", ...)
// and take everything after it, falling back to the last segment.
func decodeProjectName(dirName string) string {
	parts := strings.Split(dirName, "-")

	knownParents := map[string]bool{
		"projects": true, "repos": true, "src": true,
		"code": true, "workspace": true, "dev": true,
	}

	for i := len(parts) - 2; i >= 0; i-- {
		if knownParents[strings.ToLower(parts[i])] {
			name := strings.Join(parts[i+1:], "-")
			if name != "" {
				return name
			}
		}
	}

	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}

	return dirName
}
