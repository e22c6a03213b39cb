package sftpclient

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"time"
)

// FileInfo holds information about a remote file.
type FileInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
}

func newFileInfo(fi os.FileInfo) FileInfo {
	return FileInfo{Name: fi.Name(), Size: fi.Size(), ModTime: fi.ModTime()}
}

// ListFiles returns the regular files in dir whose name matches pattern,
// newest first. An empty pattern matches everything.
func (c *Client) ListFiles(dir, pattern string) ([]FileInfo, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
	}
	entries, err := c.sftp.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	files := filterFiles(entries, re)
	c.log.Debug("listed remote files", "path", dir, "pattern", pattern, "matches", len(files))
	return files, nil
}

func filterFiles(entries []os.FileInfo, re *regexp.Regexp) []FileInfo {
	var out []FileInfo
	for _, e := range entries {
		if !e.Mode().IsRegular() || !re.MatchString(e.Name()) {
			continue
		}
		out = append(out, newFileInfo(e))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ModTime.Equal(out[j].ModTime) {
			return out[i].ModTime.After(out[j].ModTime)
		}
		return out[i].Name < out[j].Name
	})
	return out
}
