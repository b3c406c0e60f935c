package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const dirPerm = 0o755

// Sub-directory names created under the storage base path.
const (
	ArticlesDir      = "articles"
	ReportsDir       = "reports"
	ImagesDir        = "images"
	VideosDir        = "videos"
	SocialContentDir = "social_content"
)

var (
	// ErrNotDirectory indicates a layout path exists but is a regular file.
	ErrNotDirectory = errors.New("path exists and is not a directory")
)

// Layout is the fixed set of directories content stages expect to exist.
type Layout struct {
	Base          string
	Articles      string
	Reports       string
	Images        string
	Videos        string
	SocialContent string
}

// NewLayout derives the six layout directories from base.
func NewLayout(base string) Layout {
	return Layout{
		Base:          base,
		Articles:      filepath.Join(base, ArticlesDir),
		Reports:       filepath.Join(base, ReportsDir),
		Images:        filepath.Join(base, ImagesDir),
		Videos:        filepath.Join(base, VideosDir),
		SocialContent: filepath.Join(base, SocialContentDir),
	}
}

// Paths returns every layout directory, base first.
func (l Layout) Paths() []string {
	return []string{l.Base, l.Articles, l.Reports, l.Images, l.Videos, l.SocialContent}
}

// Ensure creates every layout directory and its missing ancestors.
// Directories that already exist are left untouched, so repeated calls are safe.
func (l Layout) Ensure() error {
	for _, dir := range l.Paths() {
		if dir == "" {
			return fmt.Errorf("ensure storage layout: empty directory path")
		}
		if info, err := os.Stat(dir); err == nil && !info.IsDir() {
			return fmt.Errorf("ensure %s: %w", dir, ErrNotDirectory)
		}
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("ensure %s: %w", dir, err)
		}
	}
	return nil
}

// Missing reports the layout directories that are not present as directories.
// It only inspects the filesystem.
func (l Layout) Missing() []string {
	var missing []string
	for _, dir := range l.Paths() {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			missing = append(missing, dir)
		}
	}
	return missing
}

// Ready reports whether every layout directory exists.
func (l Layout) Ready() bool {
	return len(l.Missing()) == 0
}
