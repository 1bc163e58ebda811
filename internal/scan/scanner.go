// Package scan discovers candidate audio files for batch conversion.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/convf/convmusic/internal/ffmpeg"
)

// Options configures directory scanning behavior.
type Options struct {
	// Recursive enables walking into subdirectories.
	Recursive bool
	// IncludeHidden includes dotfiles and dot-directories.
	IncludeHidden bool
}

// AudioFiles returns the paths of likely audio files under dir, sorted by
// path. Known non-audio extensions are filtered out; unknown extensions are
// kept so FFmpeg can decide whether it can decode them.
func AudioFiles(dir string, opts Options) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	var files []string

	if opts.Recursive {
		err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != dir && isHidden(d.Name()) && !opts.IncludeHidden {
					return filepath.SkipDir
				}
				return nil
			}
			if candidate(d.Name(), opts) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk directory: %w", err)
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read directory: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if candidate(entry.Name(), opts) {
				files = append(files, filepath.Join(dir, entry.Name()))
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// candidate reports whether a file name looks like convertible audio.
func candidate(name string, opts Options) bool {
	if isHidden(name) && !opts.IncludeHidden {
		return false
	}
	return ffmpeg.LikelyAudioFile(filepath.Ext(name))
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
