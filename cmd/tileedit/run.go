package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/milk9111/tileedit/config"
	"github.com/milk9111/tileedit/editor"
	"github.com/milk9111/tileedit/levels"
	"github.com/milk9111/tileedit/script"
)

type options struct {
	configPath string
	level      string
	sample     bool
	newLevel   bool
	width      int
	height     int
	script     string
	out        string
	copy       bool
}

// loadLevel picks the starting level: -new, then -sample, then -level (a file
// on disk before an embedded name), else an empty untitled level.
func loadLevel(opts options) (*levels.Level, error) {
	switch {
	case opts.newLevel:
		return levels.New("untitled", opts.width, opts.height), nil
	case opts.sample:
		return levels.LoadLevelFromFS("sample")
	case opts.level != "":
		if _, err := os.Stat(opts.level); err == nil {
			return levels.Load(opts.level)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return levels.LoadLevelFromFS(opts.level)
	}
	return levels.New("untitled", opts.width, opts.height), nil
}

// run opens a fresh copy of the level, applies the script and prints the
// result to w.
func run(ctx context.Context, s *editor.Session, opts options, w io.Writer) error {
	lvl, err := loadLevel(opts)
	if err != nil {
		return err
	}
	s.Open(lvl)

	if opts.script != "" {
		if err := script.RunFile(ctx, s, opts.script); err != nil {
			return err
		}
	}

	dump := s.Dump()
	fmt.Fprint(w, dump)
	fmt.Fprintln(w, s.Status())

	if opts.out != "" {
		if err := s.Save(opts.out); err != nil {
			return err
		}
	}
	if opts.copy {
		copyToClipboard(dump)
	}
	return nil
}

// watchDirs returns the directories holding the files run reads from disk.
func watchDirs(opts options) []string {
	var paths []string
	if opts.configPath != "" {
		paths = append(paths, opts.configPath)
	}
	if opts.script != "" {
		paths = append(paths, opts.script)
	}
	if opts.level != "" && !opts.newLevel && !opts.sample {
		if _, err := os.Stat(opts.level); err == nil {
			paths = append(paths, opts.level)
		}
	}

	seen := map[string]bool{}
	var dirs []string
	for _, p := range paths {
		dir := filepath.Dir(p)
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		if seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	return dirs
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// watchLoop reruns on every change to the config, level or script until ctx
// is cancelled. Writes to -out are ignored so saving does not retrigger a run.
func watchLoop(ctx context.Context, s *editor.Session, opts options, debug bool, w io.Writer) error {
	dirs := watchDirs(opts)
	if len(dirs) == 0 {
		return errors.New("nothing to watch: pass -config, -script or a level file")
	}
	watcher, err := config.NewWatcher(dirs...)
	if err != nil {
		return err
	}
	defer watcher.Close()
	log.Info().Strs("dirs", dirs).Msg("tileedit: watching for changes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("tileedit: watcher error")
		case path, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if samePath(path, opts.out) {
				continue
			}
			log.Info().Str("path", path).Msg("tileedit: change detected")
			if samePath(path, opts.configPath) {
				cfg, err := config.Load(opts.configPath)
				if err != nil {
					log.Error().Err(err).Msg("tileedit: config reload failed, keeping previous")
				} else {
					s.ApplyConfig(cfg)
					setLogLevel(cfg.LogLevel, debug)
				}
			}
			if err := run(ctx, s, opts, w); err != nil {
				log.Error().Err(err).Msg("tileedit: run failed")
			}
		}
	}
}
