// Package scan discovers grouped clips in a folder tree.
//
// Each direct subfolder named "N.label" (N a decimal number) is one group;
// every clip file below it, at any depth, becomes a GroupedClip with Group N
// and the file's base name (without extension) as its name. Other subfolders
// and loose files are ignored.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/aretw0/fxforge/internal/logging"
	"github.com/aretw0/fxforge/pkg/domain"
)

// DefaultExtension is the clip file extension matched when none is configured.
const DefaultExtension = ".anim"

var groupFolder = regexp.MustCompile(`^(\d+)\.`)

// ErrNoGroups is returned when a folder has no "N.label" subfolders.
var ErrNoGroups = errors.New("no numbered subfolders found")

type config struct {
	extensions []string
	prefix     string
	logger     *slog.Logger
}

// Option configures a scan.
type Option func(*config)

// WithExtensions replaces the matched file extensions (e.g. ".anim", ".json").
func WithExtensions(exts ...string) Option {
	return func(c *config) {
		c.extensions = exts
	}
}

// WithPathPrefix is prepended to each clip path, typically the folder's
// location in the host project.
func WithPathPrefix(prefix string) Option {
	return func(c *config) {
		c.prefix = prefix
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// GroupOf returns N for a folder named "N.label".
func GroupOf(folder string) (int, bool) {
	m := groupFolder.FindStringSubmatch(folder)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Directory scans root within fsys. Groups come out in folder name order and
// clips in lexical path order within each group.
func Directory(fsys fs.FS, root string, opts ...Option) ([]domain.GroupedClip, error) {
	cfg := &config{extensions: []string{DefaultExtension}, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}
	if root == "" {
		root = "."
	}

	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", root, err)
	}

	var clips []domain.GroupedClip
	groups := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		group, ok := GroupOf(entry.Name())
		if !ok {
			cfg.logger.Debug("folder skipped", "folder", entry.Name())
			continue
		}
		groups++

		dir := path.Join(root, entry.Name())
		err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !cfg.matches(d.Name()) {
				return nil
			}
			name := strings.TrimSuffix(d.Name(), path.Ext(d.Name()))
			clips = append(clips, domain.GroupedClip{
				Group:     group,
				NamedClip: domain.Item(name, path.Join(cfg.prefix, p)),
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", dir, err)
		}
	}

	if groups == 0 {
		return nil, fmt.Errorf("%s: %w", root, ErrNoGroups)
	}
	cfg.logger.Debug("folder scanned", "root", root, "groups", groups, "clips", len(clips))
	return clips, nil
}

func (c *config) matches(name string) bool {
	ext := path.Ext(name)
	for _, want := range c.extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}
