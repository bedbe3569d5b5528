package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/aretw0/fxforge"
	"github.com/aretw0/fxforge/internal/logging"
	"github.com/aretw0/fxforge/pkg/domain"
	"github.com/aretw0/fxforge/pkg/dsl"
	"github.com/aretw0/fxforge/pkg/scan"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format selects the manifest encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnknownKind is returned for a job entry with an unsupported kind.
var ErrUnknownKind = errors.New("unknown job kind")

// File is the decoded form of a manifest.
type File struct {
	Project string
	Jobs    []fxforge.Job
}

// document is the on-disk shape. Jobs stay untyped until their kind is known.
type document struct {
	Project string           `yaml:"project" json:"project"`
	Jobs    []map[string]any `yaml:"jobs" json:"jobs"`
}

// jobEntry is the union of every job field. Unused fields are rejected.
type jobEntry struct {
	Kind string `mapstructure:"kind"`

	Layer     string     `mapstructure:"layer"`
	PerClip   bool       `mapstructure:"per_clip"`
	Parameter string     `mapstructure:"parameter"`
	Selector  string     `mapstructure:"selector"`
	Enable    string     `mapstructure:"enable"`
	Items     []itemSpec `mapstructure:"items"`
	Menu      any        `mapstructure:"menu"`

	Folder     string   `mapstructure:"folder"`
	Extensions []string `mapstructure:"extensions"`

	Path    string  `mapstructure:"path"`
	Control string  `mapstructure:"control"`
	Type    string  `mapstructure:"type"`
	Value   float64 `mapstructure:"value"`
}

type itemSpec struct {
	Name  string `mapstructure:"name"`
	Clip  string `mapstructure:"clip"`
	Group int    `mapstructure:"group"`
	Empty bool   `mapstructure:"empty"`
}

type config struct {
	fsys   fs.FS
	logger *slog.Logger
}

// Option configures decoding.
type Option func(*config)

// WithFS sets the file system that "folder" entries are scanned in.
func WithFS(fsys fs.FS) Option {
	return func(c *config) {
		c.fsys = fsys
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

// Load reads a manifest file (YAML, or JSON for ".json"). Folder entries are
// resolved relative to the manifest's directory.
func Load(path string, opts ...Option) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	format := FormatYAML
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		format = FormatJSON
	}

	opts = append([]Option{WithFS(os.DirFS(filepath.Dir(path)))}, opts...)
	return Parse(data, format, opts...)
}

// Parse decodes manifest bytes.
func Parse(data []byte, format Format, opts ...Option) (*File, error) {
	cfg := &config{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}

	var doc document
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse manifest json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse manifest yaml: %w", err)
		}
	}

	b := dsl.New()
	for i, raw := range doc.Jobs {
		entry, err := decodeEntry(raw)
		if err != nil {
			return nil, fmt.Errorf("job %d: %w", i, err)
		}
		if err := cfg.declare(b, i, entry); err != nil {
			return nil, fmt.Errorf("job %d (%s): %w", i, entry.Kind, err)
		}
	}

	jobs, err := b.Build()
	if err != nil {
		return nil, err
	}
	cfg.logger.Debug("manifest decoded", "project", doc.Project, "jobs", len(jobs))
	return &File{Project: doc.Project, Jobs: jobs}, nil
}

// DecodeJob decodes a single job entry, as posted to the HTTP API.
// Folder entries are not supported here.
func DecodeJob(raw map[string]any) (fxforge.Job, error) {
	entry, err := decodeEntry(raw)
	if err != nil {
		return nil, err
	}
	if entry.Folder != "" {
		return nil, fmt.Errorf("folder %q: scanning is only available for manifest files", entry.Folder)
	}
	b := dsl.New()
	cfg := &config{logger: logging.NewNop()}
	if err := cfg.declare(b, 0, entry); err != nil {
		return nil, err
	}
	jobs, err := b.Build()
	if err != nil {
		return nil, err
	}
	return jobs[0], nil
}

func decodeEntry(raw map[string]any) (*jobEntry, error) {
	var entry jobEntry
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &entry,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook:       itemShorthand,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode job: %w", err)
	}
	return &entry, nil
}

// itemShorthand lets an item be written as a bare name.
func itemShorthand(from, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.String && to == reflect.TypeOf(itemSpec{}) {
		return map[string]any{"name": data}, nil
	}
	return data, nil
}

func (c *config) declare(b *dsl.Builder, index int, entry *jobEntry) error {
	switch fxforge.JobKind(entry.Kind) {
	case fxforge.JobBool:
		var jb *dsl.BoolBuilder
		if entry.PerClip {
			jb = b.PerClip(fmt.Sprintf("%d", index))
		} else {
			jb = b.Bool(entry.Layer)
		}
		for _, it := range entry.Items {
			if it.Empty {
				jb.Empty(it.Name)
			} else {
				jb.Clip(it.Name, it.Clip)
			}
		}
		if path, ok, err := menuPath(entry.Menu); err != nil {
			return err
		} else if ok {
			jb.InMenu(path)
		}

	case fxforge.JobInt:
		jb := b.Int(entry.Layer).Parameter(entry.Parameter)
		for _, it := range entry.Items {
			if it.Empty {
				jb.Empty(it.Name)
			} else {
				jb.Clip(it.Name, it.Clip)
			}
		}
		if path, ok, err := menuPath(entry.Menu); err != nil {
			return err
		} else if ok {
			jb.InMenu(path)
		}

	case fxforge.JobOverlay:
		jb := b.Overlay(entry.Layer).Selector(entry.Selector).Enable(entry.Enable)
		if entry.Folder != "" {
			groups, err := c.scanFolder(entry)
			if err != nil {
				return err
			}
			jb.Groups(groups...)
		}
		for _, it := range entry.Items {
			if it.Empty {
				continue
			}
			jb.Clip(it.Group, it.Name, it.Clip)
		}
		if path, ok, err := menuPath(entry.Menu); err != nil {
			return err
		} else if ok {
			jb.InMenu(path)
		}

	case fxforge.JobControl:
		kind := domain.KindBool
		if entry.Type != "" {
			var err error
			if kind, err = domain.ParseParameterKind(entry.Type); err != nil {
				return err
			}
		}
		b.Control(entry.Control).Sets(entry.Parameter, kind, entry.Value).In(entry.Path)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, entry.Kind)
	}
	return nil
}

func (c *config) scanFolder(entry *jobEntry) ([]domain.GroupedClip, error) {
	if c.fsys == nil {
		return nil, fmt.Errorf("folder %q: no file system configured", entry.Folder)
	}
	var opts []scan.Option
	if len(entry.Extensions) > 0 {
		opts = append(opts, scan.WithExtensions(entry.Extensions...))
	}
	opts = append(opts, scan.WithLogger(c.logger))
	return scan.Directory(c.fsys, entry.Folder, opts...)
}

// menuPath accepts `menu: true`, `menu: "Some/Path"` or `menu: {path: ...}`.
func menuPath(v any) (string, bool, error) {
	switch m := v.(type) {
	case nil:
		return "", false, nil
	case bool:
		return "", m, nil
	case string:
		return m, true, nil
	case map[string]any:
		var target fxforge.MenuTarget
		if err := mapstructure.Decode(m, &target); err != nil {
			return "", false, fmt.Errorf("failed to decode menu: %w", err)
		}
		return target.Path, true, nil
	default:
		return "", false, fmt.Errorf("invalid menu definition type: %T", v)
	}
}
