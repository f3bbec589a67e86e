package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/providerkit/core/logger"
	"github.com/dmitrymomot/providerkit/core/observable"
)

// Decoder turns raw file bytes into a value. yaml.Unmarshal and
// json.Unmarshal both satisfy it.
type Decoder func(data []byte, v any) error

type options struct {
	decode   Decoder
	debounce time.Duration
	log      *slog.Logger
}

// Option configures a file source.
type Option func(*options)

// WithJSON decodes the file as JSON instead of the default YAML.
func WithJSON() Option {
	return func(o *options) {
		o.decode = json.Unmarshal
	}
}

// WithDecoder substitutes a custom decoder.
func WithDecoder(fn Decoder) Option {
	return func(o *options) {
		if fn != nil {
			o.decode = fn
		}
	}
}

// WithDebounce adjusts how long the watcher waits after the last event before
// reloading. Editors emit bursts of events per save; the delay also lets
// atomic replace operations settle. Defaults to 100ms.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// WithLogger sets the logger for reload activity and errors. Silent by
// default.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// File feeds an observable value from one file on disk, turning static
// configuration into a live broadcast: every write to the file decodes into T
// and Sets the target, which notifies its subscribers as usual.
type File[T any] struct {
	path   string
	dir    string
	base   string
	target *observable.Value[T]
	opts   options
}

// NewFile creates a source reading path into target. The default decoder is
// YAML; WithJSON or WithDecoder change it. The file does not have to exist
// yet, but its directory must by the time Run starts.
func NewFile[T any](path string, target *observable.Value[T], opts ...Option) (*File[T], error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if target == nil {
		return nil, ErrNilTarget
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	f := &File[T]{
		path:   abs,
		dir:    filepath.Dir(abs),
		base:   filepath.Base(abs),
		target: target,
		opts: options{
			decode:   yaml.Unmarshal,
			debounce: 100 * time.Millisecond,
			log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		},
	}
	for _, opt := range opts {
		opt(&f.opts)
	}
	return f, nil
}

// Path returns the absolute path of the watched file.
func (f *File[T]) Path() string {
	return f.path
}

// Load reads and decodes the file once and Sets the target. Callers that
// must fail fast on a broken file at startup call Load before Run; Run
// itself treats load failures as transient.
func (f *File[T]) Load() error {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", f.path, err)
	}

	var next T
	if err := f.opts.decode(raw, &next); err != nil {
		return fmt.Errorf("decode %s: %w", f.path, err)
	}

	f.target.Set(next)
	return nil
}

// Run loads the file, then watches it until ctx is canceled, reloading on
// every write or replace. Load and decode failures during the run are logged
// and skipped; the target keeps its last good value. The watch is placed on
// the parent directory because editors and config writers replace files by
// rename, which silently breaks a watch on the path itself.
func (f *File[T]) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(f.dir); err != nil {
		return fmt.Errorf("watch %s: %w", f.dir, err)
	}

	if err := f.Load(); err != nil {
		f.opts.log.Warn("initial load failed", logger.Component("source"), logger.File(f.path), logger.Error(err))
	}

	timer := time.NewTimer(f.opts.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != f.base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(f.opts.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.opts.log.Error("watch error", logger.Component("source"), logger.File(f.path), logger.Error(err))

		case <-timer.C:
			if err := f.Load(); err != nil {
				f.opts.log.Warn("reload failed", logger.Component("source"), logger.File(f.path), logger.Error(err))
				continue
			}
			f.opts.log.Debug("reloaded", logger.Component("source"), logger.File(f.path))
		}
	}
}
