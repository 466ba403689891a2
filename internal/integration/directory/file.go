package directory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/futig/outreach-backend/internal/entity"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// fallbackKey names the entry used when an id has no record of its own.
const fallbackKey = "default"

type fileContents struct {
	Users         map[string]entity.ContextRecord `yaml:"users"`
	Organizations map[string]entity.ContextRecord `yaml:"organizations"`
}

// FileDirectory serves records from a YAML file:
//
//	users:
//	  default: {name: John Doe, title: Technical Recruiter}
//	organizations:
//	  acme: {name: Acme, industry: Retail, company_size: 50-100 employees}
//
// Unknown ids fall back to the "default" entry and then to no record.
type FileDirectory struct {
	path   string
	logger *zap.Logger

	mu   sync.RWMutex
	data fileContents
}

func NewFileDirectory(path string, logger *zap.Logger) (*FileDirectory, error) {
	d := &FileDirectory{
		path:   filepath.Clean(path),
		logger: logger,
	}

	if err := d.Reload(); err != nil {
		return nil, err
	}

	return d, nil
}

// Reload re-reads the file. On failure the previous records stay in place.
func (d *FileDirectory) Reload() error {
	raw, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("read context file: %w", err)
	}

	var data fileContents
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parse context file %s: %w", d.path, err)
	}

	d.mu.Lock()
	d.data = data
	d.mu.Unlock()

	d.logger.Info("context directory loaded",
		zap.String("path", d.path),
		zap.Int("users", len(data.Users)),
		zap.Int("organizations", len(data.Organizations)),
	)

	return nil
}

func (d *FileDirectory) UserContext(_ context.Context, userID string) (entity.ContextRecord, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return lookup(d.data.Users, userID), nil
}

func (d *FileDirectory) OrgContext(_ context.Context, orgID string) (entity.ContextRecord, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return lookup(d.data.Organizations, orgID), nil
}

func lookup(records map[string]entity.ContextRecord, id string) entity.ContextRecord {
	if record, ok := records[id]; ok && id != "" {
		return record
	}
	return records[fallbackKey]
}

// Watch reloads the file whenever it is written, created or renamed over, and
// calls onReload after every successful reload. The parent directory is
// watched so editors that replace the file atomically are picked up.
// Watch returns once the watcher is running; it stops when ctx is done.
func (d *FileDirectory) Watch(ctx context.Context, onReload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create context file watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(d.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(d.path), err)
	}

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != d.path ||
					!event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}

				if err := d.Reload(); err != nil {
					// A rename away leaves no file until the replacement lands.
					if !errors.Is(err, os.ErrNotExist) {
						d.logger.Warn("context file reload failed", zap.Error(err))
					}
					continue
				}
				if onReload != nil {
					onReload()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				d.logger.Warn("context file watcher error", zap.Error(err))
			}
		}
	}()

	return nil
}
