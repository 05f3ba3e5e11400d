// Package catalog provides the localized message lookup used by the
// fault variants. Templates are fmt format strings keyed by a catalog
// key; the built-in English set can be overlaid from a TOML file and
// mutated at runtime, so a fault constructed from a key re-renders
// against current content every time it is displayed.
package catalog

import (
	"fmt"
	"strings"
	"sync"

	"codeberg.org/mutker/sqlfault/internal/errors"
	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
)

type Catalog struct {
	mu        sync.RWMutex
	templates map[string]string
	watcher   *fsnotify.Watcher
}

// New returns a catalog populated with the built-in templates.
func New() *Catalog {
	templates := make(map[string]string, len(defaultTemplates))
	for key, tmpl := range defaultTemplates {
		templates[key] = tmpl
	}

	return &Catalog{templates: templates}
}

// Resolve renders the template for key with the given positional
// arguments. An unknown key and an argument/verb mismatch are distinct
// failures; neither is swallowed.
func (c *Catalog) Resolve(key string, args ...any) (string, error) {
	errFactory := errors.New()

	c.mu.RLock()
	tmpl, ok := c.templates[key]
	c.mu.RUnlock()

	if !ok {
		return "", errFactory.WithData(ErrUnknownKey, key)
	}

	if len(args) == 0 && !strings.Contains(tmpl, "%") {
		return tmpl, nil
	}

	msg := fmt.Sprintf(tmpl, args...)
	if strings.Contains(msg, "%!") {
		return "", errFactory.WithData(ErrBadTemplate, key)
	}

	return msg, nil
}

// Set installs or replaces the template for key.
func (c *Catalog) Set(key, template string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templates[key] = template
}

// Remove deletes the template for key. Subsequent resolves of the key
// fail with ErrUnknownKey.
func (c *Catalog) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.templates, key)
}

// LoadFile overlays templates from a TOML file of key = "template"
// pairs. Keys absent from the file keep their current templates.
func (c *Catalog) LoadFile(path string) error {
	errFactory := errors.New()

	loaded := make(map[string]string)
	if _, err := toml.DecodeFile(path, &loaded); err != nil {
		return errFactory.Wrap(ErrReadCatalog, err)
	}

	for key, tmpl := range loaded {
		if tmpl == "" {
			return errFactory.WithData(ErrInvalidCatalog, key)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for key, tmpl := range loaded {
		c.templates[key] = tmpl
	}

	return nil
}

// Watch overlays the file like LoadFile and re-applies it whenever the
// file changes on disk. A failed reload keeps the previous content.
func (c *Catalog) Watch(path string) error {
	errFactory := errors.New()

	if err := c.LoadFile(path); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errFactory.Wrap(ErrReadCatalog, err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return errFactory.Wrap(ErrReadCatalog, err)
	}

	c.mu.Lock()
	c.watcher = watcher
	c.mu.Unlock()

	go func() {
		for event := range watcher.Events {
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				_ = c.LoadFile(path)
			}
		}
	}()

	return nil
}

// Close stops a watch started with Watch. Safe to call when no watch
// is active.
func (c *Catalog) Close() error {
	c.mu.Lock()
	watcher := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	if watcher == nil {
		return nil
	}

	return watcher.Close()
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide catalog, created on first use.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = New()
	})

	return defaultCatalog
}
