package page

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// engine is a pongo2 template set with a per-path cache. Templates load from
// an fs.FS first and an optional directory on disk second.
type engine struct {
	mu sync.RWMutex

	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

func newEngine(files fs.FS, baseDir string) (*engine, error) {
	if files == nil && strings.TrimSpace(baseDir) == "" {
		return nil, errors.New("page: need to provide either base dir or fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if dir := strings.TrimSpace(baseDir); dir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(dir)
		if err != nil {
			return nil, fmt.Errorf("page: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(files))
	}

	return &engine{
		set:       pongo2.NewSet("reorder", loaders...),
		templates: make(map[string]*pongo2.Template),
	}, nil
}

func (e *engine) render(path string, data pongo2.Context) (string, error) {
	tmpl, err := e.template(path)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(data, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("page: execute template %q: %w", path, err)
	}
	return buf.String(), nil
}

func (e *engine) template(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("page: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}
