package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
	"path/filepath"
)

// TranslationAdapter loads translations from some source.
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter serves translations held in memory.
type MapAdapter struct {
	Data map[string]map[string]any
}

func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]any, error) {
	if a.Data == nil {
		return make(map[string]map[string]any), nil
	}
	return a.Data, nil
}

// FileAdapter loads a single translation file. A nil parser is chosen by
// the file extension.
type FileAdapter struct {
	parser Parser
	path   string
}

// NewFileAdapter returns nil when path is empty or no parser fits it.
func NewFileAdapter(parser Parser, path string) *FileAdapter {
	if path == "" {
		return nil
	}
	if parser == nil {
		if parser = NewParserForFile(path); parser == nil {
			return nil
		}
	}
	return &FileAdapter{parser: parser, path: path}
}

func (a *FileAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	dir, name := filepath.Split(a.path)
	if dir == "" {
		dir = "."
	}
	out := make(map[string]map[string]any)
	if err := loadFile(ctx, os.DirFS(dir), name, a.parser, out); err != nil {
		return nil, err
	}
	return out, nil
}

// FSAdapter loads every supported file of one directory in fsys, in
// lexical order. Later files override earlier ones per message. Works
// with embed.FS and os.DirFS alike.
type FSAdapter struct {
	parser Parser
	fsys   fs.FS
	dir    string
}

// NewFSAdapter returns an adapter over dir in fsys. With a nil parser each
// file is parsed according to its extension.
func NewFSAdapter(parser Parser, fsys fs.FS, dir string) *FSAdapter {
	if fsys == nil {
		return nil
	}
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{parser: parser, fsys: fsys, dir: dir}
}

// NewDirectoryAdapter is an FSAdapter over a directory on disk.
func NewDirectoryAdapter(parser Parser, dir string) *FSAdapter {
	if dir == "" {
		return nil
	}
	return NewFSAdapter(parser, os.DirFS(dir), ".")
}

func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDir, err)
	}

	out := make(map[string]map[string]any)
	var failures []error
	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		parser := a.parser
		if parser == nil {
			parser = NewParserForFile(entry.Name())
		}
		if parser == nil || !parser.SupportsFileExtension(path.Ext(entry.Name())) {
			continue
		}
		if err := loadFile(ctx, a.fsys, path.Join(a.dir, entry.Name()), parser, out); err != nil {
			if errors.Is(err, ErrLoadingCancelled) {
				return nil, err
			}
			failures = append(failures, err)
			continue
		}
		loaded++
	}

	if loaded == 0 {
		return nil, errors.Join(append([]error{
			fmt.Errorf("%w in %q", ErrNoTranslationFiles, a.dir),
		}, failures...)...)
	}
	return out, nil
}

func loadFile(ctx context.Context, fsys fs.FS, name string, parser Parser, into map[string]map[string]any) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrLoadingCancelled, err)
	}

	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return errors.Join(ErrFailedToReadFile, err)
	}
	if len(content) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFile, name)
	}

	parsed, err := parser.Parse(ctx, content)
	if err != nil {
		return errors.Join(ErrFailedToParseFile, fmt.Errorf("%s", name), err)
	}

	for lang, messages := range parsed {
		if into[lang] == nil {
			into[lang] = make(map[string]any, len(messages))
		}
		maps.Copy(into[lang], messages)
	}
	return nil
}
