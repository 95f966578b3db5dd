package fixtures

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/adrg/frontmatter"
	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

var (
	ErrInvalidDocument   = errors.New("fixtures: invalid document")
	ErrUnsupportedFormat = errors.New("fixtures: unsupported file format")
)

const invalidDocumentCode = "FIXTURE_INVALID_DOCUMENT"

// DefaultBodyField receives the Markdown body unless the front matter names
// another field with body_field.
const DefaultBodyField = "description"

// Loader reads fixture documents from a file system. Markdown files carry one
// entity in front matter plus body; YAML files carry one entity or a
// collection with an entities list.
type Loader struct {
	fsys   fs.FS
	logger interfaces.Logger
}

type LoaderOption func(*Loader)

func WithLoaderLogger(logger interfaces.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func NewLoader(fsys fs.FS, opts ...LoaderOption) *Loader {
	l := &Loader{fsys: fsys, logger: logging.NoOp()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadAll walks root and returns every document sorted by file path. Files
// with other extensions are ignored.
func (l *Loader) LoadAll(ctx context.Context, root string) ([]Document, error) {
	if root == "" {
		root = "."
	}
	var paths []string
	err := fs.WalkDir(l.fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || formatOf(p) == "" {
			return nil
		}
		paths = append(paths, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fixtures: walk %s: %w", root, err)
	}
	slices.Sort(paths)

	var docs []Document
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		loaded, err := l.Load(p)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("fixtures.file.loaded", "path", p, "documents", len(loaded))
		docs = append(docs, loaded...)
	}
	return docs, nil
}

// Load parses a single fixture file.
func (l *Loader) Load(name string) ([]Document, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("fixtures: read %s: %w", name, err)
	}

	var raws []map[string]any
	switch formatOf(name) {
	case "markdown":
		raw, err := parseMarkdown(data)
		if err != nil {
			return nil, invalidDocument(name, err)
		}
		raws = append(raws, raw)
	case "yaml":
		raws, err = parseYAML(data)
		if err != nil {
			return nil, invalidDocument(name, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}

	docs := make([]Document, 0, len(raws))
	for i, raw := range raws {
		source := name
		if len(raws) > 1 {
			source = fmt.Sprintf("%s#%d", name, i)
		}
		if err := validateRaw(source, raw); err != nil {
			return nil, invalidDocument(source, err)
		}
		doc, err := documentFromRaw(source, raw)
		if err != nil {
			return nil, invalidDocument(source, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func parseMarkdown(data []byte) (map[string]any, error) {
	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}
	meta, _ = normalizeKeys(meta).(map[string]any)
	if meta == nil {
		meta = map[string]any{}
	}

	bodyField := DefaultBodyField
	if v, ok := meta["body_field"].(string); ok && strings.TrimSpace(v) != "" {
		bodyField = strings.TrimSpace(v)
	}
	delete(meta, "body_field")

	if text := strings.TrimSpace(string(body)); text != "" {
		fields, _ := meta["fields"].(map[string]any)
		if fields == nil {
			fields = map[string]any{}
		}
		fields[bodyField] = text
		meta["fields"] = fields
	}
	return meta, nil
}

type yamlCollection struct {
	Collection string           `yaml:"collection"`
	Entities   []map[string]any `yaml:"entities"`
}

func parseYAML(data []byte) ([]map[string]any, error) {
	var probe map[string]any
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if _, ok := probe["entities"]; !ok {
		return []map[string]any{probe}, nil
	}

	var doc yamlCollection
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	out := make([]map[string]any, 0, len(doc.Entities))
	for _, entity := range doc.Entities {
		if _, ok := entity["collection"]; !ok && doc.Collection != "" {
			entity["collection"] = doc.Collection
		}
		out = append(out, entity)
	}
	return out, nil
}

// normalizeKeys turns map[any]any nodes, produced by yaml.v2 based front
// matter decoding, into map[string]any.
func normalizeKeys(value any) any {
	switch typed := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[fmt.Sprint(k)] = normalizeKeys(v)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = normalizeKeys(v)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = normalizeKeys(v)
		}
		return out
	default:
		return value
	}
}

func formatOf(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		return "markdown"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

func invalidDocument(source string, err error) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	if !errors.Is(err, ErrInvalidDocument) {
		err = fmt.Errorf("%w: %s: %w", ErrInvalidDocument, source, err)
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "fixture document is invalid").
		WithTextCode(invalidDocumentCode)
}
