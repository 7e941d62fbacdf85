package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oascompat/oaserrors"
	"github.com/erraggy/oascompat/tree"
)

// SupportedVersion is the only value of the swagger field accepted.
const SupportedVersion = "2.0"

// Load loads the Swagger 2.0 document at location, a file path, file:// URI
// or http(s) URL, with default options.
func Load(location string, opts ...Option) (*Spec, error) {
	return LoadWithOptions(append([]Option{WithFilePath(location)}, opts...)...)
}

// LoadWithOptions loads a Swagger 2.0 document using functional options and
// flattens it into a Spec with every $ref resolved.
//
// Example:
//
//	spec, err := loader.LoadWithOptions(
//	    loader.WithFilePath("swagger.yaml"),
//	    loader.WithDefaultTypeToObject(true),
//	)
func LoadWithOptions(opts ...Option) (*Spec, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("loader: invalid options: %w", err)
	}

	l := &loader{cfg: cfg, log: cfg.logger}
	var (
		raw    map[string]any
		source string
		base   string
	)
	switch {
	case cfg.filePath != nil:
		source = *cfg.filePath
		var data []byte
		data, base, err = l.read(source)
		if err != nil {
			return nil, err
		}
		raw, err = decode(data, source)
	case cfg.reader != nil:
		source = "<reader>"
		var data []byte
		data, err = l.readAll(cfg.reader, source)
		if err != nil {
			return nil, err
		}
		raw, err = decode(data, source)
	case cfg.bytes != nil:
		source = "<bytes>"
		if err = l.checkSize(source, int64(len(cfg.bytes))); err != nil {
			return nil, err
		}
		raw, err = decode(cfg.bytes, source)
	default:
		source = "<data>"
		raw = cfg.data
	}
	if err != nil {
		return nil, err
	}
	if cfg.sourceName != nil {
		source = *cfg.sourceName
	}

	version, err := checkVersion(raw, source)
	if err != nil {
		return nil, err
	}

	buildOpts := []tree.Option{tree.WithBaseLocation(base)}
	if cfg.externalRefs {
		buildOpts = append(buildOpts, tree.WithFetcher(newRefFetcher(l, base)))
	}
	doc, err := tree.Build(raw, buildOpts...)
	if err != nil {
		return nil, fmt.Errorf("loader: resolving references in %s: %w", source, err)
	}
	l.log.Debug("loaded document", "source", source, "nodes", doc.Len())

	return &Spec{
		Document:   doc,
		SourcePath: source,
		Version:    version,
		Config:     Config{DefaultTypeToObject: cfg.defaultTypeToObject},
	}, nil
}

type loader struct {
	cfg *loadConfig
	log Logger
}

// read loads a document from a path or URL. It returns the bytes together
// with the canonical location used to resolve relative references.
func (l *loader) read(location string) ([]byte, string, error) {
	if isHTTP(location) {
		data, err := l.fetchURL(location)
		return data, location, err
	}
	path, err := filePathOf(location)
	if err != nil {
		return nil, "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("loader: failed to resolve path %s: %w", path, err)
	}
	data, err := l.readFile(abs)
	return data, abs, err
}

func (l *loader) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to read file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("loader: %s is a directory", path)
	}
	if err := l.checkSize(path, info.Size()); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided input
	if err != nil {
		return nil, fmt.Errorf("loader: failed to read file: %w", err)
	}
	return data, nil
}

func (l *loader) readAll(r io.Reader, source string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.cfg.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("loader: failed to read %s: %w", source, err)
	}
	if err := l.checkSize(source, int64(len(data))); err != nil {
		return nil, err
	}
	return data, nil
}

func (l *loader) checkSize(source string, size int64) error {
	if size > l.cfg.maxFileSize {
		return &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        l.cfg.maxFileSize,
			Actual:       size,
			Message:      source + " is too large",
		}
	}
	return nil
}

// decode parses YAML or JSON; JSON is a subset of YAML.
func decode(data []byte, source string) (map[string]any, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &oaserrors.ParseError{Path: source, Message: "failed to parse YAML/JSON", Cause: err}
	}
	if raw == nil {
		return nil, &oaserrors.ParseError{Path: source, Message: "document is empty"}
	}
	return raw, nil
}

func checkVersion(raw map[string]any, source string) (string, error) {
	var version string
	switch v := raw["swagger"].(type) {
	case nil:
	case string:
		version = v
	case float64:
		// An unquoted 2.0 decodes as a number.
		version = strconv.FormatFloat(v, 'f', 1, 64)
	default:
		version = fmt.Sprint(v)
	}
	if version != SupportedVersion {
		return "", &oaserrors.VersionError{Path: source, Version: version}
	}
	return version, nil
}
