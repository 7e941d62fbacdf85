package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/erraggy/oascompat"
	"github.com/erraggy/oascompat/internal/options"
)

// Default resource limits.
const (
	// DefaultMaxFileSize bounds every document read from disk or the network.
	DefaultMaxFileSize int64 = 10 * 1024 * 1024
	// DefaultMaxCachedDocuments bounds the number of distinct external documents.
	DefaultMaxCachedDocuments = 100
)

// Option configures a load operation.
type Option func(*loadConfig) error

type loadConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte
	data     map[string]any

	ctx                 context.Context
	sourceName          *string
	httpClient          *http.Client
	userAgent           string
	logger              Logger
	defaultTypeToObject bool
	externalRefs        bool
	httpRefs            bool
	maxFileSize         int64
	maxCachedDocuments  int
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*loadConfig, error) {
	cfg := &loadConfig{
		ctx:                context.Background(),
		userAgent:          oascompat.UserAgent(),
		logger:             NopLogger{},
		externalRefs:       true,
		maxFileSize:        DefaultMaxFileSize,
		maxCachedDocuments: DefaultMaxCachedDocuments,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ExactlyOne("input source",
		options.Source{Name: "WithFilePath", Set: cfg.filePath != nil},
		options.Source{Name: "WithReader", Set: cfg.reader != nil},
		options.Source{Name: "WithBytes", Set: cfg.bytes != nil},
		options.Source{Name: "WithData", Set: cfg.data != nil},
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path, file:// URI or http(s) URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *loadConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *loadConfig) error {
		if r == nil {
			return fmt.Errorf("loader: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a YAML or JSON byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *loadConfig) error {
		if data == nil {
			return fmt.Errorf("loader: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithData specifies an already decoded document as the input source
func WithData(data map[string]any) Option {
	return func(cfg *loadConfig) error {
		if data == nil {
			return fmt.Errorf("loader: data cannot be nil")
		}
		cfg.data = data
		return nil
	}
}

// WithContext sets the context used for HTTP requests.
// Default: context.Background()
func WithContext(ctx context.Context) Option {
	return func(cfg *loadConfig) error {
		if ctx == nil {
			return fmt.Errorf("loader: context cannot be nil")
		}
		cfg.ctx = ctx
		return nil
	}
}

// WithSourceName overrides Spec.SourcePath, which otherwise is the file path,
// URL, or "<bytes>"/"<data>" for in-memory sources.
func WithSourceName(name string) Option {
	return func(cfg *loadConfig) error {
		cfg.sourceName = &name
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client for fetching URLs.
// If the client is nil, this option has no effect.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *loadConfig) error {
		if client != nil {
			cfg.httpClient = client
		}
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "oascompat/vX.Y.Z"
func WithUserAgent(ua string) Option {
	return func(cfg *loadConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l Logger) Option {
	return func(cfg *loadConfig) error {
		cfg.logger = OrNop(l)
		return nil
	}
}

// WithDefaultTypeToObject makes schemas without an explicit type count as
// objects when rules inspect them.
// Default: false
func WithDefaultTypeToObject(enabled bool) Option {
	return func(cfg *loadConfig) error {
		cfg.defaultTypeToObject = enabled
		return nil
	}
}

// WithExternalRefs enables or disables resolution of references into other
// documents. Local references are always resolved.
// Default: true
func WithExternalRefs(enabled bool) Option {
	return func(cfg *loadConfig) error {
		cfg.externalRefs = enabled
		return nil
	}
}

// WithHTTPRefs allows external references to http(s) URLs from documents
// loaded from disk or memory. Documents loaded from a URL may always follow
// references relative to it.
// Default: false
func WithHTTPRefs(enabled bool) Option {
	return func(cfg *loadConfig) error {
		cfg.httpRefs = enabled
		return nil
	}
}

// WithMaxFileSize sets the maximum size in bytes of any document read.
// Default: 10MB
func WithMaxFileSize(size int64) Option {
	return func(cfg *loadConfig) error {
		if size <= 0 {
			return fmt.Errorf("loader: max file size must be positive, got %d", size)
		}
		cfg.maxFileSize = size
		return nil
	}
}

// WithMaxCachedDocuments bounds the number of external documents one load may
// pull in.
// Default: 100
func WithMaxCachedDocuments(n int) Option {
	return func(cfg *loadConfig) error {
		if n <= 0 {
			return fmt.Errorf("loader: max cached documents must be positive, got %d", n)
		}
		cfg.maxCachedDocuments = n
		return nil
	}
}
