package loader

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	pkgopenapi "github.com/goliatone/go-regform/pkg/openapi"
)

type fetchFunc func(ctx context.Context, location string) ([]byte, error)

// Loader implements pkgopenapi.Loader with one fetch strategy per source
// kind. Construction helpers live in the top-level regform package.
type Loader struct {
	strategies map[pkgopenapi.SourceKind]fetchFunc
}

var _ pkgopenapi.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options. URL sources are only
// registered when a client is supplied or HTTP fallback is enabled.
func New(options pkgopenapi.LoaderOptions) pkgopenapi.Loader {
	l := &Loader{strategies: map[pkgopenapi.SourceKind]fetchFunc{
		pkgopenapi.SourceKindFile: loadFile,
	}}

	files := options.FileSystem
	l.strategies[pkgopenapi.SourceKindFS] = func(ctx context.Context, name string) ([]byte, error) {
		return loadFromFS(ctx, files, name)
	}

	if client := httpClient(options); client != nil {
		timeout := options.RequestTimeout
		l.strategies[pkgopenapi.SourceKindURL] = func(ctx context.Context, url string) ([]byte, error) {
			return loadHTTP(ctx, client, url, timeout)
		}
	}
	return l
}

func httpClient(options pkgopenapi.LoaderOptions) *http.Client {
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if options.RequestTimeout > 0 && clone.Timeout == 0 {
			clone.Timeout = options.RequestTimeout
		}
		return &clone
	case options.AllowHTTPFallback:
		return &http.Client{Timeout: options.RequestTimeout}
	default:
		return nil
	}
}

// Load fetches a document from src and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src == nil {
		return pkgopenapi.Document{}, errors.New("openapi loader: source is nil")
	}

	fetch, ok := l.strategies[src.Kind()]
	if !ok {
		if src.Kind() == pkgopenapi.SourceKindURL {
			return pkgopenapi.Document{}, errors.New("openapi loader: http support disabled")
		}
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: unsupported source kind %q", src.Kind())
	}

	data, err := fetch(ctx, src.Location())
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: %s: %w", src.Location(), err)
	}
	return pkgopenapi.NewDocument(src, data)
}

