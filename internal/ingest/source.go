package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
)

// Source answers "which triples have this subject?".
type Source interface {
	Describe(ctx context.Context, id string) ([]Triple, error)
}

// MemorySource is a Source over triples held in memory.
type MemorySource struct {
	bySubject map[string][]Triple
}

// NewMemorySource indexes triples by subject, keeping their order.
func NewMemorySource(triples ...Triple) *MemorySource {
	m := &MemorySource{bySubject: make(map[string][]Triple)}
	m.Add(triples...)
	return m
}

// Add indexes more triples.
func (m *MemorySource) Add(triples ...Triple) {
	for _, t := range triples {
		m.bySubject[t.Subject] = append(m.bySubject[t.Subject], t)
	}
}

// Len returns the number of distinct subjects.
func (m *MemorySource) Len() int { return len(m.bySubject) }

// Describe implements Source.
func (m *MemorySource) Describe(ctx context.Context, id string) ([]Triple, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.bySubject[id], nil
}

// documentSource fetches one N-Triples document on first use and serves
// Describe from the decoded copy.
type documentSource struct {
	fetch func(ctx context.Context) (io.ReadCloser, error)

	once sync.Once
	mem  *MemorySource
	err  error
}

func (d *documentSource) Describe(ctx context.Context, id string) ([]Triple, error) {
	d.once.Do(func() {
		body, err := d.fetch(ctx)
		if err != nil {
			d.err = err
			return
		}
		defer body.Close()
		triples, err := DecodeNTriples(body)
		if err != nil {
			d.err = err
			return
		}
		d.mem = NewMemorySource(triples...)
	})
	if d.err != nil {
		return nil, d.err
	}
	return d.mem.Describe(ctx, id)
}

// FileSource reads an N-Triples file.
type FileSource struct {
	documentSource
	Path string
}

// NewFileSource returns a source backed by the file at path. The file is
// read on the first Describe.
func NewFileSource(path string) *FileSource {
	s := &FileSource{Path: path}
	s.fetch = func(context.Context) (io.ReadCloser, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open triple file: %w", err)
		}
		return f, nil
	}
	return s
}

// HTTPSource downloads an N-Triples document.
type HTTPSource struct {
	documentSource
	URL string
}

// NewHTTPSource returns a source backed by url. client may be nil to use
// http.DefaultClient. The document is downloaded on the first Describe.
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	s := &HTTPSource{URL: url}
	s.fetch = func(ctx context.Context) (io.ReadCloser, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("fetch triples: %w", err)
		}
		req.Header.Set("Accept", "application/n-triples")
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch triples: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch triples: %s returned %s", url, resp.Status)
		}
		return resp.Body, nil
	}
	return s
}

// Sources is a Source that concatenates the answers of its members in order.
type Sources []Source

// Describe implements Source.
func (s Sources) Describe(ctx context.Context, id string) ([]Triple, error) {
	var out []Triple
	for _, src := range s {
		triples, err := src.Describe(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, triples...)
	}
	return out, nil
}

// Open returns an HTTPSource for http and https locations and a FileSource
// for anything else.
func Open(location string) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location, nil)
	}
	return NewFileSource(location)
}
