// Package fetcher opens registry sources (local paths, file, http(s) and ftp
// URLs) and reads directory import tables from CSV and XLSX files.
package fetcher

import (
	"context"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// Fetcher downloads a remote resource.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

// Opener resolves a registry source to a reader, dispatching on its scheme.
type Opener struct {
	http Fetcher
	ftp  Fetcher
}

// NewOpener creates an Opener backed by the given HTTP and FTP fetchers.
func NewOpener(httpFetcher, ftpFetcher Fetcher) *Opener {
	return &Opener{http: httpFetcher, ftp: ftpFetcher}
}

// DefaultOpener returns an Opener with default HTTP and FTP settings.
func DefaultOpener() *Opener {
	return NewOpener(NewHTTPFetcher(HTTPOptions{}), NewFTPFetcher(FTPOptions{}))
}

// Open returns a reader for source. Plain paths and file:// URLs are read
// from disk. The caller must close the reader.
func (o *Opener) Open(ctx context.Context, source string) (io.ReadCloser, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, eris.New("fetcher: empty source")
	}

	scheme := ""
	if i := strings.Index(source, "://"); i > 0 {
		scheme = strings.ToLower(source[:i])
	}

	switch scheme {
	case "":
		return openFile(source)
	case "file":
		u, err := url.Parse(source)
		if err != nil {
			return nil, eris.Wrapf(err, "fetcher: parse %s", source)
		}
		return openFile(u.Path)
	case "http", "https":
		return o.http.Download(ctx, source)
	case "ftp":
		return o.ftp.Download(ctx, source)
	default:
		return nil, eris.Errorf("fetcher: unsupported scheme %q", scheme)
	}
}

// ReadText opens source and returns its full contents.
func (o *Opener) ReadText(ctx context.Context, source string) (string, error) {
	rc, err := o.Open(ctx, source)
	if err != nil {
		return "", err
	}
	defer rc.Close() //nolint:errcheck

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", eris.Wrapf(err, "fetcher: read %s", source)
	}
	return string(data), nil
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: open %s", path)
	}
	return f, nil
}
