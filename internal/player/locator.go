package player

import (
	"bytes"
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// PlaceholderScheme prefixes locators that play silence, e.g. "placeholder:30s".
const PlaceholderScheme = "placeholder:"

const defaultPlaceholderLength = 30 * time.Second

type sourceKind int

const (
	sourceFile sourceKind = iota
	sourceHTTP
	sourceSilence
)

// source is a parsed locator.
type source struct {
	kind    sourceKind
	raw     string
	path    string // file path or URL
	ext     string
	silence time.Duration
}

func parseLocator(locator string) (source, error) {
	if locator == "" {
		return source{}, errors.Wrap(ErrUnsupportedLocator, "empty locator")
	}

	if rest, ok := strings.CutPrefix(locator, PlaceholderScheme); ok {
		length := defaultPlaceholderLength
		if rest != "" {
			d, err := time.ParseDuration(rest)
			if err != nil || d <= 0 {
				return source{}, errors.Wrapf(ErrUnsupportedLocator, "placeholder length %q", rest)
			}
			length = d
		}
		return source{kind: sourceSilence, raw: locator, silence: length}, nil
	}

	u, err := url.Parse(locator)
	if err != nil {
		return source{}, errors.Wrapf(ErrUnsupportedLocator, "%q: %v", locator, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return source{
			kind: sourceHTTP,
			raw:  locator,
			path: locator,
			ext:  strings.ToLower(path.Ext(u.Path)),
		}, nil
	case "file":
		return source{
			kind: sourceFile,
			raw:  locator,
			path: u.Path,
			ext:  strings.ToLower(filepath.Ext(u.Path)),
		}, nil
	case "":
		return source{
			kind: sourceFile,
			raw:  locator,
			path: expandHome(locator),
			ext:  strings.ToLower(filepath.Ext(locator)),
		}, nil
	default:
		return source{}, errors.Wrapf(ErrUnsupportedLocator, "scheme %q", u.Scheme)
	}
}

func expandHome(p string) string {
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return p
}

// memFile serves a fetched body through the audioFile interface.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

// open returns the raw audio bytes for a file or http source. The
// extension is refined from the response content type when the URL has none.
func (s source) open(ctx context.Context, client *http.Client) (audioFile, string, error) {
	switch s.kind {
	case sourceFile:
		f, err := os.Open(s.path)
		if err != nil {
			return nil, "", errors.Wrapf(err, "open %s", s.path)
		}
		return f, s.ext, nil
	case sourceHTTP:
		return fetch(ctx, client, s.path, s.ext)
	default:
		return nil, "", errors.Wrapf(ErrUnsupportedLocator, "%q has no byte source", s.raw)
	}
}

func fetch(ctx context.Context, client *http.Client, rawURL, ext string) (audioFile, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, "", errors.Wrap(err, "build request")
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", errors.Wrapf(err, "fetch %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", errors.Newf("fetch %s: unexpected status %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", errors.Wrapf(err, "read %s", rawURL)
	}

	if ext == "" {
		ext = extFromContentType(resp.Header.Get("Content-Type"))
	}
	return memFile{bytes.NewReader(body)}, ext, nil
}

func extFromContentType(ct string) string {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	switch mt {
	case "audio/mpeg", "audio/mp3":
		return extMP3
	case "audio/flac", "audio/x-flac":
		return extFLAC
	case "audio/wav", "audio/x-wav", "audio/wave":
		return extWAV
	default:
		return ""
	}
}
