package sink

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gorilla/schema"
)

// fileOptions are the query parameters of a file URL.
type fileOptions struct {
	Overwrite *bool  `schema:"overwrite"`
	Mode      string `schema:"mode"`
}

var decoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(false)
	return d
}()

// Open returns the sink addressed by rawURL.
//
// Supported forms:
//
//	mem:                                  in-memory sink
//	file:///abs/dir?overwrite=false      filesystem sink rooted at /abs/dir
//	file:rel/dir?mode=0600               filesystem sink rooted at rel/dir
//	some/dir                             same as file:some/dir
//
// The file query accepts "overwrite" (bool, default true) and "mode"
// (octal permission bits, default 0644).
func Open(rawURL string) (OutputSink, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("empty sink URL")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse sink URL: %w", err)
	}

	switch u.Scheme {
	case "mem":
		if u.Opaque != "" || u.Path != "" || u.RawQuery != "" {
			return nil, fmt.Errorf("sink URL %q: mem takes no path or options", rawURL)
		}
		return NewMemorySink(), nil
	case "file", "":
		return openFile(rawURL, u)
	default:
		return nil, fmt.Errorf("sink URL %q: unsupported scheme %q", rawURL, u.Scheme)
	}
}

func openFile(rawURL string, u *url.URL) (*FilesystemSink, error) {
	root := u.Path
	if u.Opaque != "" {
		root = u.Opaque
	}
	if u.Host != "" && u.Host != "localhost" {
		return nil, fmt.Errorf("sink URL %q: remote host %q not supported", rawURL, u.Host)
	}
	if root == "" {
		return nil, fmt.Errorf("sink URL %q: missing directory", rawURL)
	}

	var opts fileOptions
	if err := decoder.Decode(&opts, u.Query()); err != nil {
		return nil, fmt.Errorf("sink URL %q: %w", rawURL, err)
	}

	s := NewFilesystemSink(filepath.FromSlash(root))
	if opts.Overwrite != nil {
		s.Overwrite = *opts.Overwrite
	}
	if opts.Mode != "" {
		mode, err := strconv.ParseUint(opts.Mode, 8, 32)
		if err != nil || mode > 0777 {
			return nil, fmt.Errorf("sink URL %q: invalid mode %q", rawURL, opts.Mode)
		}
		s.Mode = os.FileMode(mode)
	}
	return s, nil
}
