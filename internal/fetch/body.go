package fetch

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"

	"github.com/andybalholm/brotli"
)

// maxBodyBytes caps how much of an upstream body is read into memory.
const maxBodyBytes = 16 << 20

// readBody reads and, when needed, decompresses resp's body. The fetcher
// advertises gzip and br itself, so the transport leaves decoding to us.
func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body

	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "br":
		reader = brotli.NewReader(resp.Body)
	}

	return io.ReadAll(io.LimitReader(reader, maxBodyBytes))
}
