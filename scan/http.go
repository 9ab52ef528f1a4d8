package scan

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang/glog"
)

// HTTPByteSource implements io.ReaderAt over a remote object using HTTP
// range requests, adapted from scorix-grib/grib2/reader.HTTPReaderAt, so a
// RandomAccessScanner can scan a GRIB2 file published at a URL (an S3 or
// NCEP archive object, say) without downloading it up front.
type HTTPByteSource struct {
	url    string
	client *http.Client
	size   int64
}

// NewHTTPByteSource issues a HEAD request to discover the object's size and
// returns an HTTPByteSource that fetches ranges of it on demand.
func NewHTTPByteSource(url string) (*HTTPByteSource, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	resp, err := client.Head(url)
	if err != nil {
		return nil, fmt.Errorf("scan: HEAD %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scan: HEAD %s: %s", url, resp.Status)
	}

	glog.V(1).Infof("scan: %s is %d bytes", url, resp.ContentLength)

	return &HTTPByteSource{url: url, client: client, size: resp.ContentLength}, nil
}

// Size reports the remote object's length in bytes, as discovered by the
// HEAD request in NewHTTPByteSource.
func (h *HTTPByteSource) Size() int64 {
	return h.size
}

// ReadAt satisfies io.ReaderAt with a single-range HTTP GET per call.
func (h *HTTPByteSource) ReadAt(p []byte, off int64) (int, error) {
	if off >= h.size {
		return 0, io.EOF
	}

	end := off + int64(len(p)) - 1
	if end >= h.size {
		end = h.size - 1
	}

	req, err := http.NewRequest(http.MethodGet, h.url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", off, end))

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusPartialContent && resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("scan: range GET %s: %s", h.url, resp.Status)
	}

	n, err := io.ReadFull(resp.Body, p[:end-off+1])
	if err == nil && n < len(p) {
		err = io.EOF
	}
	return n, err
}
