package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxImageBytes caps a single source image.
const maxImageBytes = 10 << 20

// objectKey derives the storage key of a source image: the last non-empty
// segment of the URL path, or file-<unix millis>-<random>.jpg when there is
// none, so that path-less images never share a key.
func objectKey(rawURL string, now time.Time) string {
	var p string
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	} else {
		p = rawURL
	}

	if seg := path.Base(strings.TrimRight(p, "/")); seg != "." && seg != "/" && seg != "" {
		return seg
	}
	return fmt.Sprintf("file-%d-%s.jpg", now.UnixMilli(), uuid.NewString()[:8])
}

// ingestImage copies the image at src into the bucket, replacing any object
// under the same key, and returns its public URL.
func (s *Seeder) ingestImage(ctx context.Context, src string) (string, error) {
	key := objectKey(src, s.now())

	data, contentType, err := s.fetch(ctx, src)
	if err != nil {
		return "", &IngestionError{URL: src, Err: err}
	}

	p, err := s.bucket.Upload(ctx, key, data, contentType, true)
	if err != nil {
		return "", &IngestionError{URL: src, Err: fmt.Errorf("upload: %w", err)}
	}

	s.logger.Debug("image ingested", "url", src, "key", p, "bytes", len(data), "content_type", contentType)
	return s.bucket.PublicURL(p), nil
}

func (s *Seeder) fetch(ctx context.Context, src string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("fetch: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}
	switch {
	case len(data) == 0:
		return nil, "", errors.New("empty body")
	case len(data) > maxImageBytes:
		return nil, "", fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}
