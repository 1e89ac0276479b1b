// Package downloader implements ports.Downloader over plain HTTP.
package downloader

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"reelscribe/internal/core/domain"
)

// Media hosts reject obvious bot traffic, so requests identify as a browser.
const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// HTTPDownloader implements ports.Downloader.
type HTTPDownloader struct {
	client *http.Client
}

// NewHTTPDownloader creates a downloader with the given connection timeout.
// The timeout bounds dialing and response headers, not the body stream, so
// large files can finish at any speed.
func NewHTTPDownloader(connectTimeout time.Duration) *HTTPDownloader {
	return &HTTPDownloader{
		client: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: connectTimeout,
				}).DialContext,
				TLSHandshakeTimeout:   connectTimeout,
				ResponseHeaderTimeout: connectTimeout,
			},
		},
	}
}

// Download streams the media at mediaURL, returning the body and the
// response content type. The caller must close the body.
func (d *HTTPDownloader) Download(ctx context.Context, mediaURL string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrDownloadFailed, err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrDownloadFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", fmt.Errorf("%w: unexpected status code %d", domain.ErrDownloadFailed, resp.StatusCode)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}
