package scanner

import (
	"context"
	"io"
	"net/http"
	"time"
)

// grabBanner sends a plain HTTP GET to the open port and returns up to
// maxLen bytes of the response body. Services that don't speak HTTP
// usually still return something readable; anything that errors out is
// reported as no banner.
func grabBanner(ctx context.Context, addr string, timeout time.Duration, maxLen int) string {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+addr+"/", nil)
	if err != nil {
		return ""
	}

	resp, err := client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, int64(maxLen)))
	if err != nil && len(body) == 0 {
		return ""
	}
	return string(body)
}
