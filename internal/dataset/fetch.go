package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"call-insights-go/internal/logger"
)

var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// IsRemote reports whether src is an http(s) URL.
func IsRemote(src string) bool {
	l := strings.ToLower(src)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// Fetch downloads src into a temporary file that keeps the URL's extension
// and returns its path. Server errors and transport failures are retried
// with exponential backoff for up to maxElapsed; client errors are not.
func Fetch(ctx context.Context, src string, maxElapsed time.Duration, log *logger.Logger) (string, error) {
	u, err := url.Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse dataset url: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	if maxElapsed > 0 {
		bo.MaxElapsedTime = maxElapsed
	}

	var body []byte
	attempt := 0
	operation := func() error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := httpClient.Do(req)
		if err != nil {
			log.WithFields(logrus.Fields{"attempt": attempt, "error": err.Error()}).Warn("dataset download failed")
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode >= 500 {
			log.WithFields(logrus.Fields{"attempt": attempt, "status": resp.StatusCode}).Warn("dataset server error")
			return fmt.Errorf("server error: %s", resp.Status)
		}
		if resp.StatusCode >= 300 {
			return backoff.Permanent(fmt.Errorf("failed to download dataset: %s", resp.Status))
		}
		body = data
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return "", fmt.Errorf("fetch dataset: %w", err)
	}

	tmp, err := os.CreateTemp("", "calls-*"+path.Ext(u.Path))
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = tmp.Close() }()
	if _, err := tmp.Write(body); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("write temp file: %w", err)
	}
	log.WithFields(logrus.Fields{"bytes": len(body), "attempts": attempt}).Info("dataset downloaded")
	return tmp.Name(), nil
}
