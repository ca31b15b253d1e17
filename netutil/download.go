package netutil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Defaults used by Download.
const (
	DefaultFileName         = "download.txt"
	DefaultProgressInterval = 50 * time.Millisecond
)

// Progress is a snapshot of a running download. Total is -1 when the server did not
// announce the size.
type Progress struct {
	Current int64
	Total   int64
}

// CurrentKB returns the downloaded amount in kilobytes, formatted with three decimals.
func (p Progress) CurrentKB() string { return fmt.Sprintf("%.3f", float64(p.Current)/1000) }

// CurrentMB returns the downloaded amount in megabytes, formatted with three decimals.
func (p Progress) CurrentMB() string { return fmt.Sprintf("%.3f", float64(p.Current)/1000000) }

// TotalKB returns the total size in kilobytes, or "" when unknown.
func (p Progress) TotalKB() string {
	if p.Total < 0 {
		return ""
	}
	return fmt.Sprintf("%.3f", float64(p.Total)/1000)
}

// TotalMB returns the total size in megabytes, or "" when unknown.
func (p Progress) TotalMB() string {
	if p.Total < 0 {
		return ""
	}
	return fmt.Sprintf("%.3f", float64(p.Total)/1000000)
}

// Fraction returns the completed share in [0, 1], or -1 when the total is unknown.
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return -1
	}
	return float64(p.Current) / float64(p.Total)
}

// DownloadOptions configure Download.
type DownloadOptions struct {
	// FileName is the name of the file created in the destination directory.
	FileName string
	// Progress, if set, is called every Interval while the body is copied and once more
	// when it is done. It is never called concurrently.
	Progress func(Progress)
	Interval time.Duration
	Client   *http.Client
	Logger   *zap.Logger
}

// Download fetches rawURL into destDir and returns the path of the written file.
// Redirects are followed. A status code of 400 or above yields a *StatusError. If the
// download fails after the file was created, the partial file is removed.
func Download(ctx context.Context, rawURL, destDir string, opts DownloadOptions) (string, error) {
	if _, err := parseURL(rawURL); err != nil {
		return "", err
	}
	info, err := os.Stat(destDir)
	if err != nil || !info.IsDir() {
		return "", errors.Wrapf(ErrDestinationMissing, "%s", destDir)
	}
	if opts.FileName == "" {
		opts.FileName = DefaultFileName
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultProgressInterval
	}
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	dest := filepath.Join(destDir, opts.FileName)
	log := opts.Logger.With(zap.String("url", rawURL), zap.String("dest", dest))

	total, err := contentLength(ctx, opts.Client, rawURL)
	if err != nil {
		return "", err
	}
	log.Debug("starting download", zap.Int64("total", total))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", errors.Wrapf(err, "build request for %s", rawURL)
	}
	resp, err := opts.Client.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "download %s", rawURL)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", &StatusError{URL: rawURL, Code: resp.StatusCode}
	}
	if total < 0 {
		total = resp.ContentLength
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", errors.Wrapf(err, "create %s", dest)
	}

	var written atomic.Int64
	stop := make(chan struct{})
	var wg sync.WaitGroup
	if opts.Progress != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ticker := time.NewTicker(opts.Interval)
			defer ticker.Stop()
			for {
				select {
				case <-stop:
					return
				case <-ticker.C:
					opts.Progress(Progress{Current: written.Load(), Total: total})
				}
			}
		}()
	}

	_, copyErr := io.Copy(f, &countingReader{r: resp.Body, n: &written})
	close(stop)
	wg.Wait()
	closeErr := f.Close()

	if err := firstErr(copyErr, closeErr); err != nil {
		if rmErr := os.Remove(dest); rmErr != nil {
			log.Warn("remove partial download", zap.Error(rmErr))
		}
		return "", errors.Wrapf(err, "download %s", rawURL)
	}

	if opts.Progress != nil {
		opts.Progress(Progress{Current: written.Load(), Total: total})
	}
	log.Debug("download finished", zap.Int64("bytes", written.Load()))
	return dest, nil
}

// contentLength asks for the size with a HEAD request. It returns -1 if the server
// does not say.
func contentLength(ctx context.Context, client *http.Client, rawURL string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return 0, errors.Wrapf(err, "build request for %s", rawURL)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, errors.Wrapf(err, "read file information for %s", rawURL)
	}
	resp.Body.Close()
	if resp.StatusCode >= 400 {
		return 0, &StatusError{URL: rawURL, Code: resp.StatusCode}
	}
	return resp.ContentLength, nil
}

type countingReader struct {
	r io.Reader
	n *atomic.Int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n.Add(int64(n))
	return n, err
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
