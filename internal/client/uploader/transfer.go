package uploader

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/moviebase/mediavault/internal/logging"
)

// TicketSource hands out one-time signed upload URLs for a filename inside
// a directory.
type TicketSource interface {
	UploadTicket(ctx context.Context, filename, contentType, directory string) (url string, path string, err error)
}

// Report summarizes one batch run.
type Report struct {
	Succeeded int
	Failed    int
	Skipped   int
}

func (r Report) String() string {
	return fmt.Sprintf("%d uploaded, %d failed, %d skipped", r.Succeeded, r.Failed, r.Skipped)
}

// Uploader drives queued tasks through the signed-URL protocol, one task at
// a time in queue order. A failed task never stops the batch; it is marked
// and the run moves on.
type Uploader struct {
	queue   *Queue
	tickets TicketSource
	client  *http.Client
	logger  logging.Logger
}

func New(queue *Queue, tickets TicketSource, logger logging.Logger) *Uploader {
	return &Uploader{
		queue:   queue,
		tickets: tickets,
		client:  &http.Client{Timeout: 5 * time.Minute},
		logger:  logger,
	}
}

// Run uploads every pending or previously failed task into directory and
// returns the aggregate outcome. Tasks already uploaded are skipped, which
// makes rerunning a partially failed batch a retry of just the failures.
func (u *Uploader) Run(ctx context.Context, directory string) (Report, error) {
	var report Report
	for _, t := range u.queue.Tasks() {
		switch t.Status {
		case StatusSuccess:
			report.Skipped++
			continue
		case StatusUploading:
			report.Skipped++
			continue
		}

		if err := u.uploadOne(ctx, t.ID, directory); err != nil {
			report.Failed++
			u.logger.Error(ctx, "upload failed", "file", t.File.Name, "error", err.Error())
			continue
		}
		report.Succeeded++
		u.logger.Info(ctx, "upload complete", "file", t.File.Name)
	}
	return report, ctx.Err()
}

func (u *Uploader) uploadOne(ctx context.Context, id, directory string) error {
	if err := u.queue.markUploading(id); err != nil {
		return err
	}

	task, err := u.queue.Task(id)
	if err != nil {
		return err
	}

	url, _, err := u.tickets.UploadTicket(ctx, task.File.Name, task.File.ContentType, directory)
	if err != nil {
		msg := fmt.Sprintf("could not obtain upload URL: %v", err)
		u.queue.markError(id, msg)
		return fmt.Errorf("%s", msg)
	}

	f, err := os.Open(task.File.Path)
	if err != nil {
		msg := fmt.Sprintf("open %s: %v", task.File.Path, err)
		u.queue.markError(id, msg)
		return fmt.Errorf("%s", msg)
	}
	defer f.Close()

	body := &progressReader{
		r:     f,
		total: task.File.Size,
		onProgress: func(pct int) {
			u.queue.setProgress(id, pct)
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		u.queue.markError(id, err.Error())
		return err
	}
	req.ContentLength = task.File.Size
	req.Header.Set("Content-Type", task.File.ContentType)

	resp, err := u.client.Do(req)
	if err != nil {
		// No HTTP status at all: the request never completed. Usually
		// connectivity, DNS, or a bucket CORS policy blocking the PUT.
		msg := fmt.Sprintf("network error, check connectivity and the bucket CORS policy: %v", err)
		u.queue.markError(id, msg)
		return fmt.Errorf("%s", msg)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := storeErrorMessage(resp)
		u.queue.markError(id, msg)
		return fmt.Errorf("%s", msg)
	}

	u.queue.markSuccess(id)
	return nil
}

// storeErrorMessage extracts the human-readable reason from a failed store
// response. S3-compatible stores answer with an XML error document; the
// admin API answers with JSON. Anything else falls back to the status line.
func storeErrorMessage(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 16<<10))
	fallback := fmt.Sprintf("upload rejected with HTTP %d", resp.StatusCode)

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return fallback
	}

	var xmlErr struct {
		Code    string `xml:"Code"`
		Message string `xml:"Message"`
	}
	if err := xml.Unmarshal(raw, &xmlErr); err == nil && xmlErr.Message != "" {
		if xmlErr.Code != "" {
			return fmt.Sprintf("%s: %s (HTTP %d)", xmlErr.Code, xmlErr.Message, resp.StatusCode)
		}
		return fmt.Sprintf("%s (HTTP %d)", xmlErr.Message, resp.StatusCode)
	}

	var jsonErr struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &jsonErr); err == nil && jsonErr.Message != "" {
		return fmt.Sprintf("%s (HTTP %d)", jsonErr.Message, resp.StatusCode)
	}

	return fallback
}
