package export

import (
	"context"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/matzehuels/guidecard/pkg/errors"
)

// DirDownloader saves downloads into a directory, creating it if needed.
type DirDownloader struct {
	Dir string
}

func (d DirDownloader) Download(ctx context.Context, name, _ string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := errors.ValidateFilename(name); err != nil {
		return err
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(d.Path(name), data, 0o644)
}

// Path returns where name is saved.
func (d DirDownloader) Path(name string) string {
	return filepath.Join(d.Dir, name)
}

// ResponseDownloader streams a download as an HTTP attachment.
type ResponseDownloader struct {
	W http.ResponseWriter
}

func (d ResponseDownloader) Download(_ context.Context, name, contentType string, data []byte) error {
	h := d.W.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	h.Set("Content-Length", strconv.Itoa(len(data)))
	d.W.WriteHeader(http.StatusOK)
	_, err := d.W.Write(data)
	return err
}

// BufferDownloader keeps the last download in memory.
type BufferDownloader struct {
	Name        string
	ContentType string
	Data        []byte
}

func (b *BufferDownloader) Download(_ context.Context, name, contentType string, data []byte) error {
	b.Name, b.ContentType, b.Data = name, contentType, data
	return nil
}
