package sources

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/i474232898/temperature-chart/internal/common"
	"github.com/i474232898/temperature-chart/internal/dashboard"
)

// FileSource reads the CSV from a local path.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return s.path
}

func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(s.path)
}

// New picks an HTTP source for http(s) locations and a file source otherwise.
func New(location string, client *http.Client) dashboard.Source {
	if common.HasAnyPrefix(location, "http://", "https://") {
		return NewHTTPSource(client, location)
	}
	return NewFileSource(location)
}
