package quiz

import (
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/drivequiz/internal/client/models"
	"github.com/dmitrijs2005/drivequiz/internal/common"
)

// DefaultMaxMediaSize caps uploads at 100 MiB.
const DefaultMaxMediaSize int64 = 100 << 20

// container formats the content sniffer does not recognise
var videoExtensions = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
}

// inspectMedia reads enough of path to decide whether it is an acceptable
// video and describes it.
func inspectMedia(path string, maxSize int64) (models.Media, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Media{}, common.NewFailure(common.ErrPreconditionFailed, "cannot open the video file", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return models.Media{}, common.NewFailure(common.ErrPreconditionFailed, "cannot open the video file", err)
	}
	if !st.Mode().IsRegular() {
		return models.Media{}, ErrNotVideo
	}
	if st.Size() == 0 {
		return models.Media{}, ErrEmptyMedia
	}
	if maxSize > 0 && st.Size() > maxSize {
		return models.Media{}, ErrMediaTooLarge
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return models.Media{}, common.NewFailure(common.ErrPreconditionFailed, "cannot read the video file", err)
	}

	ct := contentType(head[:n], filepath.Ext(path))
	if !strings.HasPrefix(ct, "video/") {
		return models.Media{}, ErrNotVideo
	}

	return models.Media{
		Path:        path,
		Name:        filepath.Base(path),
		ContentType: ct,
		Size:        st.Size(),
	}, nil
}

// contentType sniffs head and falls back to the extension only when the
// sniffer has no opinion.
func contentType(head []byte, ext string) string {
	sniffed := http.DetectContentType(head)
	if sniffed != "application/octet-stream" {
		mt, _, err := mime.ParseMediaType(sniffed)
		if err != nil {
			return sniffed
		}
		return mt
	}

	ext = strings.ToLower(ext)
	if t, ok := videoExtensions[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		mt, _, err := mime.ParseMediaType(t)
		if err == nil {
			return mt
		}
	}
	return sniffed
}

// FormatSize renders a byte count for display.
func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
