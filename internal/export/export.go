// Package export renders movie lists as downloadable documents.
package export

import (
	"cinema-catalog/internal/data/entity"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatDOCX Format = "docx"
)

// ErrUnsupportedFormat is returned by Render for unknown formats.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// dateLayout matches the vi-VN short date, e.g. 5/3/2026.
const dateLayout = "2/1/2006"

func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}

// Render produces the document bytes for movies in the given order.
func Render(format Format, movies []*entity.Movie, exportedAt time.Time) ([]byte, error) {
	switch format {
	case FormatXLSX:
		return XLSX(movies)
	case FormatDOCX:
		return DOCX(movies, exportedAt)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// StatusLabel returns the Vietnamese label for a movie status. Unknown
// values are returned unchanged.
func StatusLabel(status entity.MovieStatus) string {
	switch status {
	case entity.MovieStatusNowShowing:
		return "Đang chiếu"
	case entity.MovieStatusComingSoon:
		return "Sắp chiếu"
	case entity.MovieStatusExpired:
		return "Đã kết thúc"
	default:
		return string(status)
	}
}

// Filename builds movies_export[_status][_search_term]_YYYY-MM-DD.ext.
func Filename(status, search string, format Format, at time.Time) string {
	var b strings.Builder
	b.WriteString("movies_export")

	if status != "" && status != "all" {
		b.WriteString("_" + strings.ReplaceAll(status, " ", "_"))
	}
	if search != "" {
		b.WriteString("_search_" + sanitize(search))
	}

	b.WriteString("_" + at.UTC().Format("2006-01-02"))
	b.WriteString("." + string(format))
	return b.String()
}

// sanitize replaces anything outside ASCII letters and digits with '_'.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return '_'
	}, s)
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// truncate cuts s to n runes and marks the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
