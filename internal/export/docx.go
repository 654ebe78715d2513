package export

import (
	"bytes"
	"cinema-catalog/internal/data/entity"
	"fmt"
	"strconv"
	"time"

	"github.com/gomutex/godocx"
)

const (
	DocumentTitle    = "DANH SÁCH PHIM CINEMA"
	descriptionRunes = 100
	legendHeading    = "Ghi chú:"
	tableStyle       = "LightList-Accent4"
)

var legendLines = []string{
	"- Đang chiếu: Phim hiện đang được chiếu tại rạp",
	"- Sắp chiếu: Phim sẽ được chiếu trong thời gian tới",
	"- Đã kết thúc: Phim đã ngừng chiếu",
}

var tableHeaders = []string{"STT", "Tên phim", "Đạo diễn", "Thời lượng", "Ngày phát hành", "Trạng thái", "Mô tả"}

// DOCX builds a Word document with a title, summary lines, a seven column
// table and the status legend.
func DOCX(movies []*entity.Movie, exportedAt time.Time) ([]byte, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("new document: %w", err)
	}

	if _, err := doc.AddHeading(DocumentTitle, 0); err != nil {
		return nil, fmt.Errorf("add title: %w", err)
	}
	doc.AddParagraph("Ngày xuất: " + exportedAt.Format(dateLayout))
	doc.AddParagraph("Tổng số phim: " + strconv.Itoa(len(movies)))

	table := doc.AddTable()
	table.Style(tableStyle)

	header := table.AddRow()
	for _, h := range tableHeaders {
		header.AddCell().AddParagraph(h)
	}
	for i, movie := range movies {
		row := table.AddRow()
		for _, cell := range []string{
			strconv.Itoa(i + 1),
			movie.Title,
			deref(movie.Director),
			strconv.Itoa(movie.Duration) + " phút",
			formatDate(&movie.ReleaseDate),
			StatusLabel(movie.Status),
			truncate(deref(movie.Description), descriptionRunes),
		} {
			row.AddCell().AddParagraph(cell)
		}
	}

	doc.AddParagraph("").AddText(legendHeading).Bold(true)
	for _, line := range legendLines {
		doc.AddParagraph(line)
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}
	return buf.Bytes(), nil
}
