package export

import (
	"cinema-catalog/internal/data/entity"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Danh sách phim"

type column struct {
	header string
	width  float64
	value  func(i int, m *entity.Movie) any
}

var sheetColumns = []column{
	{"STT", 5, func(i int, _ *entity.Movie) any { return i + 1 }},
	{"ID", 8, func(_ int, m *entity.Movie) any { return m.ID }},
	{"Tên phim", 30, func(_ int, m *entity.Movie) any { return m.Title }},
	{"Tên gốc", 30, func(_ int, m *entity.Movie) any { return deref(m.OriginalTitle) }},
	{"Đạo diễn", 20, func(_ int, m *entity.Movie) any { return deref(m.Director) }},
	{"Diễn viên", 40, func(_ int, m *entity.Movie) any { return deref(m.Actors) }},
	{"Thời lượng (phút)", 12, func(_ int, m *entity.Movie) any { return m.Duration }},
	{"Ngày phát hành", 15, func(_ int, m *entity.Movie) any { return formatDate(&m.ReleaseDate) }},
	{"Ngày kết thúc", 15, func(_ int, m *entity.Movie) any { return formatDate(m.EndDate) }},
	{"Ngôn ngữ", 12, func(_ int, m *entity.Movie) any { return deref(m.Language) }},
	{"Phụ đề", 12, func(_ int, m *entity.Movie) any { return deref(m.Subtitle) }},
	{"Quốc gia", 15, func(_ int, m *entity.Movie) any { return deref(m.Country) }},
	{"Phân loại độ tuổi", 15, func(_ int, m *entity.Movie) any { return deref(m.AgeRestriction) }},
	{"Trạng thái", 15, func(_ int, m *entity.Movie) any { return StatusLabel(m.Status) }},
	{"Thể loại", 20, func(_ int, m *entity.Movie) any { return strings.Join(m.Genres, ", ") }},
	{"Mô tả", 50, func(_ int, m *entity.Movie) any { return deref(m.Description) }},
}

// XLSX writes one sheet with a header row and one row per movie.
func XLSX(movies []*entity.Movie) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for c, col := range sheetColumns {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, name, name, col.width); err != nil {
			return nil, fmt.Errorf("set width of %s: %w", name, err)
		}
		if err := f.SetCellValue(SheetName, name+"1", col.header); err != nil {
			return nil, fmt.Errorf("write header %s: %w", col.header, err)
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(sheetColumns))
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, movie := range movies {
		for c, col := range sheetColumns {
			cell, err := excelize.CoordinatesToCellName(c+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(SheetName, cell, col.value(i, movie)); err != nil {
				return nil, fmt.Errorf("write %s: %w", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
