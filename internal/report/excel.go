package report

import (
	"bytes"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"

	"github.com/andikarh/parlaybot/internal/domain/prediction"
)

const SheetName = "Predictions"

// FileName is the document name the bot attaches to every delivery.
const FileName = "predictions.xlsx"

var headerRow = []any{
	"Tanggal", "Liga", "Home", "Away", "Saran",
	"Form Home", "Form Away",
	"Att Home", "Att Away", "Δ Att",
	"Def Home", "Def Away", "Δ Def",
	"Strength Home", "Strength Away", "Δ Strength",
}

// Columns holding home/away differentials. They feed the color gradient
// and stay hidden from the default view.
var deltaColumns = []string{"J", "M", "P"}

const strengthUnavailable = "-"

// Render builds the predictions workbook in memory. One header row, one
// data row per record in input order; never touches the filesystem.
func Render(records []prediction.Record) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, crerr.Wrap(err, "rename sheet")
	}
	if err := f.SetSheetRow(SheetName, "A1", &headerRow); err != nil {
		return nil, crerr.Wrap(err, "write header")
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, crerr.Wrap(err, "row coordinates")
		}
		row := buildRow(rec)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, crerr.Wrapf(err, "write row %d", i+2)
		}
	}

	if err := styleDeltaColumns(f, len(records)); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, crerr.Wrap(err, "serialize workbook")
	}
	return buf, nil
}

func buildRow(rec prediction.Record) []any {
	row := []any{
		rec.Date, rec.League, rec.HomeTeam, rec.AwayTeam, rec.Advice,
		rec.HomeForm, rec.AwayForm,
		rec.HomeLast5.Attack, rec.AwayLast5.Attack, nil,
		rec.HomeLast5.Defense, rec.AwayLast5.Defense, nil,
		nil, nil, nil,
	}

	if delta, ok := percentDelta(rec.HomeLast5.Attack, rec.AwayLast5.Attack); ok {
		row[9] = delta
	}
	if delta, ok := percentDelta(rec.HomeLast5.Defense, rec.AwayLast5.Defense); ok {
		row[12] = delta
	}

	row[13] = strengthCell(rec.HomeStrength)
	row[14] = strengthCell(rec.AwayStrength)
	if rec.HomeStrength != nil && rec.AwayStrength != nil {
		row[15] = *rec.HomeStrength - *rec.AwayStrength
	}
	return row
}

func strengthCell(value *float64) any {
	if value == nil {
		return strengthUnavailable
	}
	return *value
}

// percentDelta subtracts two percentage strings ("45%"). Either side
// failing to parse leaves the differential cell empty.
func percentDelta(home, away string) (float64, bool) {
	h, ok := parsePercent(home)
	if !ok {
		return 0, false
	}
	a, ok := parsePercent(away)
	if !ok {
		return 0, false
	}
	return h - a, true
}

func parsePercent(value string) (float64, bool) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(value), "%")
	if trimmed == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// styleDeltaColumns applies the three-point gradient to the differential
// columns and hides them. Dark red at -100, grey at 0, dark green at +100.
func styleDeltaColumns(f *excelize.File, rows int) error {
	if rows < 1 {
		rows = 1
	}
	gradient := []excelize.ConditionalFormatOptions{{
		Type:     "3_color_scale",
		Criteria: "=",
		MinType:  "num",
		MinValue: "-100",
		MinColor: "#8B0000",
		MidType:  "num",
		MidValue: "0",
		MidColor: "#D9D9D9",
		MaxType:  "num",
		MaxValue: "100",
		MaxColor: "#006400",
	}}

	for _, col := range deltaColumns {
		area := col + "2:" + col + strconv.Itoa(rows+1)
		if err := f.SetConditionalFormat(SheetName, area, gradient); err != nil {
			return crerr.Wrapf(err, "gradient on column %s", col)
		}
		if err := f.SetColVisible(SheetName, col, false); err != nil {
			return crerr.Wrapf(err, "hide column %s", col)
		}
	}
	return nil
}
