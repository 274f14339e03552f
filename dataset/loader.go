package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/giilab/giiscope/pkg/errors"
	"github.com/giilab/giiscope/pkg/log"
)

// Canonical column names, as they appear in the source table after header
// normalization. The doubled "t" in the parliament column is present in the
// published file.
const (
	ColCountry             = "Country"
	ColHDIRank             = "HDI rank"
	ColDevelopmentGroup    = "HUMAN DEVELOPMENT"
	ColGIIValue            = "GII VALUE"
	ColGIIRank             = "GII RANK"
	ColMaternalMortality   = "Maternal_mortality"
	ColAdolescentBirthRate = "Adolescent_birth_rate"
	ColSeatsParliament     = "Seats_parliamentt(% held by women)"
	ColFSecondaryEduc      = "F_secondary_educ"
	ColMSecondaryEduc      = "M_secondary_educ"
	ColFLabourForce        = "F_Labour_force"
	ColMLabourForce        = "M_Labour_force"
)

// MissingMarker is the "not available" placeholder used by the source table.
const MissingMarker = ".."

// numericColumns are the declared-numeric columns, in canonical order.
var numericColumns = []string{
	ColHDIRank,
	ColGIIValue,
	ColGIIRank,
	ColMaternalMortality,
	ColAdolescentBirthRate,
	ColSeatsParliament,
	ColFSecondaryEduc,
	ColMSecondaryEduc,
	ColFLabourForce,
	ColMLabourForce,
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open dataset %s", path)
	}
	defer f.Close()
	return Load(f)
}

// Load reads the delimited table and produces one Record per input row, in
// input order.
//
// Cleaning policy:
//   - the first header cell may carry a UTF-8 byte-order mark; it is
//     stripped, and all header cells are whitespace-trimmed, then matched
//     case-sensitively against the canonical names
//   - a cell equal to MissingMarker (or empty) becomes missing, never zero
//   - a numeric cell that fails to parse becomes missing and raises a
//     recovered ParseError warning; a single bad cell never fails the row
//
// Load fails only structurally: zero columns, or no Country column.
func Load(r io.Reader) (*Table, error) {
	logger := log.GetLoggerWithName("dataset.loader")

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows handled per cell

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewSchemaError(ColCountry, nil)
	}
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	if len(header) == 0 {
		return nil, errors.NewSchemaError(ColCountry, nil)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[normalizeHeader(name, i == 0)] = i
	}

	countryIdx, ok := cols[ColCountry]
	if !ok {
		normalized := make([]string, 0, len(cols))
		for name := range cols {
			normalized = append(normalized, name)
		}
		return nil, errors.NewSchemaError(ColCountry, normalized)
	}

	table := &Table{}
	rowNum := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read row %d", rowNum)
		}
		rowNum++

		rec := Record{Country: cell(row, countryIdx)}
		if idx, ok := cols[ColDevelopmentGroup]; ok {
			rec.DevelopmentGroup = parseDevelopmentGroup(cell(row, idx))
		}

		rec.HDIRank = table.parseNumeric(row, cols, ColHDIRank, rowNum)
		rec.GIIValue = table.parseNumeric(row, cols, ColGIIValue, rowNum)
		rec.GIIRank = table.parseNumeric(row, cols, ColGIIRank, rowNum)
		rec.MaternalMortality = table.parseNumeric(row, cols, ColMaternalMortality, rowNum)
		rec.AdolescentBirthRate = table.parseNumeric(row, cols, ColAdolescentBirthRate, rowNum)
		rec.SeatsParliament = table.parseNumeric(row, cols, ColSeatsParliament, rowNum)
		rec.FSecondaryEduc = table.parseNumeric(row, cols, ColFSecondaryEduc, rowNum)
		rec.MSecondaryEduc = table.parseNumeric(row, cols, ColMSecondaryEduc, rowNum)
		rec.FLabourForce = table.parseNumeric(row, cols, ColFLabourForce, rowNum)
		rec.MLabourForce = table.parseNumeric(row, cols, ColMLabourForce, rowNum)

		table.Records = append(table.Records, rec)
	}

	logger.Info("dataset loaded",
		log.OperationKey, "load",
		log.RowsKey, len(table.Records),
		log.MissingCellsKey, table.MissingCells)

	return table, nil
}

// normalizeHeader strips a leading byte-order mark from the first header
// cell and trims surrounding whitespace. Matching afterwards is exact.
func normalizeHeader(name string, first bool) string {
	if first {
		name = strings.TrimPrefix(name, "\uFEFF")
	}
	return strings.TrimSpace(name)
}

// parseNumeric coerces one cell of a declared-numeric column. Placeholder
// and empty cells become missing silently (they are the documented
// not-available marker); unparseable cells become missing with a recovered
// ParseError warning. Both are counted in MissingCells.
func (t *Table) parseNumeric(row []string, cols map[string]int, col string, rowNum int) Float {
	idx, ok := cols[col]
	if !ok {
		return Missing
	}
	raw := cell(row, idx)
	if raw == "" || raw == MissingMarker {
		t.MissingCells++
		return Missing
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		errors.Warn(errors.NewParseError(col, rowNum, raw))
		t.MissingCells++
		return Missing
	}
	return F(v)
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseDevelopmentGroup(raw string) DevelopmentGroup {
	switch DevelopmentGroup(strings.ToUpper(raw)) {
	case DevVeryHigh:
		return DevVeryHigh
	case DevHigh:
		return DevHigh
	case DevMedium:
		return DevMedium
	case DevLow:
		return DevLow
	default:
		return DevUnknown
	}
}
