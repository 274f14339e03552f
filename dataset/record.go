// Package dataset loads and cleans the country-level Gender Inequality Index
// table. Cleaning turns placeholder markers and unparseable cells into
// explicit missing values; it never substitutes zeros and never drops rows.
package dataset

// Float is an optional float64. The zero value is missing.
//
// Arithmetic on Floats propagates missingness: if any operand is missing the
// result is missing. This replaces implicit NaN semantics with a documented
// rule per operation.
type Float struct {
	Value float64
	Valid bool
}

// F returns a present Float.
func F(v float64) Float {
	return Float{Value: v, Valid: true}
}

// Missing is the absent Float.
var Missing = Float{}

// Sub returns f - g, missing if either operand is missing.
func (f Float) Sub(g Float) Float {
	if !f.Valid || !g.Valid {
		return Missing
	}
	return F(f.Value - g.Value)
}

// Add returns f + g, missing if either operand is missing.
func (f Float) Add(g Float) Float {
	if !f.Valid || !g.Valid {
		return Missing
	}
	return F(f.Value + g.Value)
}

// DevelopmentGroup is the coarse human-development label carried by the
// source table.
type DevelopmentGroup string

const (
	DevVeryHigh DevelopmentGroup = "VERY HIGH"
	DevHigh     DevelopmentGroup = "HIGH"
	DevMedium   DevelopmentGroup = "MEDIUM"
	DevLow      DevelopmentGroup = "LOW"
	DevUnknown  DevelopmentGroup = ""
)

// DevelopmentGroups lists the known groups in display order, highest
// development first.
var DevelopmentGroups = []DevelopmentGroup{DevVeryHigh, DevHigh, DevMedium, DevLow}

// Record is one country row after cleaning. Immutable once loaded; the
// feature engineer returns modified copies rather than mutating in place.
type Record struct {
	Country          string
	HDIRank          Float
	DevelopmentGroup DevelopmentGroup

	// GIIValue is the modeling target, in [0,1]. Records without it are
	// excluded from modeling but kept for display.
	GIIValue Float
	GIIRank  Float

	// Raw indicators.
	MaternalMortality   Float // deaths per 100k live births, >= 0
	AdolescentBirthRate Float // births per 1k women aged 15-19, >= 0
	SeatsParliament     Float // % of seats held by women, [0,100]
	FSecondaryEduc      Float // % females with secondary education, [0,100]
	MSecondaryEduc      Float // % males with secondary education, [0,100]
	FLabourForce        Float // female labour-force participation %, [0,100]
	MLabourForce        Float // male labour-force participation %, [0,100]

	// Derived gaps (male minus female), filled by the feature engineer.
	// Missing when either operand is missing.
	EduGap    Float
	LabourGap Float
}

// Table is the ordered sequence of cleaned records. Row order follows the
// input file; it matters for reproducible display, not for statistics.
type Table struct {
	Records []Record

	// MissingCells counts cells nulled during cleaning: placeholder markers
	// plus cells that failed numeric coercion. Imputation decisions are
	// reported as values, never hidden.
	MissingCells int
}

// Lookup returns the first record for the given country name. Duplicate
// country rows are tolerated; the first one in load order wins.
func (t *Table) Lookup(country string) (Record, bool) {
	for _, rec := range t.Records {
		if rec.Country == country {
			return rec, true
		}
	}
	return Record{}, false
}

// Countries returns all country names in load order, duplicates included.
func (t *Table) Countries() []string {
	names := make([]string, len(t.Records))
	for i, rec := range t.Records {
		names[i] = rec.Country
	}
	return names
}
