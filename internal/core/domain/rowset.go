package domain

import "fmt"

// RowSet is an ordered column/value table produced by one section
// extractor. Cell values are strings until a declared numeric cleaning
// pass, or already-typed values (float64, time.Time, nil) when the
// extractor decodes them itself.
type RowSet struct {
	Columns []string
	Records [][]any
}

func NewRowSet(columns ...string) *RowSet {
	return &RowSet{Columns: columns}
}

func (rs *RowSet) Append(values ...any) {
	rs.Records = append(rs.Records, values)
}

func (rs *RowSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Records)
}

func (rs *RowSet) Empty() bool { return rs.Len() == 0 }

func (rs *RowSet) ColumnIndex(name string) int {
	for i, c := range rs.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// AddColumn appends a constant-valued column to every record.
func (rs *RowSet) AddColumn(name string, value any) {
	rs.Columns = append(rs.Columns, name)
	for i := range rs.Records {
		rs.Records[i] = append(rs.Records[i], value)
	}
}

// SetCell overwrites one cell; out-of-range indexes are a programming
// error and panic like a slice access would.
func (rs *RowSet) SetCell(row, col int, value any) {
	rs.Records[row][col] = value
}

func (rs *RowSet) Cell(row, col int) any {
	return rs.Records[row][col]
}

// Validate reports a shape error when any record's arity disagrees with
// the declared columns.
func (rs *RowSet) Validate() error {
	for i, rec := range rs.Records {
		if len(rec) != len(rs.Columns) {
			return WrapError(ErrInvalidInput, "row set shape",
				fmt.Errorf("record %d has %d values for %d columns", i, len(rec), len(rs.Columns)))
		}
	}
	return nil
}
