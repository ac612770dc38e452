package model

// Table is an ordered sequence of CSV records. Columns holds the header in
// file order; each row maps column name to cell value. Column sets may vary
// between source files, so nothing here assumes a fixed schema.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// Len returns the number of data rows (the header is not a row).
func (t Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the table's header contains name.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}
