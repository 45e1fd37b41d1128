package user

// Safelist from external field name to column. Caller strings never reach
// query construction directly; the digest column is not selectable by name.
var fieldColumns = map[string]string{
	"id":    "id",
	"name":  "name",
	"email": "email",
	"title": "title",
}

// AllColumns is the canonical column order for unprojected fetches and
// read-backs.
var AllColumns = []string{"id", "name", "email", "title", "password_digest"}

// ProjectColumns derives the minimal column list for a list query from the
// field names a caller asked for. Unknown names are ignored; an empty or
// fully-unknown request falls back to every column.
func ProjectColumns(fields []string) []string {
	if len(fields) == 0 {
		return AllColumns
	}

	requested := make(map[string]bool, len(fields))
	for _, f := range fields {
		if col, ok := fieldColumns[f]; ok {
			requested[col] = true
		}
	}
	if len(requested) == 0 {
		return AllColumns
	}

	// keep canonical order regardless of request order
	columns := make([]string, 0, len(requested))
	for _, col := range AllColumns {
		if requested[col] {
			columns = append(columns, col)
		}
	}
	return columns
}
