package utils

import (
	"reflect"
	"strconv"
	"strings"
)

// GetCols returns the db-tagged column names of a struct, in field order.
// Used to keep SELECT column lists in sync with the scan targets.
func GetCols(s any) []string {
	var cols []string

	structType := reflect.TypeOf(s)

	for _, f := range reflect.VisibleFields(structType) {
		db := f.Tag.Get("db")

		if db == "" || db == "-" {
			continue
		}

		cols = append(cols, db)
	}

	return cols
}

// UpdateParams returns "col1=$1,col2=$2,..." for the given columns, for
// use in UPDATE statements whose args are built in the same order.
func UpdateParams(cols []string) string {
	var parts = make([]string, len(cols))

	for i, col := range cols {
		parts[i] = col + "=$" + strconv.Itoa(i+1)
	}

	return strings.Join(parts, ",")
}

// InsertParams returns "$1,$2,...,$n"
func InsertParams(n int) string {
	var parts = make([]string, n)

	for i := range parts {
		parts[i] = "$" + strconv.Itoa(i+1)
	}

	return strings.Join(parts, ",")
}

// StripQuotes removes stray quote characters users paste around URLs
func StripQuotes(s string) string {
	return strings.Trim(strings.TrimSpace(s), "\"'")
}
