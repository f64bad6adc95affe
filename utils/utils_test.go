package utils

import "testing"

type row struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Hidden string `db:"-"`
	NoTag  string
}

func TestGetCols(t *testing.T) {
	cols := GetCols(row{})

	if len(cols) != 2 || cols[0] != "id" || cols[1] != "name" {
		t.Errorf("unexpected cols %v", cols)
	}
}

func TestUpdateParams(t *testing.T) {
	if got := UpdateParams([]string{"a", "b", "c"}); got != "a=$1,b=$2,c=$3" {
		t.Errorf("unexpected update params %q", got)
	}
}

func TestInsertParams(t *testing.T) {
	if got := InsertParams(3); got != "$1,$2,$3" {
		t.Errorf("unexpected insert params %q", got)
	}
}

func TestStripQuotes(t *testing.T) {
	cases := map[string]string{
		`"https://example.com"`: "https://example.com",
		`https://example.com`:   "https://example.com",
		`""`:                    "",
		``:                      "",
	}

	for in, want := range cases {
		if got := StripQuotes(in); got != want {
			t.Errorf("StripQuotes(%q) = %q, want %q", in, got, want)
		}
	}
}
