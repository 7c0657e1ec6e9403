package domain

import (
	"math"
	"strings"
	"testing"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := NewTable([]string{"_id", "a", "url"}, [][]string{
		{"x1", "1", "http://a"},
		{"x2", "na", "http://b"},
		{"x3", "", "http://c"},
		{"x4", "-2.5", "http://d"},
	})
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	return tbl
}

func TestNewTableRejectsRaggedRows(t *testing.T) {
	if _, err := NewTable([]string{"a", "b"}, [][]string{{"1"}}); err == nil {
		t.Fatalf("expected width error")
	}
}

func TestDropColumnCopies(t *testing.T) {
	tbl := sampleTable(t)
	dropped := tbl.DropColumn("_id")
	if strings.Join(dropped.Columns, ",") != "a,url" {
		t.Fatalf("unexpected columns %v", dropped.Columns)
	}
	dropped.Rows[0][0] = "changed"
	if tbl.Rows[0][1] != "1" {
		t.Fatalf("DropColumn must not share rows with the source")
	}
	if tbl.DropColumn("absent") != tbl {
		t.Fatalf("dropping an unknown column is a no-op")
	}
}

func TestReplaceLiteralAndNumeric(t *testing.T) {
	tbl := sampleTable(t).DropColumn("_id")
	if tbl.IsNumeric(0) {
		t.Fatalf("column with literal na must not be numeric")
	}
	if n := tbl.ReplaceLiteral("na", Missing); n != 1 {
		t.Fatalf("expected one replacement, got %d", n)
	}
	if !tbl.IsNumeric(0) || tbl.IsNumeric(1) {
		t.Fatalf("unexpected numeric inference")
	}
	if got := tbl.NumericColumns(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("unexpected numeric columns %v", got)
	}

	vals, err := tbl.Floats("a")
	if err != nil {
		t.Fatalf("floats: %v", err)
	}
	if vals[0] != 1 || !math.IsNaN(vals[1]) || !math.IsNaN(vals[2]) || vals[3] != -2.5 {
		t.Fatalf("unexpected values %v", vals)
	}
	obs, _ := tbl.Observed("a")
	if len(obs) != 2 {
		t.Fatalf("expected 2 observed values, got %v", obs)
	}
	if _, err := tbl.Floats("url"); err == nil {
		t.Fatalf("expected parse error for a text column")
	}
	if _, err := tbl.Floats("missing"); err == nil {
		t.Fatalf("expected unknown column error")
	}
}

func TestSubsetKeepsOrder(t *testing.T) {
	tbl := sampleTable(t)
	sub := tbl.Subset([]int{3, 0})
	if sub.Len() != 2 || sub.Rows[0][0] != "x4" || sub.Rows[1][0] != "x1" {
		t.Fatalf("unexpected subset %v", sub.Rows)
	}
}

func TestIsMissingTokens(t *testing.T) {
	for _, tok := range []string{"", "NaN", "NULL", " N/A "} {
		if !IsMissing(tok) {
			t.Fatalf("expected %q missing", tok)
		}
	}
	for _, tok := range []string{"na", "0", "-1"} {
		if IsMissing(tok) {
			t.Fatalf("did not expect %q missing", tok)
		}
	}
}

func TestValidationArtifactString(t *testing.T) {
	p := "invalid/train.csv"
	a := ValidationArtifact{ValidationStatus: true, InvalidTrainFilePath: &p}
	s := a.String()
	if !strings.Contains(s, "invalid_train_file_path=invalid/train.csv") || !strings.Contains(s, "invalid_test_file_path=None") {
		t.Fatalf("unexpected rendering %s", s)
	}
	if (DriftReport{"a": {DriftDetected: true}, "b": {}}).Drifted() != 1 {
		t.Fatalf("expected one drifted column")
	}
}
