package compressor

import (
	"fmt"
	"testing"
)

func TestCompressor_Compress(t *testing.T) {
	x := 0 // an empty value

	allCompressors := func() []Compressor {
		return []Compressor{
			NewUniqueEntriesTable(x),
			NewRowDisplacementTable(x),
		}
	}

	tests := []struct {
		caption  string
		original []int
		rowCount int
		colCount int
	}{
		{
			caption: "a full table",
			original: []int{
				1, 1, 1, 1, 1,
				1, 1, 1, 1, 1,
				1, 1, 1, 1, 1,
			},
			rowCount: 3,
			colCount: 5,
		},
		{
			caption: "an empty table",
			original: []int{
				x, x, x, x, x,
				x, x, x, x, x,
				x, x, x, x, x,
			},
			rowCount: 3,
			colCount: 5,
		},
		{
			caption: "an empty row between full rows",
			original: []int{
				1, 1, 1, 1, 1,
				x, x, x, x, x,
				1, 1, 1, 1, 1,
			},
			rowCount: 3,
			colCount: 5,
		},
		{
			caption: "shifts, reductions, and an accept in the shape of an ACTION table",
			original: []int{
				x, x, x, x, -4, x, -5,
				x, 1, -6, x, x, x, x,
				x, 3, 3, -7, x, 3, x,
				x, 5, 5, 5, x, 5, x,
				x, x, x, x, -4, x, -5,
				x, 7, 7, 7, x, 7, x,
			},
			rowCount: 6,
			colCount: 7,
		},
		{
			caption: "a single column",
			original: []int{
				2,
				x,
				3,
			},
			rowCount: 3,
			colCount: 1,
		},
	}
	for _, tt := range tests {
		for _, comp := range allCompressors() {
			t.Run(fmt.Sprintf("%T %v", comp, tt.caption), func(t *testing.T) {
				dup := make([]int, len(tt.original))
				copy(dup, tt.original)

				orig, err := NewOriginalTable(tt.original, tt.colCount)
				if err != nil {
					t.Fatal(err)
				}
				err = comp.Compress(orig)
				if err != nil {
					t.Fatal(err)
				}
				rowCount, colCount := comp.OriginalTableSize()
				if rowCount != tt.rowCount || colCount != tt.colCount {
					t.Fatalf("unexpected table size; want: %vx%v, got: %vx%v", tt.rowCount, tt.colCount, rowCount, colCount)
				}
				for i := 0; i < tt.rowCount; i++ {
					for j := 0; j < tt.colCount; j++ {
						v, err := comp.Lookup(i, j)
						if err != nil {
							t.Fatal(err)
						}
						expected := tt.original[i*tt.colCount+j]
						if v != expected {
							t.Fatalf("unexpected entry (%v, %v); want: %v, got: %v", i, j, expected, v)
						}
					}
				}

				if _, err := comp.Lookup(0, -1); err == nil {
					t.Fatalf("expected error didn't occur (0, -1)")
				}
				if _, err := comp.Lookup(-1, 0); err == nil {
					t.Fatalf("expected error didn't occur (-1, 0)")
				}
				if _, err := comp.Lookup(rowCount-1, colCount); err == nil {
					t.Fatalf("expected error didn't occur (%v, %v)", rowCount-1, colCount)
				}
				if _, err := comp.Lookup(rowCount, colCount-1); err == nil {
					t.Fatalf("expected error didn't occur (%v, %v)", rowCount, colCount-1)
				}

				for i := range tt.original {
					if tt.original[i] != dup[i] {
						t.Fatalf("the original table is broken at %v; want: %v, got: %v", i, dup[i], tt.original[i])
					}
				}
			})
		}
	}
}

func TestUniqueEntriesTable_SharesIdenticalRows(t *testing.T) {
	x := 0
	orig, err := NewOriginalTable([]int{
		x, -2, x,
		4, x, 4,
		x, -2, x,
		4, x, 4,
	}, 3)
	if err != nil {
		t.Fatal(err)
	}
	tab := NewUniqueEntriesTable(x)
	err = tab.Compress(orig)
	if err != nil {
		t.Fatal(err)
	}

	expectedRowNums := []int{0, 1, 0, 1}
	if len(tab.RowNums) != len(expectedRowNums) {
		t.Fatalf("unexpected row numbers; want: %v, got: %v", expectedRowNums, tab.RowNums)
	}
	for i, n := range expectedRowNums {
		if tab.RowNums[i] != n {
			t.Fatalf("unexpected row numbers; want: %v, got: %v", expectedRowNums, tab.RowNums)
		}
	}
	if rows, _ := tab.UniqueEntries.OriginalTableSize(); rows != 2 {
		t.Fatalf("unexpected unique row count; want: 2, got: %v", rows)
	}
}

func TestNewOriginalTable(t *testing.T) {
	if _, err := NewOriginalTable(nil, 1); err == nil {
		t.Fatal("an empty table must be rejected")
	}
	if _, err := NewOriginalTable([]int{1, 2, 3}, 0); err == nil {
		t.Fatal("a zero column count must be rejected")
	}
	if _, err := NewOriginalTable([]int{1, 2, 3}, 2); err == nil {
		t.Fatal("a ragged table must be rejected")
	}
}
