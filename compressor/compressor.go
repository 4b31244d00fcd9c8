package compressor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// OriginalTable is a dense row-major table such as the ACTION or GOTO table of a parser.
type OriginalTable struct {
	entries  []int
	rowCount int
	colCount int
}

func NewOriginalTable(entries []int, colCount int) (*OriginalTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("entries is empty")
	}
	if colCount <= 0 {
		return nil, fmt.Errorf("colCount must be >=1")
	}
	if len(entries)%colCount != 0 {
		return nil, fmt.Errorf("entries length or column count are incorrect; entries length: %v, column count: %v", len(entries), colCount)
	}

	return &OriginalTable{
		entries:  entries,
		rowCount: len(entries) / colCount,
		colCount: colCount,
	}, nil
}

func (t *OriginalTable) row(r int) []int {
	return t.entries[r*t.colCount : (r+1)*t.colCount]
}

type Compressor interface {
	Compress(orig *OriginalTable) error
	Lookup(row, col int) (int, error)
	OriginalTableSize() (int, int)
}

var (
	_ Compressor = &UniqueEntriesTable{}
	_ Compressor = &RowDisplacementTable{}
)

// UniqueEntriesTable stores each distinct row once and packs the distinct rows into a
// RowDisplacementTable. Parsing tables have many identical rows, e.g. every state that only
// reduces by one production.
type UniqueEntriesTable struct {
	UniqueEntries    *RowDisplacementTable `json:"unique_entries"`
	RowNums          []int                 `json:"row_nums"`
	OriginalRowCount int                   `json:"original_row_count"`
	OriginalColCount int                   `json:"original_col_count"`
}

func NewUniqueEntriesTable(emptyValue int) *UniqueEntriesTable {
	return &UniqueEntriesTable{
		UniqueEntries: NewRowDisplacementTable(emptyValue),
	}
}

func (tab *UniqueEntriesTable) Lookup(row, col int) (int, error) {
	if row < 0 || row >= tab.OriginalRowCount || col < 0 || col >= tab.OriginalColCount {
		return tab.UniqueEntries.EmptyValue, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	return tab.UniqueEntries.Lookup(tab.RowNums[row], col)
}

func (tab *UniqueEntriesTable) OriginalTableSize() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}

func (tab *UniqueEntriesTable) Compress(orig *OriginalTable) error {
	var uniqueEntries []int
	rowNums := make([]int, orig.rowCount)
	key2RowNum := map[string]int{}
	for r := 0; r < orig.rowCount; r++ {
		row := orig.row(r)
		key := rowKey(row)
		rowNum, ok := key2RowNum[key]
		if !ok {
			rowNum = len(key2RowNum)
			key2RowNum[key] = rowNum
			uniqueEntries = append(uniqueEntries, row...)
		}
		rowNums[r] = rowNum
	}

	unique, err := NewOriginalTable(uniqueEntries, orig.colCount)
	if err != nil {
		return err
	}
	err = tab.UniqueEntries.Compress(unique)
	if err != nil {
		return err
	}

	tab.RowNums = rowNums
	tab.OriginalRowCount = orig.rowCount
	tab.OriginalColCount = orig.colCount

	return nil
}

func rowKey(row []int) string {
	var b strings.Builder
	for _, v := range row {
		b.WriteString(strconv.Itoa(v))
		b.WriteByte(',')
	}
	return b.String()
}

// ForbiddenValue marks a slot of Bounds that no row owns.
const ForbiddenValue = -1

// RowDisplacementTable overlays the rows of a sparse table on one array. Row r starts at
// RowDisplacement[r], and Bounds records which row owns each slot.
type RowDisplacementTable struct {
	OriginalRowCount int   `json:"original_row_count"`
	OriginalColCount int   `json:"original_col_count"`
	EmptyValue       int   `json:"empty_value"`
	Entries          []int `json:"entries"`
	Bounds           []int `json:"bounds"`
	RowDisplacement  []int `json:"row_displacement"`
}

func NewRowDisplacementTable(emptyValue int) *RowDisplacementTable {
	return &RowDisplacementTable{
		EmptyValue: emptyValue,
	}
}

func (tab *RowDisplacementTable) Lookup(row int, col int) (int, error) {
	if row < 0 || row >= tab.OriginalRowCount || col < 0 || col >= tab.OriginalColCount {
		return tab.EmptyValue, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	pos := tab.RowDisplacement[row] + col
	if pos >= len(tab.Bounds) || tab.Bounds[pos] != row {
		return tab.EmptyValue, nil
	}
	return tab.Entries[pos], nil
}

func (tab *RowDisplacementTable) OriginalTableSize() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}

type rowInfo struct {
	rowNum      int
	nonEmptyCol []int
}

// Compress places the densest rows first, each at the lowest displacement where its
// non-empty columns hit only free slots.
func (tab *RowDisplacementTable) Compress(orig *OriginalTable) error {
	rows := make([]*rowInfo, orig.rowCount)
	for r := 0; r < orig.rowCount; r++ {
		info := &rowInfo{
			rowNum: r,
		}
		for c, v := range orig.row(r) {
			if v != tab.EmptyValue {
				info.nonEmptyCol = append(info.nonEmptyCol, c)
			}
		}
		rows[r] = info
	}
	sort.SliceStable(rows, func(i int, j int) bool {
		return len(rows[i].nonEmptyCol) > len(rows[j].nonEmptyCol)
	})

	var entries []int
	var bounds []int
	rowDisplacement := make([]int, orig.rowCount)
	grow := func(size int) {
		for len(entries) < size {
			entries = append(entries, tab.EmptyValue)
			bounds = append(bounds, ForbiddenValue)
		}
	}
	for _, info := range rows {
		if len(info.nonEmptyCol) == 0 {
			continue
		}

		d := 0
		for ; ; d++ {
			fits := true
			for _, c := range info.nonEmptyCol {
				if d+c < len(bounds) && bounds[d+c] != ForbiddenValue {
					fits = false
					break
				}
			}
			if fits {
				break
			}
		}

		grow(d + orig.colCount)
		rowDisplacement[info.rowNum] = d
		for _, c := range info.nonEmptyCol {
			entries[d+c] = orig.entries[info.rowNum*orig.colCount+c]
			bounds[d+c] = info.rowNum
		}
	}
	if entries == nil {
		grow(orig.colCount)
	}

	tab.OriginalRowCount = orig.rowCount
	tab.OriginalColCount = orig.colCount
	tab.Entries = entries
	tab.Bounds = bounds
	tab.RowDisplacement = rowDisplacement

	return nil
}
