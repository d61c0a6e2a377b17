// Package dataset parses measurement exports into typed records. Parsing is
// row-fault-tolerant: a malformed row is counted and skipped, never aborts
// the file. Cluster mapping is strict: rows that fail identifier resolution
// are dropped before a record is constructed.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Known timestamp layouts, tried in order. A row whose timestamps match
// none of them is skipped; substituting wall-clock time would silently
// corrupt period assignment.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"02-01-2006 15:04:05",
	"2006-01-02",
	"02-01-2006",
	"2006/01/02",
}

// cellIDTable maps known cell-identifier codes to (sector, band) for 4G
// records. Unknown codes yield ("", "") rather than failing the row.
var cellIDTable = map[string][2]string{
	"131": {"1", "850"}, "132": {"2", "850"}, "133": {"3", "850"}, "134": {"4", "850"},
	"4": {"1", "1800"}, "5": {"2", "1800"}, "6": {"3", "1800"}, "24": {"4", "1800"},
	"51": {"11", "1800"}, "52": {"12", "1800"}, "53": {"13", "1800"}, "54": {"14", "1800"},
	"55": {"15", "1800"}, "56": {"16", "1800"}, "14": {"M1", "1800"}, "15": {"M2", "1800"},
	"16": {"M3", "1800"}, "64": {"M4", "1800"},
	"1": {"1", "2100"}, "2": {"2", "2100"}, "3": {"3", "2100"}, "7": {"1", "2100"},
	"8": {"2", "2100"}, "9": {"3", "2100"}, "97": {"11", "2100"}, "27": {"4", "2100"},
	"91": {"11", "2100"}, "92": {"12", "2100"}, "93": {"13", "2100"}, "94": {"14", "2100"},
	"95": {"15", "2100"}, "96": {"16", "2100"}, "17": {"M1", "2100"}, "18": {"M2", "2100"},
	"19": {"M3", "2100"}, "67": {"M4", "2100"},
	"111": {"1", "2300"}, "112": {"2", "2300"}, "113": {"3", "2300"}, "114": {"4", "2300"},
	"141": {"11", "2300"}, "142": {"12", "2300"}, "143": {"13", "2300"}, "144": {"14", "2300"},
	"145": {"15", "2300"}, "146": {"16", "2300"}, "121": {"1", "2300"}, "122": {"2", "2300"},
	"123": {"3", "2300"}, "124": {"4", "2300"}, "151": {"11", "2300"}, "152": {"12", "2300"},
	"153": {"13", "2300"}, "154": {"14", "2300"}, "155": {"15", "2300"}, "156": {"16", "2300"},
}

func sectorBand(cellID string) (sector, band string) {
	if m, ok := cellIDTable[cellID]; ok {
		return m[0], m[1]
	}
	return "", ""
}

// cleanValue strips thousands separators, percent signs, a UTF-8 BOM and
// surrounding whitespace.
func cleanValue(value string) string {
	value = strings.TrimPrefix(value, "\ufeff")
	value = strings.ReplaceAll(value, ",", "")
	value = strings.ReplaceAll(value, "%", "")
	return strings.TrimSpace(value)
}

// parseFloat converts a cleaned field to float64. Empty or unparseable
// values become 0.0 on purpose: downstream ratio computation treats 0/0 as
// "no data" via denominator checks.
func parseFloat(value string) float64 {
	cleaned := cleanValue(value)
	if cleaned == "" {
		return 0.0
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0.0
	}
	return f
}

func parseTime(value string) (time.Time, bool) {
	cleaned := strings.TrimSpace(strings.TrimPrefix(value, "\ufeff"))
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, cleaned); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// forEachRow streams the data rows of a delimited file, skipping the
// header. rowErr is invoked for rows the CSV reader itself rejects.
func forEachRow(path string, rowErr func(), fn func(row []string)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	first := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if !first && rowErr != nil {
				rowErr()
			}
			first = false
			continue
		}
		if first {
			first = false
			continue // header
		}
		fn(row)
	}
}
