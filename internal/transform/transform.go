// Package transform parses raw tabular payloads, tolerating several text
// encodings, and applies the fixed set of column normalizations.
package transform

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/crimson-sun/winnow/internal/model"
)

// ResultCodes maps delivery inspection results to their numeric codes.
// A closed table: values outside it encode to NullMarker, never to zero.
var ResultCodes = map[string]int{
	"Qualified":                 0,
	"No Address Info":           1,
	"Location Not Clear":        2,
	"No Clear Shipping Label":   3,
	"Public or Unsafe Area":     4,
	"Invalid Mailbox Delivery":  5,
	"Leave Outside of Building": 6,
	"Wrong Address":             7,
	"Wrong Parcel Photo":        8,
	"No POD":                    9,
	"Inappropriate Delivery":    10,
}

// NullMarker is the text rendering of an unmapped result value.
const NullMarker = "<NA>"

// DecodeError means no supported encoding parsed the input as tabular data.
type DecodeError struct {
	attempts []string
}

func (e *DecodeError) Error() string {
	return "transform: decode csv: " + strings.Join(e.attempts, "; ")
}

type strategy struct {
	name   string
	decode func(data []byte) (model.Table, error)
}

// strategies is the fixed encoding fallback order: platform-default read,
// strict UTF-8, UTF-8 with signature, then Latin-1. First success wins.
var strategies = []strategy{
	{"native", decodeUTF8},
	{"utf-8", decodeUTF8},
	{"utf-8-sig", decodeUTF8Sig},
	{"latin-1", decodeLatin1},
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func decodeUTF8(data []byte) (model.Table, error) {
	if !utf8.Valid(data) {
		return model.Table{}, errors.New("invalid UTF-8 byte sequence")
	}
	return parseCSV(data)
}

func decodeUTF8Sig(data []byte) (model.Table, error) {
	return decodeUTF8(bytes.TrimPrefix(data, utf8BOM))
}

func decodeLatin1(data []byte) (model.Table, error) {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return model.Table{}, err
	}
	return parseCSV(decoded)
}

func parseCSV(data []byte) (model.Table, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return model.Table{}, err
	}
	if len(records) == 0 {
		return model.Table{}, errors.New("no columns to parse")
	}
	cols := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(cols))
		for i, col := range cols {
			row[col] = rec[i]
		}
		rows = append(rows, row)
	}
	return model.Table{Columns: cols, Rows: rows}, nil
}

// Decode tries each encoding strategy in order and returns the first table
// that parses. When every strategy fails it returns a single *DecodeError
// aggregating the per-encoding failures.
func Decode(data []byte) (model.Table, error) {
	dec := &DecodeError{}
	for _, s := range strategies {
		table, err := s.decode(data)
		if err == nil {
			return table, nil
		}
		dec.attempts = append(dec.attempts, fmt.Sprintf("%s: %v", s.name, err))
	}
	return model.Table{}, dec
}

// Clean applies the normalization rules to the table and returns the result.
// Rules only touch columns that exist; a missing column is not an error.
// The row count is an invariant: rows are rewritten, never dropped or added.
func Clean(in model.Table) (model.Table, error) {
	out := model.Table{
		Columns: append([]string(nil), in.Columns...),
		Rows:    make([]map[string]string, 0, len(in.Rows)),
	}
	hasPOD := in.HasColumn("VALID POD")
	hasResult := in.HasColumn("result")
	if hasPOD {
		out.Columns = append(out.Columns, "VALID POD_encoded")
	}
	if hasResult {
		out.Columns = append(out.Columns, "result_encoded")
	}

	for _, row := range in.Rows {
		clean := make(map[string]string, len(row)+2)
		for k, v := range row {
			clean[k] = v
		}
		for _, col := range []string{"partner_id", "team_id"} {
			if v, ok := clean[col]; ok {
				clean[col] = strings.TrimSuffix(v, ".0")
			}
		}
		if v, ok := clean["zipcode"]; ok {
			clean["zipcode"], _, _ = strings.Cut(v, "-")
		}
		if hasPOD {
			clean["VALID POD_encoded"] = encodePOD(row["VALID POD"])
		}
		if hasResult {
			clean["result_encoded"] = encodeResult(row["result"])
		}
		out.Rows = append(out.Rows, clean)
	}

	if out.Len() != in.Len() {
		return model.Table{}, fmt.Errorf("transform: row count changed: %d in, %d out", in.Len(), out.Len())
	}
	return out, nil
}

func encodePOD(v string) string {
	switch v {
	case "Y":
		return "0"
	case "N":
		return "1"
	default:
		return ""
	}
}

func encodeResult(v string) string {
	code, ok := ResultCodes[v]
	if !ok {
		return NullMarker
	}
	return strconv.Itoa(code)
}

// Encode renders the table back to CSV bytes in column order. Cells missing
// from a row render as empty.
func Encode(t model.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Columns); err != nil {
		return nil, fmt.Errorf("transform: encode csv: %w", err)
	}
	rec := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			rec[i] = row[col]
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("transform: encode csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("transform: encode csv: %w", err)
	}
	return buf.Bytes(), nil
}
