package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV parses a comma or semicolon separated price table
func ReadCSV(r io.Reader) (*Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	sheet := &Sheet{Columns: ResolveColumns(header)}
	dec, err := csvutil.NewDecoder(&paddedReader{r: reader, n: len(header)}, sheet.Columns.canonicalHeader(len(header))...)
	if err != nil {
		return nil, fmt.Errorf("failed to create csv decoder: %w", err)
	}

	for {
		var row PriceRow
		if err := dec.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("failed to decode csv line %d: %w", len(sheet.Rows)+2, err)
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

// sniffDelimiter picks ';' when the header line has more semicolons than commas
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

// paddedReader makes every record as wide as the header, spreadsheets often drop trailing empty cells
type paddedReader struct {
	r *csv.Reader
	n int
}

func (p *paddedReader) Read() ([]string, error) {
	record, err := p.r.Read()
	if err != nil {
		return nil, err
	}
	switch {
	case len(record) < p.n:
		record = append(record, make([]string, p.n-len(record))...)
	case len(record) > p.n:
		record = record[:p.n]
	}
	return record, nil
}
