package storage

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/Veraticus/calllog/internal/common"
	"github.com/Veraticus/calllog/internal/model"
)

// Delimiter separates fields in the call log file.
const Delimiter = ';'

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readCallsFile parses the call log at path. A missing file is reported with
// an error matching fs.ErrNotExist.
func readCallsFile(path string) ([]model.Call, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, common.NewIOError("read", path, err)
	}

	if !utf8.Valid(data) {
		return nil, common.NewFormatError(path, 0, errors.New("file is not valid UTF-8"))
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	return decodeCalls(bytes.NewReader(data), path)
}

// decodeCalls reads a header row followed by call rows. Columns are located by
// label so their order in the file does not matter; extra columns are ignored.
func decodeCalls(r io.Reader, path string) ([]model.Call, error) {
	reader := csv.NewReader(r)
	reader.Comma = Delimiter
	// Hand-edited logs may carry stray quotes inside unquoted fields.
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, wrapCSVError(path, err)
	}

	index := make(map[string]int, len(header))
	for i, label := range header {
		if _, dup := index[label]; !dup {
			index[label] = i
		}
	}
	for _, col := range model.Columns {
		if _, ok := index[col]; !ok {
			return nil, common.NewFormatError(path, 1, fmt.Errorf("missing column %q", col))
		}
	}

	var calls []model.Call
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return calls, nil
		}
		if err != nil {
			return nil, wrapCSVError(path, err)
		}

		call, err := model.ParseCall(
			row[index[model.ColumnNumber]],
			row[index[model.ColumnPhone]],
			row[index[model.ColumnReason]],
			row[index[model.ColumnResolved]],
		)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, common.NewFormatError(path, line, err)
		}
		calls = append(calls, call)
	}
}

// encodeCalls writes the header row and one row per call in order.
func encodeCalls(w io.Writer, calls []model.Call) error {
	writer := csv.NewWriter(w)
	writer.Comma = Delimiter
	writer.UseCRLF = true

	if err := writer.Write(model.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, call := range calls {
		if err := writer.Write(call.Row()); err != nil {
			return fmt.Errorf("failed to write call %d: %w", call.Number, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func wrapCSVError(path string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return common.NewFormatError(path, parseErr.Line, parseErr.Err)
	}
	return common.NewIOError("read", path, err)
}
