// Package csvjson converts CSV documents into newline-delimited JSON objects.
package csvjson

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoHeader is returned when the input has no header record.
var ErrNoHeader = errors.New("csv has no header")

// Convert reads CSV from r and writes one JSON object per data record to w.
// Keys come from the header record and keep its order. Values are trimmed strings.
// It returns the number of written objects.
func Convert(ctx context.Context, r io.Reader, w io.Writer) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return 0, ErrNoHeader
	}
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	out := bufio.NewWriter(w)
	var line bytes.Buffer
	rows := 0
	for {
		if err := ctx.Err(); err != nil {
			return rows, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("read record: %w", err)
		}

		line.Reset()
		if err := encodeRecord(&line, keys, record); err != nil {
			return rows, err
		}
		if _, err := out.Write(line.Bytes()); err != nil {
			return rows, fmt.Errorf("write record: %w", err)
		}
		rows++
	}

	if err := out.Flush(); err != nil {
		return rows, fmt.Errorf("flush output: %w", err)
	}
	return rows, nil
}

// encodeRecord writes record as a JSON object followed by a newline.
func encodeRecord(buf *bytes.Buffer, keys, record []string) error {
	buf.WriteByte('{')
	for i, value := range record {
		key := "field" + strconv.Itoa(i+1)
		if i < len(keys) {
			key = keys[i]
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(buf, key); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeString(buf, strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	buf.WriteString("}\n")
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	encoded, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode %q: %w", s, err)
	}
	buf.Write(encoded)
	return nil
}
