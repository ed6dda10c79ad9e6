package csvimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
)

// MsgInvalidFile is shown when the chosen file is not a CSV.
const MsgInvalidFile = "Please select a valid CSV file"

// ErrInvalidFile is returned by Inspect for anything that is not a CSV.
var ErrInvalidFile = errors.New("invalid csv file")

// File is a selected CSV awaiting upload.
type File struct {
	Name   string   `json:"name"`
	Size   int      `json:"size"`
	Header []string `json:"header"`
	Rows   int      `json:"rows"`
	data   []byte
}

// Inspect checks the extension and content of a candidate file and reads
// its header row.
func Inspect(filename string, data []byte) (*File, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return nil, fmt.Errorf("%w: %s has no .csv extension", ErrInvalidFile, filename)
	}
	if !isText(data) {
		return nil, fmt.Errorf("%w: %s is not text", ErrInvalidFile, filename)
	}

	r := csv.NewReader(stripUTF8BOM(bufio.NewReader(bytes.NewReader(data))))
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	rows := 0
	for {
		_, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidFile, rows+2, err)
		}
		rows++
	}

	return &File{Name: filepath.Base(filename), Size: len(data), Header: header, Rows: rows, data: data}, nil
}

// Reader returns the raw file content.
func (f *File) Reader() io.Reader {
	return bytes.NewReader(f.data)
}

func isText(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return r
}

func readHeader(r *csv.Reader) ([]string, error) {
	h, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("missing header")
		}
		return nil, err
	}
	for i := range h {
		h[i] = strings.TrimSpace(h[i])
		if !utf8.ValidString(h[i]) {
			return nil, errors.New("invalid header encoding")
		}
	}
	return h, nil
}
