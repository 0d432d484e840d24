// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package dataset

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"testing"
)

// encodeNPY builds a .npy file the way numpy.save lays it out.
func encodeNPY(t *testing.T, major byte, descr string, fortran bool, shape string, values []float64) []byte {
	t.Helper()

	order := "False"
	if fortran {
		order = "True"
	}
	header := fmt.Sprintf("{'descr': '%s', 'fortran_order': %s, 'shape': %s, }", descr, order, shape)

	prefix := 10
	if major >= 2 {
		prefix = 12
	}
	pad := 64 - (prefix+len(header)+1)%64
	header += string(bytes.Repeat([]byte(" "), pad%64)) + "\n"

	var buf bytes.Buffer
	buf.Write(npyMagic)
	buf.WriteByte(major)
	buf.WriteByte(0)
	if major >= 2 {
		_ = binary.Write(&buf, binary.LittleEndian, uint32(len(header)))
	} else {
		_ = binary.Write(&buf, binary.LittleEndian, uint16(len(header)))
	}
	buf.WriteString(header)

	for _, v := range values {
		switch descr {
		case "<f8":
			_ = binary.Write(&buf, binary.LittleEndian, math.Float64bits(v))
		default:
			_ = binary.Write(&buf, binary.LittleEndian, math.Float32bits(float32(v)))
		}
	}
	return buf.Bytes()
}

func TestParseNPY(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}

	tests := []struct {
		name    string
		major   byte
		descr   string
		wantRow []float32
	}{
		{"v1 float32", 1, "<f4", []float32{4, 5, 6}},
		{"v2 float32", 2, "<f4", []float32{4, 5, 6}},
		{"v3 float64", 3, "<f8", []float32{4, 5, 6}},
		{"v1 float64", 1, "<f8", []float32{4, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := ParseNPY(encodeNPY(t, tt.major, tt.descr, false, "(2, 3)", values))
			if err != nil {
				t.Fatalf("ParseNPY: %v", err)
			}
			if m.Rows() != 2 || m.Cols() != 3 {
				t.Fatalf("shape = (%d, %d), want (2, 3)", m.Rows(), m.Cols())
			}
			row := m.Row(1)
			for i := range tt.wantRow {
				if row[i] != tt.wantRow[i] {
					t.Errorf("row[%d] = %v, want %v", i, row[i], tt.wantRow[i])
				}
			}
		})
	}
}

func TestParseNPY_Rejects(t *testing.T) {
	six := []float64{1, 2, 3, 4, 5, 6}

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"not npy", []byte("PK\x03\x04 zip file"), ErrInvalidMatrix},
		{"empty", nil, ErrInvalidMatrix},
		{"version 4", encodeNPYVersion(t, 4), ErrUnsupportedFormat},
		{"one dimension", encodeNPY(t, 1, "<f4", false, "(6,)", six), ErrInvalidMatrix},
		{"three dimensions", encodeNPY(t, 1, "<f4", false, "(1, 2, 3)", six), ErrInvalidMatrix},
		{"big endian", encodeNPY(t, 1, ">f4", false, "(2, 3)", six), ErrUnsupportedFormat},
		{"integer dtype", encodeNPY(t, 1, "<i8", false, "(2, 3)", six), ErrUnsupportedFormat},
		{"fortran order", encodeNPY(t, 1, "<f4", true, "(2, 3)", six), ErrUnsupportedFormat},
		{"short body", encodeNPY(t, 1, "<f4", false, "(2, 3)", six[:5]), ErrInvalidMatrix},
		{"long body", encodeNPY(t, 1, "<f4", false, "(1, 3)", six), ErrInvalidMatrix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseNPY(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func encodeNPYVersion(t *testing.T, major byte) []byte {
	t.Helper()
	data := encodeNPY(t, 1, "<f4", false, "(1, 1)", []float64{1})
	data[len(npyMagic)] = major
	return data
}

func TestParseNPY_EmptyMatrix(t *testing.T) {
	m, err := ParseNPY(encodeNPY(t, 1, "<f4", false, "(0, 4)", nil))
	if err != nil {
		t.Fatalf("ParseNPY: %v", err)
	}
	if m.Rows() != 0 || m.Cols() != 4 {
		t.Errorf("shape = (%d, %d), want (0, 4)", m.Rows(), m.Cols())
	}
}

func TestMatrixRow_IsCapacityLimited(t *testing.T) {
	m, err := NewMatrix(2, 2, []float32{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("NewMatrix: %v", err)
	}
	row := m.Row(0)
	_ = append(row, 99)
	if got := m.Row(1)[0]; got != 3 {
		t.Errorf("append to row 0 overwrote row 1: got %v", got)
	}
}

func TestNewMatrix_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		n          int
	}{
		{"wrong length", 2, 2, 3},
		{"negative rows", -1, 2, 0},
		{"rows without columns", 3, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMatrix(tt.rows, tt.cols, make([]float32, tt.n)); !errors.Is(err, ErrInvalidMatrix) {
				t.Errorf("err = %v, want ErrInvalidMatrix", err)
			}
		})
	}
}
