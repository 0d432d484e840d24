// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package dataset

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var npyMagic = []byte("\x93NUMPY")

var (
	npyDescrRe   = regexp.MustCompile(`['"]descr['"]\s*:\s*['"]([^'"]*)['"]`)
	npyFortranRe = regexp.MustCompile(`['"]fortran_order['"]\s*:\s*(True|False)`)
	npyShapeRe   = regexp.MustCompile(`['"]shape['"]\s*:\s*\(([^)]*)\)`)
)

// npyHeader is the parsed header dictionary of a .npy file.
type npyHeader struct {
	descr        string
	fortranOrder bool
	shape        []int
}

// ParseNPY decodes a NumPy .npy file holding a 2-D little-endian float32
// or float64 array in C order. float64 values are narrowed to float32.
func ParseNPY(data []byte) (*Matrix, error) {
	if len(data) < len(npyMagic)+2 || !bytes.Equal(data[:len(npyMagic)], npyMagic) {
		return nil, fmt.Errorf("%w: missing npy magic", ErrInvalidMatrix)
	}

	major := data[len(npyMagic)]
	pos := len(npyMagic) + 2

	var headerLen int
	switch major {
	case 1:
		if len(data) < pos+2 {
			return nil, fmt.Errorf("%w: truncated header length", ErrInvalidMatrix)
		}
		headerLen = int(binary.LittleEndian.Uint16(data[pos:]))
		pos += 2
	case 2, 3:
		if len(data) < pos+4 {
			return nil, fmt.Errorf("%w: truncated header length", ErrInvalidMatrix)
		}
		headerLen = int(binary.LittleEndian.Uint32(data[pos:]))
		pos += 4
	default:
		return nil, fmt.Errorf("%w: npy format version %d", ErrUnsupportedFormat, major)
	}

	if headerLen < 0 || len(data) < pos+headerLen {
		return nil, fmt.Errorf("%w: truncated header", ErrInvalidMatrix)
	}

	hdr, err := parseNPYHeader(string(data[pos : pos+headerLen]))
	if err != nil {
		return nil, err
	}
	body := data[pos+headerLen:]

	if hdr.fortranOrder {
		return nil, fmt.Errorf("%w: fortran-ordered arrays", ErrUnsupportedFormat)
	}
	if len(hdr.shape) != 2 {
		return nil, fmt.Errorf("%w: expected a 2-D array, got %d dimensions", ErrInvalidMatrix, len(hdr.shape))
	}
	rows, cols := hdr.shape[0], hdr.shape[1]

	var itemSize int
	switch hdr.descr {
	case "<f4":
		itemSize = 4
	case "<f8":
		itemSize = 8
	default:
		return nil, fmt.Errorf("%w: dtype %q", ErrUnsupportedFormat, hdr.descr)
	}

	if rows > 0 && cols > math.MaxInt/rows/itemSize {
		return nil, fmt.Errorf("%w: shape (%d, %d) too large", ErrInvalidMatrix, rows, cols)
	}
	n := rows * cols
	if len(body) != n*itemSize {
		return nil, fmt.Errorf("%w: %d data bytes for shape (%d, %d) of %s",
			ErrInvalidMatrix, len(body), rows, cols, hdr.descr)
	}

	values := make([]float32, n)
	if itemSize == 4 {
		for i := range values {
			values[i] = math.Float32frombits(binary.LittleEndian.Uint32(body[i*4:]))
		}
	} else {
		for i := range values {
			values[i] = float32(math.Float64frombits(binary.LittleEndian.Uint64(body[i*8:])))
		}
	}

	return NewMatrix(rows, cols, values)
}

func parseNPYHeader(s string) (npyHeader, error) {
	var hdr npyHeader

	m := npyDescrRe.FindStringSubmatch(s)
	if m == nil {
		return hdr, fmt.Errorf("%w: header has no descr", ErrInvalidMatrix)
	}
	hdr.descr = m[1]

	m = npyFortranRe.FindStringSubmatch(s)
	if m == nil {
		return hdr, fmt.Errorf("%w: header has no fortran_order", ErrInvalidMatrix)
	}
	hdr.fortranOrder = m[1] == "True"

	m = npyShapeRe.FindStringSubmatch(s)
	if m == nil {
		return hdr, fmt.Errorf("%w: header has no shape", ErrInvalidMatrix)
	}
	for _, part := range strings.Split(m[1], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		dim, err := strconv.Atoi(strings.TrimSuffix(part, "L"))
		if err != nil || dim < 0 {
			return hdr, fmt.Errorf("%w: bad shape dimension %q", ErrInvalidMatrix, part)
		}
		hdr.shape = append(hdr.shape, dim)
	}
	return hdr, nil
}
