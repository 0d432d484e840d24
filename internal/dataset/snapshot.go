// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package dataset

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sobershot/internal/models"
)

// SnapshotFormat selects how snapshot bytes are framed.
type SnapshotFormat int

const (
	// FormatJSON is a single JSON array of drink objects.
	FormatJSON SnapshotFormat = iota
	// FormatJSONLines is one drink object per line.
	FormatJSONLines
)

// maxSnapshotLine bounds a single JSON Lines record.
const maxSnapshotLine = 16 << 20

// Field aliases written by the artifact builder alongside the API names.
var (
	ingredientKeys = []string{"ingredients", "ingredient_dict"}
	imageKeys      = []string{"image", "Image"}
)

// FormatForPath picks the snapshot format from the file extension.
func FormatForPath(path string) (SnapshotFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".jsonl", ".ndjson":
		return FormatJSONLines, nil
	default:
		return 0, fmt.Errorf("%w: snapshot extension %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadSnapshot reads the drink snapshot at path.
func LoadSnapshot(path string) ([]models.DrinkRecord, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	return DecodeSnapshot(f, format)
}

// DecodeSnapshot decodes snapshot records from r in the given format.
func DecodeSnapshot(r io.Reader, format SnapshotFormat) ([]models.DrinkRecord, error) {
	switch format {
	case FormatJSON:
		var raw []map[string]json.RawMessage
		if err := json.NewDecoder(r).Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
		}
		records := make([]models.DrinkRecord, len(raw))
		for i := range raw {
			rec, err := decodeRecord(raw[i], i)
			if err != nil {
				return nil, err
			}
			records[i] = rec
		}
		return records, nil

	case FormatJSONLines:
		var records []models.DrinkRecord
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxSnapshotLine)
		line := 0
		for sc.Scan() {
			line++
			b := bytes.TrimSpace(sc.Bytes())
			if len(b) == 0 {
				continue
			}
			var raw map[string]json.RawMessage
			if err := json.Unmarshal(b, &raw); err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidSnapshot, line, err)
			}
			rec, err := decodeRecord(raw, len(records))
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read snapshot: %w", err)
		}
		return records, nil

	default:
		return nil, fmt.Errorf("%w: snapshot format %d", ErrUnsupportedFormat, format)
	}
}

// decodeRecord maps one snapshot object to a DrinkRecord. Missing fields
// and JSON nulls become zero values.
func decodeRecord(raw map[string]json.RawMessage, pos int) (models.DrinkRecord, error) {
	var rec models.DrinkRecord
	var err error

	fields := []struct {
		dst  *string
		keys []string
	}{
		{&rec.Name, []string{"name"}},
		{&rec.Category, []string{"category"}},
		{&rec.Glass, []string{"glass"}},
		{&rec.Instructions, []string{"instructions"}},
		{&rec.Image, imageKeys},
	}
	for _, f := range fields {
		if *f.dst, err = stringField(raw, f.keys); err != nil {
			return rec, fmt.Errorf("%w: record %d: %w", ErrInvalidSnapshot, pos, err)
		}
	}

	if rec.Ingredients, err = ingredientsField(raw); err != nil {
		return rec, fmt.Errorf("%w: record %d: %w", ErrInvalidSnapshot, pos, err)
	}

	if msg, ok := raw["row"]; ok && !isNull(msg) {
		var row int
		if err := json.Unmarshal(msg, &row); err != nil {
			return rec, fmt.Errorf("%w: record %d: row: %w", ErrInvalidSnapshot, pos, err)
		}
		if row != pos {
			return rec, fmt.Errorf("%w: record at position %d has row %d", ErrMisaligned, pos, row)
		}
	}

	return rec, nil
}

func lookup(raw map[string]json.RawMessage, keys []string) (json.RawMessage, string, bool) {
	for _, k := range keys {
		if msg, ok := raw[k]; ok && !isNull(msg) {
			return msg, k, true
		}
	}
	return nil, "", false
}

func stringField(raw map[string]json.RawMessage, keys []string) (string, error) {
	msg, key, ok := lookup(raw, keys)
	if !ok {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(msg, &s); err != nil {
		return "", fmt.Errorf("%s: %w", key, err)
	}
	return s, nil
}

func ingredientsField(raw map[string]json.RawMessage) (map[string]string, error) {
	out := map[string]string{}
	msg, key, ok := lookup(raw, ingredientKeys)
	if !ok {
		return out, nil
	}
	var m map[string]*string
	if err := json.Unmarshal(msg, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	for k, v := range m {
		if v != nil {
			out[k] = *v
		} else {
			out[k] = ""
		}
	}
	return out, nil
}

func isNull(msg json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(msg), []byte("null"))
}
