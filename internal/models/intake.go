package models

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// Payload is an inbound intake form as decoded from JSON, with no fixed schema.
type Payload map[string]interface{}

// Narrow keeps the keys of payload that name a writable column present in
// live, and converts them into a record. It returns the record and the
// columns that were set, in table order. The id column is never writable.
func Narrow(payload Payload, live map[string]bool) (*PatientRecord, []string, error) {
	rec := &PatientRecord{}
	var cols []string

	for _, c := range textColumns {
		raw, ok := payload[c.name]
		if !ok || !live[c.name] {
			continue
		}
		text, isNull, err := toText(raw)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "field %q", c.name)
		}
		if !isNull {
			*c.field(rec) = &text
		}
		cols = append(cols, c.name)
	}

	if raw, ok := payload[ColFavorite]; ok && live[ColFavorite] {
		fav, err := ParseFavorite(raw)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "field %q", ColFavorite)
		}
		rec.Favorite = fav
		cols = append(cols, ColFavorite)
	}

	return rec, cols, nil
}

// toText converts a decoded JSON value to column text. Objects and arrays are
// stored as their JSON encoding.
func toText(v interface{}) (string, bool, error) {
	switch t := v.(type) {
	case nil:
		return "", true, nil
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(t)
		if err != nil {
			return "", false, err
		}
		return string(b), false, nil
	}
	s, err := cast.ToStringE(v)
	return s, false, err
}

// ParseFavorite reads a boolean-ish favorite flag: JSON booleans, numbers
// (non-zero is true) and strings such as "true", "0" or "1".
func ParseFavorite(v interface{}) (int, error) {
	if v == nil {
		return 0, nil
	}
	if f, ok := v.(float64); ok {
		return boolToInt(f != 0), nil
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return 0, errors.Errorf("not a boolean: %v", v)
	}
	return boolToInt(b), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func uintToString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func intToString(v int) string {
	return strconv.Itoa(v)
}
