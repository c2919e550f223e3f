// Package key parses a seriesfile series key: a flat byte string encoding
// an organization id, a bucket id, a measurement name, an ordered tag set,
// and a field name behind a handful of sentinel bytes (spec §4.1).
package key

import (
	"strings"
	"unicode/utf8"

	"github.com/arloliu/seriesfile/errs"
	"github.com/arloliu/seriesfile/internal/hash"
)

const (
	idPairSize   = 16 // org id (8) + bucket id (8)
	framingSize  = 3  // 0x2C 0x00 0x3D before the measurement
	headerSize   = idPairSize + framingSize
	fieldDelimLen = 4
)

const (
	comma      = 0x2C
	equals     = 0x3D
	fieldMarker = 0xFF
)

// Pair is one (tag name, tag value) pair, in file order.
type Pair struct {
	Name  string
	Value string
}

// ParsedKey is the structured form of a raw series key.
type ParsedKey struct {
	Measurement string
	Tags        []Pair
	Field       string
}

// Parse extracts a ParsedKey from a raw series key.
//
// Layout (spec §4.1):
//
//	[8B org_id][8B bucket_id][0x2C][0x00][0x3D] MEASUREMENT [0x2C] TAG_PAIRS [0x2C][0xFF][0x3D] FIELD_BLOB
//
// TAG_PAIRS is (tag_name 0x3D tag_value) pairs separated by 0x2C. The final
// pair's "value" is FIELD_BLOB, which repeats the field name twice around a
// fixed 4-byte separator; Parse returns the first copy and drops that pair
// from the returned tag set.
func Parse(raw []byte) (ParsedKey, error) {
	if len(raw) < headerSize+1 {
		return ParsedKey{}, errs.ErrKeyTooShort
	}

	body := raw[headerSize:]

	measEnd := indexByte(body, comma)
	if measEnd < 0 {
		return ParsedKey{}, errs.Wrap(errs.KindDecode, errs.ErrKeyTooShort, "no comma after measurement")
	}

	measurement := body[:measEnd]
	if !utf8.Valid(measurement) {
		return ParsedKey{}, errs.ErrInvalidUTF8
	}

	pairs, err := scanTagPairs(body[measEnd+1:])
	if err != nil {
		return ParsedKey{}, err
	}

	if len(pairs) == 0 {
		return ParsedKey{}, errs.Wrap(errs.KindDecode, errs.ErrKeyTooShort, "no field pair found")
	}

	fieldPair := pairs[len(pairs)-1]
	field, err := splitFieldBlob(fieldPair.Value)
	if err != nil {
		return ParsedKey{}, err
	}

	return ParsedKey{
		Measurement: string(measurement),
		Tags:        pairs[:len(pairs)-1],
		Field:       field,
	}, nil
}

// scanTagPairs walks "name=value,name=value,...,<fieldMarker>=FIELD_BLOB",
// accumulating bytes into alternating name/value strings. 0x3D transitions
// from reading a name to reading a value; 0x2C emits the current pair and
// starts a new name. Bytes are appended one-by-one (Latin-1-to-text); see
// spec §9 for why this is not strict UTF-8 decoding of tag text.
func scanTagPairs(data []byte) ([]Pair, error) {
	var pairs []Pair
	var name, value strings.Builder
	inValue := false

	flush := func() {
		pairs = append(pairs, Pair{Name: name.String(), Value: value.String()})
		name.Reset()
		value.Reset()
		inValue = false
	}

	for _, b := range data {
		switch {
		case b == equals && !inValue:
			inValue = true
		case b == comma:
			flush()
		case inValue:
			value.WriteByte(b)
		default:
			if b == fieldMarker {
				// The sentinel byte marking the field-name tag; its text
				// value ("name") is irrelevant, only the 0x3D that follows
				// transitions into the FIELD_BLOB value.
				continue
			}
			name.WriteByte(b)
		}
	}
	flush()

	return pairs, nil
}

// splitFieldBlob splits "<field_name><4-byte delimiter><field_name>" and
// returns the first copy of the field name.
func splitFieldBlob(blob string) (string, error) {
	if len(blob) < fieldDelimLen {
		return "", errs.ErrFieldBlobShort
	}

	fieldLen := (len(blob) - fieldDelimLen) / 2

	return blob[:fieldLen], nil
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}

	return -1
}

// Hash returns an xxHash64-based identity for the parsed key, computed over
// its canonical text form (measurement, then each tag name/value pair in
// file order, then field). It lets callers compare or deduplicate series
// without retaining the raw key bytes, mirroring the teacher's metric-name
// hashing (internal/hash.ID used by mebo's MetricID helper).
func (p ParsedKey) Hash() uint64 {
	var sb strings.Builder
	sb.WriteString(p.Measurement)
	for _, tag := range p.Tags {
		sb.WriteByte(0)
		sb.WriteString(tag.Name)
		sb.WriteByte(0)
		sb.WriteString(tag.Value)
	}
	sb.WriteByte(0)
	sb.WriteString(p.Field)

	return hash.ID(sb.String())
}
