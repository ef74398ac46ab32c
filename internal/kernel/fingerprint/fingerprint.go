// Package fingerprint pins the canonical serialization and hash used for
// derivation identities and command idempotency keys.
//
// Changing either algorithm changes every identity computed so far. Any such
// change must ship under a new Scheme value.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Scheme identifies the serialization + hash pair implemented here.
const Scheme = "fp-v1"

// ErrUnsupportedValue is returned for values with no canonical form.
var ErrUnsupportedValue = errors.New("value has no canonical form")

// StableSerialize renders v as compact JSON with sorted object keys and
// canonical numbers, so 1000, 1000.0 and decimal "1000.00" serialize alike.
func StableSerialize(v any) (string, error) {
	var b strings.Builder
	if err := write(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Hash returns the lower-case hex SHA-256 digest of s.
func Hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// HashValue serializes v canonically and hashes the result.
func HashValue(v any) (string, error) {
	s, err := StableSerialize(v)
	if err != nil {
		return "", err
	}
	return Hash(s), nil
}

// IdempotencyKey derives a stable key for a command from its identity fields.
func IdempotencyKey(commandType string, identity map[string]any) (string, error) {
	fields := make(map[string]any, len(identity)+1)
	for k, v := range identity {
		fields[k] = v
	}
	fields["commandType"] = commandType

	h, err := HashValue(fields)
	if err != nil {
		return "", fmt.Errorf("idempotency key for %s: %w", commandType, err)
	}
	return commandType + ":" + h, nil
}

func write(b *strings.Builder, v any) error {
	switch t := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		b.WriteString(strconv.FormatBool(t))
	case string:
		writeString(b, t)
	case int:
		b.WriteString(strconv.FormatInt(int64(t), 10))
	case int32:
		b.WriteString(strconv.FormatInt(int64(t), 10))
	case int64:
		b.WriteString(strconv.FormatInt(t, 10))
	case uint32:
		b.WriteString(strconv.FormatUint(uint64(t), 10))
	case uint64:
		b.WriteString(strconv.FormatUint(t, 10))
	case float32:
		return writeFloat(b, float64(t))
	case float64:
		return writeFloat(b, t)
	case decimal.Decimal:
		b.WriteString(canonicalDecimal(t))
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return fmt.Errorf("%w: json number %q", ErrUnsupportedValue, t.String())
		}
		b.WriteString(canonicalDecimal(d))
	case map[string]any:
		return writeMap(b, t)
	case []any:
		return writeSlice(b, reflect.ValueOf(t))
	default:
		return writeReflect(b, v)
	}
	return nil
}

func writeFloat(b *strings.Builder, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %v", ErrUnsupportedValue, f)
	}
	b.WriteString(canonicalDecimal(decimal.NewFromFloat(f)))
	return nil
}

// canonicalDecimal prints without exponent and without trailing fractional zeros.
func canonicalDecimal(d decimal.Decimal) string {
	if d.IsZero() {
		return "0"
	}
	return d.String()
}

func writeString(b *strings.Builder, s string) {
	// json.Marshal of a string cannot fail.
	raw, _ := json.Marshal(s)
	b.Write(raw)
}

func writeMap(b *strings.Builder, m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		writeString(b, k)
		b.WriteByte(':')
		if err := write(b, m[k]); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
	}
	b.WriteByte('}')
	return nil
}

func writeSlice(b *strings.Builder, rv reflect.Value) error {
	b.WriteByte('[')
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := write(b, rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("index %d: %w", i, err)
		}
	}
	b.WriteByte(']')
	return nil
}

// writeReflect handles typed slices and string-keyed maps, e.g. []string or
// map[string]int64, plus named string and integer types.
func writeReflect(b *strings.Builder, v any) error {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return writeSlice(b, rv)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("%w: map key type %s", ErrUnsupportedValue, rv.Type().Key())
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return writeMap(b, m)
	case reflect.String:
		writeString(b, rv.String())
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(strconv.FormatInt(rv.Int(), 10))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		b.WriteString(strconv.FormatUint(rv.Uint(), 10))
		return nil
	case reflect.Pointer:
		if rv.IsNil() {
			b.WriteString("null")
			return nil
		}
		return write(b, rv.Elem().Interface())
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}
