package request

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// Domain prefix for content-addressed request identity. The version suffix
// enables future algorithm migration without colliding with old hashes.
const hashDomain = "waferq/request/v1"

// CanonicalHash computes a content-addressed identity for a request.
//
// Two requests that describe the same selections hash identically regardless
// of how they were encoded on the way in (YAML, JSON, history record). The
// history store uses this hash to deduplicate repeated generate actions.
//
// Format: SHA256(domain + 0x00 + canonicalJSON). The null separator prevents
// domain/data boundary ambiguity.
func CanonicalHash(req Request) (string, error) {
	canonical, err := marshalCanonical(canonicalMap(req))
	if err != nil {
		return "", fmt.Errorf("canonical hash: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(hashDomain))
	h.Write([]byte{0x00})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// canonicalMap flattens a request into primitives for canonical marshaling.
// Empty optional sections are omitted so that "absent" and "empty" hash the
// same way.
func canonicalMap(req Request) map[string]any {
	m := map[string]any{
		"columns": toAnySlice(req.Columns),
	}
	if len(req.Filters) > 0 {
		rows := make([]any, len(req.Filters))
		for i, f := range req.Filters {
			rows[i] = map[string]any{"name": f.Name, "op": f.Op, "value": f.Value, "time": f.Time}
		}
		m["filters"] = rows
	}
	if len(req.CustomBins) > 0 {
		rows := make([]any, len(req.CustomBins))
		for i, b := range req.CustomBins {
			rows[i] = map[string]any{"bin": b.Bin, "count": b.Count, "percent": b.Percent}
		}
		m["custom_bins"] = rows
	}
	if req.AutoRange != nil {
		m["auto_range"] = map[string]any{
			"start":   req.AutoRange.Start,
			"end":     req.AutoRange.End,
			"count":   req.AutoRange.Count,
			"percent": req.AutoRange.Percent,
		}
	}
	if len(req.Aggregates) > 0 {
		rows := make([]any, len(req.Aggregates))
		for i, a := range req.Aggregates {
			rows[i] = map[string]any{"func": a.Func, "target": a.Target, "alias": a.Alias}
		}
		m["aggregates"] = rows
	}
	if len(req.OrderBy) > 0 {
		rows := make([]any, len(req.OrderBy))
		for i, o := range req.OrderBy {
			rows[i] = map[string]any{"column": o.Column, "direction": o.Direction}
		}
		m["order_by"] = rows
	}
	if req.Distinct {
		m["distinct"] = true
	}
	if req.GoodBins != "" {
		m["good_bins"] = req.GoodBins
	}
	return m
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// marshalCanonical produces canonical JSON for hashing: object keys sorted,
// strings NFC normalized, no HTML escaping, no floats. Only the primitive
// shapes canonicalMap emits are supported.
func marshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case string:
		return marshalCanonicalString(val)
	case int:
		return []byte(strconv.Itoa(val)), nil
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case []any:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := marshalCanonical(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := marshalCanonicalString(k)
			if err != nil {
				return nil, fmt.Errorf("object key %q: %w", k, err)
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := marshalCanonical(val[k])
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

// marshalCanonicalString produces a canonical JSON string: NFC normalized,
// with HTML escaping disabled (< > & stay literal).
func marshalCanonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder adds a trailing newline, remove it.
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}
	return result, nil
}
