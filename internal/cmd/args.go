package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fpdb/sqlt"
)

// decodeArgs parses a JSON array of query arguments. Integral numbers become
// int64, other numbers float64, and nested arrays []any. A top-level string
// equal to skipToken becomes the skip sentinel. Empty input means no
// arguments.
func decodeArgs(src string, skipToken string) ([]any, error) {
	if strings.TrimSpace(src) == "" {
		return nil, nil
	}

	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()

	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode args: expected a JSON array: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("decode args: unexpected data after the JSON array")
	}

	out := make([]any, len(raw))
	for i, val := range raw {
		if str, ok := val.(string); ok && skipToken != "" && str == skipToken {
			out[i] = sqlt.Skip()
			continue
		}
		arg, err := convertArg(val)
		if err != nil {
			return nil, fmt.Errorf("decode args: argument %d: %w", i, err)
		}
		out[i] = arg
	}
	return out, nil
}

func convertArg(val any) (any, error) {
	switch val := val.(type) {
	case json.Number:
		if !strings.ContainsAny(string(val), ".eE") {
			if num, err := val.Int64(); err == nil {
				return num, nil
			}
		}
		return val.Float64()

	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			arg, err := convertArg(elem)
			if err != nil {
				return nil, err
			}
			out[i] = arg
		}
		return out, nil

	default:
		return val, nil
	}
}
