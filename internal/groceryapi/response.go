// Package groceryapi holds the wire conventions shared by the grocery backend
// endpoints and the local seed files.
package groceryapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Endpoint paths, relative to the backend base URL.
const (
	PathList   = "getdata"
	PathCreate = "postdata"
	PathUpdate = "update"
	PathDelete = "delete"
)

// ResultEnvelope is the body shape returned by the list endpoint.
type ResultEnvelope[T any] struct {
	Result T `json:"result"`
}

// ExtractResult returns the JSON stored under the "result" field. Bodies
// without such a field are returned unchanged. A "result" holding a JSON
// encoded string is decoded one level so callers always receive the document.
func ExtractResult(body []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if trimmed[0] != '{' || json.Unmarshal(trimmed, &envelope) != nil || envelope.Result == nil {
		return append([]byte(nil), trimmed...), nil
	}

	var asString string
	if err := json.Unmarshal(envelope.Result, &asString); err == nil {
		if unquoted, err := strconv.Unquote(asString); err == nil {
			asString = unquoted
		}
		var inner json.RawMessage
		if err := json.Unmarshal([]byte(asString), &inner); err == nil {
			return append([]byte(nil), inner...), nil
		}
	}
	return append([]byte(nil), envelope.Result...), nil
}

// DecodeList decodes the "result" array of a list response into out. A missing
// or null result yields an empty slice rather than an error.
func DecodeList[T any](body []byte) ([]T, error) {
	payload, err := ExtractResult(body)
	if err != nil {
		return nil, err
	}
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return []T{}, nil
	}
	if payload[0] != '[' {
		return nil, fmt.Errorf("groceryapi: expected result array, got %.40q", payload)
	}
	var out []T
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("groceryapi: decode result: %w", err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
