package groceryapi

import (
	"testing"
)

func TestExtractResult(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "array result",
			body:     `{"result":[{"id":1,"name":"Rice"}]}`,
			expected: `[{"id":1,"name":"Rice"}]`,
		},
		{
			name:     "string encoded result",
			body:     `{"result":"[{\"id\":1}]"}`,
			expected: `[{"id":1}]`,
		},
		{
			name:     "plain string",
			body:     `{"result":"hello"}`,
			expected: `"hello"`,
		},
		{
			name:     "bare array passthrough",
			body:     ` [1,2] `,
			expected: `[1,2]`,
		},
		{
			name:     "object without result",
			body:     `{"items":[]}`,
			expected: `{"items":[]}`,
		},
		{
			name:     "empty body",
			body:     ``,
			expected: ``,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractResult([]byte(tc.body))
			if err != nil {
				t.Fatalf("ExtractResult returned error: %v", err)
			}
			if string(got) != tc.expected {
				t.Fatalf("ExtractResult mismatch: expected %q, got %q", tc.expected, string(got))
			}
		})
	}
}

type row struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestDecodeList(t *testing.T) {
	rows, err := DecodeList[row]([]byte(`{"result":[{"id":1,"name":"Rice"},{"id":2,"name":"Milk"}]}`))
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if len(rows) != 2 || rows[1].Name != "Milk" {
		t.Fatalf("unexpected rows: %#v", rows)
	}

	for _, body := range []string{``, `null`, `{"result":null}`, `{"result":[]}`} {
		rows, err := DecodeList[row]([]byte(body))
		if err != nil {
			t.Fatalf("DecodeList(%q): %v", body, err)
		}
		if rows == nil || len(rows) != 0 {
			t.Fatalf("DecodeList(%q) expected empty slice, got %#v", body, rows)
		}
	}

	if _, err := DecodeList[row]([]byte(`{"result":{"id":1}}`)); err == nil {
		t.Fatalf("expected error for non-array result")
	}
	if _, err := DecodeList[row]([]byte(`{"result":[{"id":"x"}]}`)); err == nil {
		t.Fatalf("expected error for malformed row")
	}
}
