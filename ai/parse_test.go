package ai

import "testing"

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  ```json\n[1,2]\n```  ", `[1,2]`},
		{"plain text", "plain text"},
	}
	for _, tc := range cases {
		if got := StripCodeFence(tc.in); got != tc.expected {
			t.Fatalf("StripCodeFence(%q) = %q, want %q", tc.in, got, tc.expected)
		}
	}
}

func TestDecodeJSON_HandlesFencedOutput(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	out, err := decodeJSON[payload]("```json\n{\"name\":\"daiwa\"}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Name != "daiwa" {
		t.Fatalf("expected daiwa, got %q", out.Name)
	}

	if _, err := decodeJSON[payload]("not json at all"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDedupeSources_KeepsFirstSeenOrder(t *testing.T) {
	in := []Source{
		{URI: "https://a.example", Title: "A"},
		{URI: "https://b.example", Title: "B"},
		{URI: "https://a.example", Title: "A duplicate"},
		{URI: "https://c.example", Title: "C"},
		{URI: "https://b.example", Title: "B duplicate"},
	}
	out := DedupeSources(in)
	if len(out) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(out))
	}
	for i, uri := range []string{"https://a.example", "https://b.example", "https://c.example"} {
		if out[i].URI != uri {
			t.Fatalf("position %d: expected %s, got %s", i, uri, out[i].URI)
		}
	}
	// First occurrence wins, including its title.
	if out[0].Title != "A" {
		t.Fatalf("expected first-seen title, got %q", out[0].Title)
	}
}
