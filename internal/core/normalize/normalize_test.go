package normalize

import (
	"sync"
	"testing"
)

func TestTerm_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "empty", in: "", out: ""},
		{name: "identity", in: "Widget Pro", out: "Widget Pro"},
		{name: "trim edges", in: "  abc \t", out: "abc"},
		{name: "keeps inner runs", in: "foo  bar", out: "foo  bar"},
		{name: "keeps inner line breaks", in: " a\n\tb ", out: "a\n\tb"},
		{name: "keeps case", in: "ABC", out: "ABC"},
		{name: "drops invalid utf8", in: string([]byte{0xff, 'f', 'o', 'o', 0x80}), out: "foo"},
		{name: "drops controls", in: "a\x00b\x7fc\u0085d", out: "abcd"},
		{name: "only whitespace", in: " \n ", out: ""},
	}
	for _, tt := range tests {
		if got := Term(tt.in); got != tt.out {
			t.Fatalf("%s: Term(%q) = %q, want %q", tt.name, tt.in, got, tt.out)
		}
	}
}

func TestSanitize_FastPathReturnsInput(t *testing.T) {
	in := "plain text\twith tab\nand newline"
	if got := Sanitize(in); got != in {
		t.Fatalf("Sanitize changed clean input: %q", got)
	}
}

func TestLower(t *testing.T) {
	if got := Lower("ÄbC"); got != "äbc" {
		t.Fatalf("Lower = %q", got)
	}
	if got := Lower("STRASSE"); got != "strasse" {
		t.Fatalf("Lower = %q", got)
	}
	if ContainsFold("Straße", "STRASSE") {
		t.Fatalf("ß must not fold to ss, postgres lower() keeps it")
	}
	if !ContainsFold("STRAßE", "straße") {
		t.Fatalf("ContainsFold should ignore case on ß words")
	}
	if !ContainsFold("Hello World", "WORLD") {
		t.Fatalf("ContainsFold should ignore case")
	}
	if ContainsFold("Hello", "bye") {
		t.Fatalf("ContainsFold false positive")
	}
	if !ContainsFold("anything", "") {
		t.Fatalf("empty needle should match")
	}
}

func TestLower_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if Lower("MiXeD") != "mixed" {
					t.Errorf("lower mismatch")
					return
				}
			}
		}()
	}
	wg.Wait()
}
