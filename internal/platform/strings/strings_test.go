package strings

import (
	"testing"

	kit "solna/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	if got := IfEmpty([]int{1, 2, 3}, []int{9}); len(got) != 3 || got[0] != 1 {
		t.Fatalf("IfEmpty returned wrong slice: %#v", got)
	}
	if got := IfEmpty(nil, []string{"x"}); len(got) != 1 || got[0] != "x" {
		t.Fatalf("IfEmpty did not return default: %#v", got)
	}
}

func TestMustString(t *testing.T) {
	t.Parallel()

	if MustString("files", "name") != "files" {
		t.Fatalf("MustString changed input")
	}
	kit.MustPanic(t, func() { MustString("  ", "module name") })
}

func TestMustPrefix(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"meta":     "/meta",
		"/meta/":   "/meta",
		" //a/b/ ": "/a/b",
		"/":        "",
		"":         "",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Errorf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMaskURL(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"postgres://solna:secret@db:5432/solna?sslmode=disable": "postgres://solna:xxxxx@db:5432/solna?sslmode=disable",
		"postgres://db:5432/solna":                              "postgres://db:5432/solna",
		"":                                                      "",
		"not a url":                                             "***",
	}
	for in, want := range cases {
		if got := MaskURL(in); got != want {
			t.Errorf("MaskURL(%q) = %q, want %q", in, got, want)
		}
	}
}
