package version

import (
	"testing"

	kit "solna/internal/platform/testkit"
)

func TestInfo_Defaults(t *testing.T) {
	bi := Info()
	if bi.Service != "solna-api" || bi.Version != "dev" {
		t.Fatalf("Info = %+v", bi)
	}
	if Short() != "dev" {
		t.Fatalf("Short() = %q", Short())
	}
}

func TestShort_WithCommit(t *testing.T) {
	kit.Swap(t, &version, "v1.2.3")
	kit.Swap(t, &commit, "0123456789abcdef")
	if got := Short(); got != "v1.2.3+0123456" {
		t.Fatalf("Short() = %q", got)
	}
}
