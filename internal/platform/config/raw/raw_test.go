package raw

import "testing"

func TestConfGet(t *testing.T) {
	t.Setenv("LOG_LEVEL", " info ")

	log := New().Prefix("LOG_")
	if got := log.Get("LEVEL", "debug"); got != "info" {
		t.Fatalf("Get(LEVEL) = %q, want info", got)
	}
	if got := log.Get("FORMAT", "console"); got != "console" {
		t.Fatalf("Get(FORMAT) default = %q", got)
	}
}

func TestConfGetBool(t *testing.T) {
	c := New().Prefix("B_")
	for k, v := range map[string]string{"T1": "true", "T2": "1", "T3": "YES", "T4": " on ", "F1": "false", "F2": "0", "F3": "nah"} {
		t.Setenv("B_"+k, v)
	}

	cases := []struct {
		key  string
		def  bool
		want bool
	}{
		{"T1", false, true},
		{"T2", false, true},
		{"T3", false, true},
		{"T4", false, true},
		{"F1", true, false},
		{"F2", true, false},
		{"F3", true, false},
		{"UNSET", true, true},
	}
	for _, tc := range cases {
		if got := c.GetBool(tc.key, tc.def); got != tc.want {
			t.Fatalf("GetBool(%s) = %v, want %v", tc.key, got, tc.want)
		}
	}
}

func TestConfGetInt(t *testing.T) {
	c := New().Prefix("I_")
	t.Setenv("I_OK", " 42 ")
	t.Setenv("I_NEG", "-3")
	t.Setenv("I_BAD", "4x")

	if got := c.GetInt("OK", 0); got != 42 {
		t.Fatalf("GetInt(OK) = %d", got)
	}
	if got := c.GetInt("NEG", 9); got != 9 {
		t.Fatalf("GetInt(NEG) = %d", got)
	}
	if got := c.GetInt("BAD", 9); got != 9 {
		t.Fatalf("GetInt(BAD) = %d", got)
	}
	if got := c.GetInt("UNSET", 1); got != 1 {
		t.Fatalf("GetInt(UNSET) = %d", got)
	}
}
