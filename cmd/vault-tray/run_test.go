package main

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestRelaunchArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"empty", nil, []string{}},
		{"drops hidden", []string{"run", "--hidden"}, []string{"run"}},
		{"keeps others", []string{"--config", "c.yaml", "run", "--headless"}, []string{"--config", "c.yaml", "run", "--headless"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := relaunchArgs(tt.args); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("relaunchArgs(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestAbbreviate(t *testing.T) {
	long := strings.Repeat("\u00e9", 60)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short", "Notes", "Notes"},
		{"exact", strings.Repeat("a", 48), strings.Repeat("a", 48)},
		{"ascii", strings.Repeat("a", 50), strings.Repeat("a", 45) + "..."},
		{"multibyte", long, strings.Repeat("\u00e9", 45) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := abbreviate(tt.in)
			if got != tt.want {
				t.Errorf("abbreviate() = %q, want %q", got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("abbreviate() returned invalid UTF-8 %q", got)
			}
		})
	}
}
