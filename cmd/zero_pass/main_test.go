package main

import (
	"strings"
	"testing"
)

func TestMethodLines(t *testing.T) {
	tests := []struct {
		name     string
		def      string
		starred  string
		wantNone bool
	}{
		{name: "exact name is starred", def: "Hmac", starred: "* Hmac"},
		{name: "different case is not a known method", def: "base64", wantNone: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var starred []string
			for _, line := range methodLines(tt.def) {
				if strings.HasPrefix(line, "*") {
					starred = append(starred, line)
				}
			}

			if tt.wantNone {
				if len(starred) != 0 {
					t.Errorf("starred = %q, want none", starred)
				}
				return
			}
			if len(starred) != 1 || starred[0] != tt.starred {
				t.Errorf("starred = %q, want [%q]", starred, tt.starred)
			}
		})
	}
}
