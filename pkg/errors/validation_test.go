package errors

import (
	"testing"
)

func TestValidatePanelID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "inventory", false},
		{"valid with dash", "clan-roster", false},
		{"valid with underscore", "news_feed", false},
		{"valid with digits", "widget2", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"uppercase", "Inventory", true},
		{"path traversal ..", "foo..bar", true},
		{"slash", "foo/bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"leading dash", "-foo", true},
		{"trailing dash", "foo-", true},
		{"double dash", "foo--bar", true},
		{"spaces", "foo bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePanelID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePanelID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTabID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "main", false},
		{"valid mixed case", "Guardian", false},
		{"valid with dot", "alt.pvp", false},
		{"valid with space", "my tab", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"path traversal", "../etc", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"null byte", "a\x00b", true},
		{"control char", "a\x1bb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTabID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTabID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
