package parser

import "testing"

func TestExtractAddress(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			"full with zip",
			"14 BALLARD Lane, Palm Coast, FL 32137",
			"14 Ballard Lane, Palm Coast, FL 32137",
		},
		{
			"without zip",
			"come see 14 Main Street, Springfield, IL today",
			"14 Main Street, Springfield, IL",
		},
		{
			"bare street address",
			"showing at 45 Oak Avenue this weekend",
			"45 Oak Avenue",
		},
		{
			"ocr artifacts stripped",
			"1,343 sqft\n14 Ballard Lane",
			"14 Ballard Lane",
		},
		{
			"fact line is not an address",
			"sqft 14 Ballard Lane",
			"",
		},
		{
			"no address",
			"gorgeous three bedroom with updated kitchen",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractAddress(tt.text); got != tt.want {
				t.Errorf("ExtractAddress(%q) = %q; want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"recases shouting", "14 BALLARD LANE, PALM COAST, FL 32137", "14 Ballard Lane, Palm Coast, FL 32137"},
		{"state code preserved", "14 Main St, Orlando, FL", "14 Main St, Orlando, FL"},
		{"zip preserved", "14 Main St, Orlando, FL 32801", "14 Main St, Orlando, FL 32801"},
		{"price fragment stripped", "000 14 Ballard Lane", "14 Ballard Lane"},
		{"noise token stripped", "sqft 14 Ballard Lane", "14 Ballard Lane"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeAddress(tt.in); got != tt.want {
				t.Errorf("normalizeAddress(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeAddress_Idempotent(t *testing.T) {
	once := normalizeAddress("000 14 BALLARD Lane, Palm Coast, FL 32137")
	twice := normalizeAddress(once)

	if once != twice {
		t.Errorf("normalization not idempotent: %q then %q", once, twice)
	}
}
