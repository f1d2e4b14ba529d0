package parser

import (
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"25.99", "25.99", false},
		{"1,234.56", "1234.56", false},
		{"14,96,485.63", "1496485.63", false},
		{" 0.00 ", "0", false},
		{"", "", true},
		{"1.2.3", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.expected {
				t.Errorf("got %s, want %s", got.String(), tt.expected)
			}
		})
	}
}

func TestStartsWithDate(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"15-01-2024 CARD PAYMENT", true},
		{"15-01-24 CARD PAYMENT", true},
		{"99-99-99 still date shaped", true},
		{"1-1-24 PAYMENT", false},
		{"15/01/2024 CARD PAYMENT", false},
		{"CARD PAYMENT 15-01-2024", false},
		{"not a date line", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := startsWithDate(tt.input)
			if got != tt.expected {
				t.Errorf("startsWithDate(%q): got %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"05-01-24", "05-01-2024", true},
		{"05-01-2024", "05-01-2024", true},
		{"31-12-69", "31-12-1969", true},
		{"30-02-2024", "", false},
		{"00-01-24", "", false},
		{"05-01-245", "", false},
		{"01-01-0000", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := normalizeDate(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("normalizeDate(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTrailingBalance(t *testing.T) {
	tests := []struct {
		input     string
		wantRaw   string
		wantStart int
		wantOK    bool
	}{
		{"ATM WDL 500.00Dr", "500.00", 8, true},
		{"NEFT 1,500.00 2,96,485.63Cr", "2,96,485.63", 14, true},
		{"12,345.67", "12,345.67", 0, true},
		{"OPENING BALANCE", "", 0, false},
		{"500.00 CHARGES", "", 0, false},
		{"500.00cr", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			bal, start, ok := trailingBalance(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ok: got %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if bal.Raw != tt.wantRaw {
				t.Errorf("raw: got %q, want %q", bal.Raw, tt.wantRaw)
			}
			if start != tt.wantStart {
				t.Errorf("start: got %d, want %d", start, tt.wantStart)
			}
		})
	}
}

func TestIsNoiseLine(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"", true},
		{"Account Statement", true},
		{"Savings Account No 123", true},
		{"Page 2 of 7", true},
		{"MUMBAI BRANCH", false},
		{"account lowercase is not noise", false},
		{"01-02-24 ATM WDL 500.00Dr", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := isNoiseLine(tt.input); got != tt.expected {
				t.Errorf("isNoiseLine(%q): got %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFindAccountNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Account No : 04560100012345", "04560100012345"},
		{"Account Number 123456789 IFSC BARB0XYZ", "123456789"},
		{"Account Statement 01-04-2024", ""},
		{"no account here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := findAccountNumber(tt.input)
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}
