package tribunal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBranchCode(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		wantCode   string
		wantOK     bool
	}{
		{
			name:       "Formatted identifier",
			identifier: "0012345-67.2024.8.26.0100",
			wantCode:   "26",
			wantOK:     true,
		},
		{
			name:       "Digits only",
			identifier: "00123456720248260100",
			wantCode:   "26",
			wantOK:     true,
		},
		{
			name:       "Federal court identifier",
			identifier: "0001234-56.2023.4.03.6100",
			wantCode:   "03",
			wantOK:     true,
		},
		{
			name:       "Too short",
			identifier: "12345",
			wantOK:     false,
		},
		{
			name:       "Empty",
			identifier: "",
			wantOK:     false,
		},
		{
			name:       "Garbage",
			identifier: "not-a-case-number-at-all",
			wantOK:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := ParseBranchCode(tt.identifier)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantCode, code)
			}
		})
	}
}

func TestParseFilingYear(t *testing.T) {
	year, ok := ParseFilingYear("0012345-67.2024.8.26.0100")
	require.True(t, ok)
	assert.Equal(t, "2024", year)

	_, ok = ParseFilingYear("12345")
	assert.False(t, ok)
}

func TestLookup(t *testing.T) {
	p, ok := Lookup("TJSP")
	require.True(t, ok)
	assert.Equal(t, "api_publica_tjsp", p.Alias)

	// Numeric branch codes resolve through the state table
	p, ok = Lookup("26")
	require.True(t, ok)
	assert.Equal(t, "TJSP", p.ShortCode)

	// Short codes are case-insensitive
	p, ok = Lookup("tjrj")
	require.True(t, ok)
	assert.Equal(t, "api_publica_tjrj", p.Alias)

	_, ok = Lookup("TJXX")
	assert.False(t, ok)

	_, ok = Lookup("")
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		hint       string
		want       string
	}{
		{
			name:       "Branch code from identifier",
			identifier: "0012345-67.2024.8.26.0100",
			want:       "TJSP",
		},
		{
			name:       "Hint wins over identifier",
			identifier: "0012345-67.2024.8.26.0100",
			hint:       "TJRJ",
			want:       "TJRJ",
		},
		{
			name:       "Unresolvable hint falls back to identifier",
			identifier: "0012345-67.2024.8.13.0001",
			hint:       "NOPE",
			want:       "TJMG",
		},
		{
			name:       "Malformed identifier uses default",
			identifier: "garbage",
			want:       "TJSP",
		},
		{
			name:       "Unmapped branch code uses default",
			identifier: "0012345-67.2024.8.99.0100",
			want:       "TJSP",
		},
		{
			name:       "Empty everything still resolves",
			identifier: "",
			want:       "TJSP",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Resolve(tt.identifier, tt.hint, "TJSP")
			assert.Equal(t, tt.want, p.ShortCode)
			assert.NotEmpty(t, p.Alias)
		})
	}
}

func TestResolveUnknownDefault(t *testing.T) {
	// Even a bad default never fails the resolution step
	p := Resolve("garbage", "", "NOPE")
	assert.Equal(t, "TJSP", p.ShortCode)
}

func TestRegistryCoverage(t *testing.T) {
	entries := All()
	assert.GreaterOrEqual(t, len(entries), 90)

	seen := map[string]bool{}
	for _, e := range entries {
		assert.NotEmpty(t, e.ShortCode)
		assert.NotEmpty(t, e.Alias)
		assert.False(t, seen[e.ShortCode], "duplicate short code %s", e.ShortCode)
		seen[e.ShortCode] = true
	}

	// Every state branch code must resolve
	for code := range stateBranchCodes {
		_, ok := Lookup(code)
		assert.True(t, ok, "branch code %s must resolve", code)
	}
}
