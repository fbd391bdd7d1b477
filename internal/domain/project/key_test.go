package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Customer Portal", "CP"},
		{"customer portal", "CP"},
		{"Billing", "BI"},
		{"a", "AX"},
		{"Équipe Données", "ED"},
		{"Été", "ET"},
		{"  multi   space  name ", "MSN"},
		{"one two three four five six seven eight nine ten eleven", "OTTFFSSENT"},
		{"3D Studio", "X3S"},
		{"!!!", "XX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveKey(tt.name))
		})
	}
}

func TestKeyCandidate(t *testing.T) {
	assert.Equal(t, "CP", KeyCandidate("CP", 1))
	assert.Equal(t, "CP2", KeyCandidate("CP", 2))
	assert.Equal(t, "CP13", KeyCandidate("CP", 13))
	assert.Equal(t, "ABCDEFGHI2", KeyCandidate("ABCDEFGHIJ", 2))
}

func TestNormalizeKey(t *testing.T) {
	got, err := NormalizeKey(" cp2 ")
	require.NoError(t, err)
	assert.Equal(t, "CP2", got)

	for _, bad := range []string{"", "C", "2CP", "TOOLONGKEY1", "C-P"} {
		_, err := NormalizeKey(bad)
		assert.Error(t, err, bad)
	}
}
