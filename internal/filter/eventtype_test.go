package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKind(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"created", KindCreated},
		{"create", KindCreated},
		{"Add", KindCreated},
		{"NEW", KindCreated},
		{"modify", KindModified},
		{"changed", KindModified},
		{"Update", KindModified},
		{"delete", KindRemoved},
		{"unlink", KindRemoved},
		{"move", KindRenamed},
		{"access", KindAccessed},
		{"chmod", "chmod"},
		{"WEIRD", "weird"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeKind(tt.in))
		})
	}
}

func TestKindAllowed(t *testing.T) {
	cfg := EventTypeConfig{
		Enabled:      true,
		AllowedTypes: []string{KindCreated, KindModified},
	}

	// Synonyms resolve before the membership test
	assert.True(t, KindAllowed("create", cfg))
	assert.True(t, KindAllowed("Changed", cfg))
	assert.False(t, KindAllowed("removed", cfg))
	assert.False(t, KindAllowed("accessed", cfg))
}

func TestKindAllowed_PermissiveDefaults(t *testing.T) {
	// Disabled stage passes everything
	assert.True(t, KindAllowed("removed", EventTypeConfig{Enabled: false, AllowedTypes: []string{KindCreated}}))

	// Empty allow-list passes everything, including unknown kinds
	assert.True(t, KindAllowed("chmod", EventTypeConfig{Enabled: true}))
}
