package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEntityID(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		entityType string
		wantErr    string
	}{
		{name: "valid position", id: "POS-001", entityType: "position"},
		{name: "valid employee", id: "EMP-042", entityType: "employee"},
		{name: "empty passes", id: "", entityType: "employee"},
		{name: "unknown type passes", id: "whatever", entityType: "payroll"},
		{name: "short id", id: "7", entityType: "position", wantErr: "Use full ID format: POS-007"},
		{name: "wrong case", id: "emp-001", entityType: "employee", wantErr: "IDs are case-sensitive, use: EMP-001"},
		{name: "wrong prefix", id: "POS-001", entityType: "employee", wantErr: "Expected format: EMP-xxx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateEntityID(tt.id, tt.entityType)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
