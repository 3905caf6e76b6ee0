package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSchemaName(t *testing.T) {
	name := GenerateSchemaName(t)

	assert.True(t, strings.HasPrefix(name, "test_testgenerateschemaname_"))
	assert.LessOrEqual(t, len(name), 63)
	assert.NotEqual(t, name, GenerateSchemaName(t))
}

func TestAddSearchPathToConnString(t *testing.T) {
	tests := []struct {
		name    string
		connStr string
		want    string
	}{
		{
			name:    "no query",
			connStr: "postgres://u:p@localhost:5432/db",
			want:    "postgres://u:p@localhost:5432/db?search_path=s1",
		},
		{
			name:    "existing query",
			connStr: "postgres://u:p@localhost:5432/db?sslmode=disable",
			want:    "postgres://u:p@localhost:5432/db?sslmode=disable&search_path=s1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddSearchPathToConnString(tt.connStr, "s1"))
		})
	}
}
