package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedis_KeyNamespace(t *testing.T) {
	tests := []struct {
		namespace string
		want      string
	}{
		{"coursehub", "coursehub:courses:list:all"},
		{"coursehub:", "coursehub:courses:list:all"},
		{"", "courses:list:all"},
	}
	for _, tt := range tests {
		t.Run(tt.namespace, func(t *testing.T) {
			r := &Redis{prefix: namespacePrefix(tt.namespace)}
			assert.Equal(t, tt.want, r.key("courses:list:all"))
		})
	}
}
