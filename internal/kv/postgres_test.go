package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLikePrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{
			name:   "plain prefix",
			prefix: "alerts/",
			want:   "alerts/",
		},
		{
			name:   "underscores escaped",
			prefix: "historical_weather_",
			want:   `historical\_weather\_`,
		},
		{
			name:   "percent escaped",
			prefix: "100%",
			want:   `100\%`,
		},
		{
			name:   "backslash escaped first",
			prefix: `a\_b`,
			want:   `a\\\_b`,
		},
		{
			name:   "empty",
			prefix: "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLikePrefix(tt.prefix))
		})
	}
}
