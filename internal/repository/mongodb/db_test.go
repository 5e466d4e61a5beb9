package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatURI(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no query",
			in:   "mongodb://localhost:27017/cipherstudio",
			want: "mongodb://localhost:27017/cipherstudio?retryWrites=true&w=majority",
		},
		{
			name: "existing query",
			in:   "mongodb+srv://user:pw@cluster.example.net/db?appName=studio",
			want: "mongodb+srv://user:pw@cluster.example.net/db?appName=studio&retryWrites=true&w=majority",
		},
		{
			name: "already set",
			in:   "mongodb://localhost/?retryWrites=true",
			want: "mongodb://localhost/?retryWrites=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatURI(tt.in))
		})
	}
}
