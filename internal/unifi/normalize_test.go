package unifi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAPIURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "appends integration path",
			raw:  "https://10.0.0.1",
			want: "https://10.0.0.1/proxy/network/integration/v1",
		},
		{
			name: "strips single trailing slash before appending",
			raw:  "https://10.0.0.1/",
			want: "https://10.0.0.1/proxy/network/integration/v1",
		},
		{
			name: "already normalized url is unchanged",
			raw:  "https://10.0.0.1/proxy/network/integration/v1",
			want: "https://10.0.0.1/proxy/network/integration/v1",
		},
		{
			name: "hostname with port",
			raw:  "https://gateway.local:8443",
			want: "https://gateway.local:8443/proxy/network/integration/v1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAPIURL(tt.raw))
		})
	}
}

func TestNormalizeAPIURL_Idempotent(t *testing.T) {
	inputs := []string{
		"https://10.0.0.1",
		"https://10.0.0.1/",
		"https://gateway.local:8443",
		"https://10.0.0.1/proxy/network/integration/v1",
	}

	for _, raw := range inputs {
		once := NormalizeAPIURL(raw)
		assert.Equal(t, once, NormalizeAPIURL(once), "normalize must be idempotent for %q", raw)
	}
}
