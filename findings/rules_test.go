package findings

import "testing"

func TestRegistryHostname(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		host string
		want string
	}{
		{name: "bare-hostname-unchanged", host: "registry.npmjs.org", want: "registry.npmjs.org"},
		{name: "scheme-prefixed-strips-scheme", host: "https://registry.npmjs.org", want: "registry.npmjs.org"},
		{name: "alternate-scheme", host: "http://mirror.example.com", want: "mirror.example.com"},
		{name: "malformed-keeps-original", host: "://bad", want: "://bad"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := registryHostname(tc.host)
			if got != tc.want {
				t.Errorf("registryHostname(%q) = %q, want %q", tc.host, got, tc.want)
			}
		})
	}
}
