// Package unifi talks to the UniFi Network integration API exposed by
// supported gateway devices.
package unifi

import "strings"

// IntegrationPath is the fixed URL suffix of the gateway's management API.
const IntegrationPath = "/proxy/network/integration/v1"

// NormalizeAPIURL canonicalizes a user-supplied base URL. If the integration
// path is not already present, a single trailing slash is stripped and the
// path is appended. The input must already be a syntactically valid URL;
// validation is a separate step.
//
// NormalizeAPIURL is idempotent: applying it twice yields the same result
// as applying it once.
func NormalizeAPIURL(raw string) string {
	if strings.Contains(raw, IntegrationPath) {
		return raw
	}
	return strings.TrimSuffix(raw, "/") + IntegrationPath
}
