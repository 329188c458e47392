package domain

import "net/url"

// ValidateGatewayForm checks the gateway connection form fields. It is pure:
// no network access, no side effects. A nil return means the form is valid.
//
// Required fields are checked before URL syntax, and the missing-field
// message always enumerates everything the form needs.
func ValidateGatewayForm(name, apiBaseURL, apiKey string) *FormError {
	if name == "" || apiBaseURL == "" || apiKey == "" {
		return &FormError{
			Code:    FormErrorMissingField,
			Message: "Name, API URL, and API key are required.",
		}
	}

	u, err := url.Parse(apiBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &FormError{
			Code:    FormErrorInvalidURL,
			Message: "Invalid API URL.",
		}
	}

	return nil
}
