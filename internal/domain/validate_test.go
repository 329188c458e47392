package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGatewayForm(t *testing.T) {
	tests := []struct {
		name     string
		formName string
		url      string
		key      string
		wantCode string
	}{
		{
			name:     "valid form",
			formName: "Main",
			url:      "https://10.0.0.1",
			key:      "k",
			wantCode: "",
		},
		{
			name:     "missing name",
			formName: "",
			url:      "https://10.0.0.1",
			key:      "k",
			wantCode: FormErrorMissingField,
		},
		{
			name:     "missing url",
			formName: "Main",
			url:      "",
			key:      "k",
			wantCode: FormErrorMissingField,
		},
		{
			name:     "missing key",
			formName: "Main",
			url:      "https://10.0.0.1",
			key:      "",
			wantCode: FormErrorMissingField,
		},
		{
			name:     "invalid url",
			formName: "Main",
			url:      "not a url",
			key:      "k",
			wantCode: FormErrorInvalidURL,
		},
		{
			name:     "relative url is invalid",
			formName: "Main",
			url:      "/just/a/path",
			key:      "k",
			wantCode: FormErrorInvalidURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGatewayForm(tt.formName, tt.url, tt.key)
			if tt.wantCode == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, tt.wantCode, err.Code)
		})
	}
}

func TestValidateGatewayForm_MissingFieldMessageEnumeratesFields(t *testing.T) {
	err := ValidateGatewayForm("", "", "")
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "Name")
	assert.Contains(t, err.Message, "API URL")
	assert.Contains(t, err.Message, "API key")
}
