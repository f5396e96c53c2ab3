package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProvider(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Provider
		wantErr bool
	}{
		{name: "lower", input: "football", want: ProviderFootball},
		{name: "normalised", input: "  Football ", want: ProviderFootball},
		{name: "dash and digit", input: "football-data2", want: "football-data2"},
		{name: "empty", input: " ", wantErr: true},
		{name: "leading digit", input: "9gag", wantErr: true},
		{name: "path", input: "../football", wantErr: true},
		{name: "separator", input: "football/token", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProvider(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "abc1****", MaskToken("abc123456"))
	assert.Equal(t, "****", MaskToken("abc"))
}

func TestProviderValidateRequiresNormalisedName(t *testing.T) {
	assert.NoError(t, ProviderFootball.Validate())
	assert.ErrorIs(t, Provider("Football").Validate(), ErrInvalidArgument)
	assert.ErrorIs(t, Provider("").Validate(), ErrInvalidArgument)
}
