package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_ActionParams(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		req     StateRequest
		wantErr bool
	}{
		{"read only", StateRequest{}, false},
		{"harvest carrot", StateRequest{Action: ActionHarvest, Params: ActionParams{Crop: "carrot"}}, false},
		{"purchase cow", StateRequest{Action: ActionPurchase, Params: ActionParams{Animal: "cow"}}, false},
		{"crop is case sensitive", StateRequest{Action: ActionHarvest, Params: ActionParams{Crop: "Carrot"}}, true},
		{"animal as crop", StateRequest{Action: ActionHarvest, Params: ActionParams{Crop: "pig"}}, true},
		{"crop as animal", StateRequest{Action: ActionPurchase, Params: ActionParams{Animal: "wheat"}}, true},
		{"unknown action", StateRequest{Action: "sell"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationError_UsesJSONNames(t *testing.T) {
	err := GetValidator().ValidateStruct(StateRequest{Action: ActionHarvest, Params: ActionParams{Crop: "mango"}})
	require.Error(t, err)

	fields := FormatValidationError(err)

	assert.Equal(t, `Unknown crop "mango"`, fields["crop"])
	assert.True(t, isUnknownKind(err))
}

func TestFormatValidationError_MixedFailures(t *testing.T) {
	err := GetValidator().ValidateStruct(StateRequest{Action: "sell", Params: ActionParams{Crop: "mango"}})
	require.Error(t, err)

	fields := FormatValidationError(err)

	assert.Contains(t, fields["action"], "harvest purchase")
	assert.False(t, isUnknownKind(err), "a bad action is not an unknown item")
}

func TestFormatValidationError_NonValidationError(t *testing.T) {
	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(assert.AnError))
}
