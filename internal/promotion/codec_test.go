package promotion

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSettings_StringBlob(t *testing.T) {
	wire, err := json.Marshal(`{"type":"welcome_bonus","bonus_percentage":25,"betting_types":["football"]}`)
	require.NoError(t, err)

	settings, ok := DecodeSettings(wire)

	assert.True(t, ok)
	require.NotNil(t, settings.BonusPercentage)
	assert.Equal(t, 25.0, *settings.BonusPercentage)
	assert.Equal(t, []string{"football"}, settings.BettingTypes)
	assert.Equal(t, "welcome_bonus", settings.Type)
}

func TestDecodeSettings_StructuredObject(t *testing.T) {
	wire := json.RawMessage(`{"type":"cashback","cashback_percentage":10}`)

	settings, ok := DecodeSettings(wire)

	assert.True(t, ok)
	require.NotNil(t, settings.CashbackPercentage)
	assert.Equal(t, 10.0, *settings.CashbackPercentage)
}

func TestDecodeSettings_AbsentAndNull(t *testing.T) {
	for _, wire := range []json.RawMessage{nil, json.RawMessage(""), json.RawMessage("null"), json.RawMessage("  ")} {
		settings, ok := DecodeSettings(wire)
		assert.True(t, ok)
		assert.Equal(t, Settings{}, settings)
	}
}

func TestDecodeSettings_GarbageNeverFails(t *testing.T) {
	for _, wire := range []json.RawMessage{
		json.RawMessage(`{"type":`),
		json.RawMessage(`"not even json inside"`),
		json.RawMessage(`"{\"type\": oops}"`),
		json.RawMessage(`42oops`),
	} {
		settings, ok := DecodeSettings(wire)
		assert.False(t, ok, "wire %q should report a fallback", string(wire))
		assert.Equal(t, Settings{}, settings)
	}
}

func TestDecodeSettings_LegacyFieldsSurvive(t *testing.T) {
	wire, err := json.Marshal(`{"type":"lose_all_refund","required_loss_pairs":3,"refund_amount":50}`)
	require.NoError(t, err)

	settings, ok := DecodeSettings(wire)

	assert.True(t, ok)
	require.NotNil(t, settings.RequiredLossPairs)
	assert.Equal(t, 3, *settings.RequiredLossPairs)
	require.NotNil(t, settings.RefundAmount)
	assert.Equal(t, 50.0, *settings.RefundAmount)
}

func TestEncodeSettings_WireIsStringBlob(t *testing.T) {
	pct := 25.0
	wire := EncodeSettings(TypeWelcomeBonus, Settings{BonusPercentage: &pct})

	var blob string
	require.NoError(t, json.Unmarshal(wire, &blob), "wire form must be a JSON string")

	var inner map[string]any
	require.NoError(t, json.Unmarshal([]byte(blob), &inner))
	assert.Equal(t, "welcome_bonus", inner["type"])
	assert.Equal(t, 25.0, inner["bonus_percentage"])
}

func TestEncodeSettings_OverridesType(t *testing.T) {
	wire := EncodeSettings(TypeCashback, Settings{Type: "welcome_bonus"})

	settings, ok := DecodeSettings(wire)
	assert.True(t, ok)
	assert.Equal(t, "cashback", settings.Type)
}

func TestSettings_RoundTrip(t *testing.T) {
	pairs, mult := 3, 1.5
	minOdds := 1.8
	conditions := "min 3 legs"
	original := Settings{
		Tiers:            []Tier{{Pairs: &pairs, Multiplier: &mult}},
		MinOdds:          &minOdds,
		RefundConditions: &conditions,
		BettingTypes:     []string{"football", "boxing"},
		MarketTypes:      []string{"all"},
	}

	decoded, ok := DecodeSettings(EncodeSettings(TypeLoseAllRefund, original))

	assert.True(t, ok)
	original.Type = string(TypeLoseAllRefund)
	assert.Equal(t, original, decoded)
}
