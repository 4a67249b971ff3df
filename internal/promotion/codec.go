package promotion

import (
	"bytes"
	"encoding/json"
)

// The store is inconsistent about how it returns settings: usually a JSON
// string containing the encoded object, sometimes the object itself. That
// tolerance lives entirely here; everything past the codec only ever sees the
// structured form.

// DecodeSettings converts the wire form of settings into the structured one.
// It never fails: empty or absent input yields the empty structure, an
// already structured value is returned as-is, and a malformed blob also
// yields the empty structure. The second return value is false when malformed
// input was replaced, so callers can count the fallback without surfacing it.
func DecodeSettings(raw json.RawMessage) (Settings, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Settings{}, true
	}

	// Encoded string blob first: a JSON string whose content is the object.
	var blob string
	if err := json.Unmarshal(trimmed, &blob); err == nil {
		var settings Settings
		if err := json.Unmarshal([]byte(blob), &settings); err != nil {
			return Settings{}, false
		}
		return settings, true
	}

	// Otherwise the store already sent a structured value.
	var settings Settings
	if err := json.Unmarshal(trimmed, &settings); err != nil {
		return Settings{}, false
	}
	return settings, true
}

// EncodeSettings produces the canonical wire form: a JSON string containing
// the settings object, with the type discriminator always merged in whether
// or not the structured value carried one.
func EncodeSettings(t Type, s Settings) json.RawMessage {
	s.Type = string(t)
	inner, err := json.Marshal(s)
	if err != nil {
		// Settings contains only marshalable fields; this cannot happen.
		inner = []byte("{}")
	}
	wire, err := json.Marshal(string(inner))
	if err != nil {
		wire = []byte(`"{}"`)
	}
	return wire
}
