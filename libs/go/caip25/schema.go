package caip25

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// caveatSchemaJSON is the wire-shape contract for a persisted caveat value.
// It enforces presence and JSON types only; grammar and capability checks are
// the Validator's job.
const caveatSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["requiredScopes", "optionalScopes", "isMultichainOrigin"],
  "properties": {
    "requiredScopes": {"$ref": "#/definitions/scopesMap"},
    "optionalScopes": {"$ref": "#/definitions/scopesMap"},
    "sessionProperties": {"type": "object"},
    "isMultichainOrigin": {"type": "boolean"}
  },
  "definitions": {
    "scopesMap": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "accounts": {"type": "array", "items": {"type": "string"}},
          "methods": {"type": "array", "items": {"type": "string"}},
          "notifications": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

var caveatSchema = jsonschema.MustCompileString("caip25/caveat.schema.json", caveatSchemaJSON)

// ParseCaveatValue decodes a persisted caveat document, validating it against
// the wire-shape schema first so downstream consumers always hold a value
// whose top-level shape is known to be sound.
func ParseCaveatValue(data []byte) (CaveatValue, error) {
	var document interface{}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&document); err != nil {
		return CaveatValue{}, errors.Wrap(ErrMalformedCaveat, err.Error())
	}

	if err := caveatSchema.Validate(document); err != nil {
		return CaveatValue{}, errors.Wrap(ErrMalformedCaveat, err.Error())
	}

	var value CaveatValue
	if err := json.Unmarshal(data, &value); err != nil {
		return CaveatValue{}, errors.Wrap(ErrMalformedCaveat, err.Error())
	}
	return value, nil
}
