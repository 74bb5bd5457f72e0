package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const vehiclesSchemaURL = "https://vehtax.schemas.local/vehicles.schema.json"

//go:embed vehicles.schema.json
var vehiclesSchemaJSON []byte

var (
	vehiclesSchemaOnce sync.Once
	vehiclesSchema     *jsonschema.Schema
	vehiclesSchemaErr  error
)

// VehiclesSchema returns the raw JSON Schema for vehicles files
func VehiclesSchema() []byte {
	return vehiclesSchemaJSON
}

func compiledVehiclesSchema() (*jsonschema.Schema, error) {
	vehiclesSchemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(vehiclesSchemaURL, bytes.NewReader(vehiclesSchemaJSON)); err != nil {
			vehiclesSchemaErr = fmt.Errorf("vehicles schema load failed: %w", err)
			return
		}
		vehiclesSchema, vehiclesSchemaErr = c.Compile(vehiclesSchemaURL)
		if vehiclesSchemaErr != nil {
			vehiclesSchemaErr = fmt.Errorf("vehicles schema compile failed: %w", vehiclesSchemaErr)
		}
	})
	return vehiclesSchema, vehiclesSchemaErr
}

// validateShape checks a decoded YAML document against the vehicles schema.
// The document is normalised through JSON so YAML-specific scalar types
// reach the validator as plain JSON values.
func validateShape(doc any) error {
	schema, err := compiledVehiclesSchema()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to normalise document: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var normalised any
	if err := dec.Decode(&normalised); err != nil {
		return fmt.Errorf("failed to normalise document: %w", err)
	}

	if err := schema.Validate(normalised); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
