// Command config-schema-generator regenerates the embedded configuration
// schema from the config package's struct tags. Run via go:generate in
// the config package.
package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/miralabs/mira/config"
)

func main() {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
	}

	schema := r.Reflect(&config.Config{})
	schema.Title = "Mira Configuration"
	schema.Description = "Schema for mira.yml properties."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling schema: %v", err)
	}

	if err := os.WriteFile("../schema/mira.embedded.schema.json", data, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated config schema")
}
