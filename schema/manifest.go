package schema

// ExtensionSchemaURLs maps Mira extension keys to the canonical URL of
// their JSON schema. Extensions own their section of mira.yml; their
// schemas compose into the base schema for validation and IDE support.
//
// Extension schemas are resolved lazily; an unlisted extension key is
// simply not schema-checked.
var ExtensionSchemaURLs = map[string]string{
	// "logging": "https://schemas.mira.app/logging/v1.schema.json",
}
