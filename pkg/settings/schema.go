package settings

import (
	"encoding/json"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/utils"
	"github.com/invopop/jsonschema"
)

// Schema returns the JSON Schema of the settings document, indented.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(&model.StoredSettings{})
	schema.Title = "Lecture summarizer settings"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}
	return data, nil
}
