package schema

import (
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
)

// Generate reflects a strict JSON schema for T.
func Generate[T any]() any {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return r.Reflect(v)
}

var (
	EntityStoreSchema    = Generate[EntityStore]()
	DistractorSetSchema  = Generate[DistractorSet]()
	ClassificationSchema = Generate[Classification]()
	NarrativeSchema      = Generate[Narrative]()
)

// ResponseFormat wraps a reflected schema as an OpenAI structured-output response format.
func ResponseFormat(name, description string, s any) openai.ChatCompletionNewParamsResponseFormatUnion {
	p := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        name,
		Description: openai.String(description),
		Schema:      s,
		Strict:      openai.Bool(true),
	}
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: p},
	}
}

func EntityStoreResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return ResponseFormat("entity_store", "Characters, events, locations and objects extracted from study material", EntityStoreSchema)
}

func DistractorResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return ResponseFormat("distractors", "Plausible but wrong answer options", DistractorSetSchema)
}

func ClassificationResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return ResponseFormat("content_analysis", "Dominant content type of study material", ClassificationSchema)
}

func NarrativeResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return ResponseFormat("narrative_content", "Story, dialogue and comprehension questions built from entities", NarrativeSchema)
}
