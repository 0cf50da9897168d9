package advisory

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"google.golang.org/genai"
)

// responseSpec pairs the schema sent to the model with its compiled JSON
// Schema used to validate what comes back.
type responseSpec struct {
	name     string
	declared *genai.Schema
	compiled *jsonschema.Schema
}

func num(v float64) *float64 { return &v }

func str() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }

func strList() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: str()}
}

func score(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeNumber, Description: desc, Minimum: num(0), Maximum: num(100)}
}

var (
	pricingAnalysisSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"recommendation": str(),
			"reasoning":      strList(),
			"suggestedPriceRange": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"min": {Type: genai.TypeNumber},
					"max": {Type: genai.TypeNumber},
				},
				Required: []string{"min", "max"},
			},
			"riskScore": score("风险评分 0-100"),
		},
		Required: []string{"recommendation", "reasoning", "riskScore"},
	}

	riskAssessmentSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"recommendation": str(),
			"reasoning":      strList(),
			"riskScore":      score("风险评分 0-100"),
		},
		Required: []string{"recommendation", "reasoning", "riskScore"},
	}

	pricingStrategySchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"suggestedPrice": {Type: genai.TypeNumber, Minimum: num(0)},
			"predictedROI":   {Type: genai.TypeNumber},
			"reasoning":      str(),
		},
		Required: []string{"suggestedPrice", "predictedROI", "reasoning"},
	}

	financialSimulationSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"recommendation":    str(),
			"reasoning":         strList(),
			"riskScore":         score("风险评分 0-100"),
			"strategicFitScore": score("战略契合度 0-100"),
		},
		Required: []string{"recommendation", "reasoning", "riskScore", "strategicFitScore"},
	}
)

// compileSpec converts a declared schema into JSON Schema and compiles it.
func compileSpec(name string, s *genai.Schema) (*responseSpec, error) {
	raw, err := json.Marshal(toJSONSchema(s))
	if err != nil {
		return nil, fmt.Errorf("marshal schema %s: %w", name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", name, err)
	}

	url := "duckwolf://advisory/" + name + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", name, err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}

	return &responseSpec{name: name, declared: s, compiled: compiled}, nil
}

func toJSONSchema(s *genai.Schema) map[string]any {
	out := map[string]any{}
	switch s.Type {
	case genai.TypeObject:
		out["type"] = "object"
	case genai.TypeArray:
		out["type"] = "array"
	case genai.TypeString:
		out["type"] = "string"
	case genai.TypeNumber:
		out["type"] = "number"
	case genai.TypeInteger:
		out["type"] = "integer"
	case genai.TypeBoolean:
		out["type"] = "boolean"
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, p := range s.Properties {
			props[name] = toJSONSchema(p)
		}
		out["properties"] = props
	}
	if s.Items != nil {
		out["items"] = toJSONSchema(s.Items)
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	if s.Minimum != nil {
		out["minimum"] = *s.Minimum
	}
	if s.Maximum != nil {
		out["maximum"] = *s.Maximum
	}
	return out
}

// decode validates text against the compiled schema and unmarshals it into out.
func (r *responseSpec) decode(text string, out any) error {
	body := extractJSON(text)
	if body == "" {
		return fmt.Errorf("no JSON object in response")
	}

	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := r.compiled.Validate(inst); err != nil {
		return fmt.Errorf("response does not match %s schema: %w", r.name, err)
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return fmt.Errorf("decode %s: %w", r.name, err)
	}
	return nil
}

// extractJSON strips markdown fences and any text around the outermost object.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end < start {
		return ""
	}
	return s[start : end+1]
}
