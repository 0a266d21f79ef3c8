package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"recommendation-service/internal/core/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// FieldError is one entry of a 400 validation response.
type FieldError struct {
	Type     string      `json:"type"`
	Msg      string      `json:"msg"`
	Path     string      `json:"path"`
	Location string      `json:"location"`
	Value    interface{} `json:"value,omitempty"`
}

type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// fieldRule is a single check of a field. A bail rule stops the chain of its field on failure.
type fieldRule struct {
	schema *jsonschema.Schema
	msg    string
	bail   bool
}

type fieldChain struct {
	path     string
	optional bool
	rules    []fieldRule
}

func newRule(name, schema, msg string, bail bool) fieldRule {
	return fieldRule{
		schema: jsonschema.MustCompileString("rules/"+name+".json", schema),
		msg:    msg,
		bail:   bail,
	}
}

const positiveNumberSchema = `{"type": "number", "exclusiveMinimum": 0}`

var recommendationRequestChains = []fieldChain{
	{
		path: "household_income",
		rules: []fieldRule{
			newRule("household_income", positiveNumberSchema, "Household income must be a positive number.", false),
		},
	},
	{
		path: "preferred_locations",
		rules: []fieldRule{
			newRule("preferred_locations_array", `{"type": "array"}`, "Preferred locations must be an array.", true),
			newRule("preferred_locations_non_empty", `{"minItems": 1}`, "Preferred locations must be a non-empty array.", true),
			newRule("preferred_locations_strings", `{"items": {"type": "string"}}`, "Each location must be a string.", true),
		},
	},
	{
		path:     "property_type",
		optional: true,
		rules: []fieldRule{
			newRule("property_type_array", `{"type": "array"}`, "Property type must be an array.", false),
			newRule("property_type_strings", `{"type": "array", "items": {"type": "string"}}`, "Each property type must be a string.", false),
		},
	},
	{
		path:     "min_bedrooms",
		optional: true,
		rules: []fieldRule{
			newRule("min_bedrooms", `{"type": "integer", "minimum": 1}`, "Minimum bedrooms must be a positive integer.", false),
		},
	},
	{
		path:     "max_rent",
		optional: true,
		rules: []fieldRule{
			newRule("max_rent", positiveNumberSchema, "Max rent must be a positive number.", false),
		},
	},
}

// validateChains runs every chain against body and collects the failures in chain order.
func validateChains(body map[string]interface{}, chains []fieldChain) []FieldError {
	var errs []FieldError
	for _, chain := range chains {
		value, present := body[chain.path]
		if chain.optional && !present {
			continue
		}
		for _, r := range chain.rules {
			if err := r.schema.Validate(value); err == nil {
				continue
			}
			errs = append(errs, FieldError{
				Type:     "field",
				Msg:      r.msg,
				Path:     chain.path,
				Location: "body",
				Value:    value,
			})
			if r.bail {
				break
			}
		}
	}
	return errs
}

// decodeJSONObject decodes a JSON object keeping numbers as json.Number.
func decodeJSONObject(data []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var body map[string]interface{}
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, fmt.Errorf("request body must be a JSON object")
	}
	return body, nil
}

// ParseRecommendationRequest validates the decoded body and returns the
// sanitized request. Callers must not use the request when errors are returned.
func ParseRecommendationRequest(body map[string]interface{}) (domain.RecommendationRequest, []FieldError) {
	if errs := validateChains(body, recommendationRequestChains); len(errs) > 0 {
		return domain.RecommendationRequest{}, errs
	}

	req := domain.RecommendationRequest{
		HouseholdIncome: numberValue(body["household_income"]),
	}

	for _, loc := range body["preferred_locations"].([]interface{}) {
		req.PreferredLocations = append(req.PreferredLocations, escapeHTML(domain.NormalizeLocation(loc.(string))))
	}

	if raw, ok := body["property_type"].([]interface{}); ok {
		req.PropertyTypes = make([]string, 0, len(raw))
		for _, t := range raw {
			req.PropertyTypes = append(req.PropertyTypes, escapeHTML(strings.TrimSpace(t.(string))))
		}
	}

	if _, ok := body["min_bedrooms"]; ok {
		// beyond the bedrooms column range nothing can match
		minBedrooms := int(math.Min(numberValue(body["min_bedrooms"]), math.MaxInt32))
		req.MinBedrooms = &minBedrooms
	}

	if _, ok := body["max_rent"]; ok {
		maxRent := numberValue(body["max_rent"])
		req.MaxRent = &maxRent
	}

	return req, nil
}

func numberValue(v interface{}) float64 {
	switch n := v.(type) {
	case json.Number:
		f, _ := n.Float64()
		return f
	case float64:
		return n
	}
	return 0
}

var htmlEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
