package ai

import (
	"alcyxob/trainerpro/internal/domain"

	"github.com/samber/lo"
)

type SchemaType string

const (
	TypeObject  SchemaType = "object"
	TypeArray   SchemaType = "array"
	TypeString  SchemaType = "string"
	TypeInteger SchemaType = "integer"
)

// Schema is a provider-neutral description of a structured output.
type Schema struct {
	Name        string
	Type        SchemaType
	Description string
	Enum        []string
	Properties  map[string]*Schema
	Items       *Schema
	Required    []string
}

// JSONSchema renders the descriptor as a JSON Schema document.
func (s *Schema) JSONSchema() map[string]any {
	if s == nil {
		return nil
	}
	out := map[string]any{"type": string(s.Type)}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		out["enum"] = s.Enum
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for k, v := range s.Properties {
			props[k] = v.JSONSchema()
		}
		out["properties"] = props
	}
	if s.Items != nil {
		out["items"] = s.Items.JSONSchema()
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	return out
}

var exerciseSchema = &Schema{
	Type: TypeObject,
	Properties: map[string]*Schema{
		"name": {Type: TypeString, Description: "Exercise name as used in gyms"},
		"muscleGroup": {
			Type:        TypeString,
			Description: "Primary muscle group",
			Enum:        lo.Map(domain.MuscleGroups, func(m domain.MuscleGroup, _ int) string { return string(m) }),
		},
		"sets":  {Type: TypeInteger, Description: "Number of sets"},
		"reps":  {Type: TypeString, Description: "Repetition range, e.g. '8-12'"},
		"notes": {Type: TypeString, Description: "Short execution tips"},
	},
	Required: []string{"name", "muscleGroup", "sets", "reps"},
}

var sessionSchema = &Schema{
	Type: TypeObject,
	Properties: map[string]*Schema{
		"dayOfWeek": {
			Type:        TypeString,
			Description: "Day of the week",
			Enum:        lo.Map(domain.Weekdays, func(d domain.Weekday, _ int) string { return string(d) }),
		},
		"focus": {Type: TypeString, Description: "Session focus, e.g. 'Chest and Triceps' or 'Rest'"},
		"exercises": {
			Type:        TypeArray,
			Items:       exerciseSchema,
			Description: "Exercises for the day. Empty on rest days.",
		},
	},
	Required: []string{"dayOfWeek", "focus", "exercises"},
}

// WeekPlanSchema is the structured output of plan generation: one session per
// weekday, Monday to Sunday.
var WeekPlanSchema = &Schema{
	Name:        "weekly-plan",
	Type:        TypeArray,
	Items:       sessionSchema,
	Description: "Complete weekly plan from Monday to Sunday",
}
