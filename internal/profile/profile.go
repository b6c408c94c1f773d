// Package profile holds the intake profile model: a closed set of named
// string fields filled incrementally from chat messages.
package profile

// Profile maps intake field names to their collected values. An empty string
// means the field has not been answered yet.
type Profile map[string]string

// Question pairs a field name with the canned prompt asked while the field is
// still empty. Order in a schema defines both the next-question priority and
// the missing-field enumeration order.
type Question struct {
	Field  string
	Prompt string
	Label  string
}

// Schema is a fixed ordered set of intake questions.
type Schema struct {
	Name      string
	questions []Question
}

// Full is the five-field intake schema.
var Full = Schema{
	Name: "full",
	questions: []Question{
		{"preparingFor", "Who are you preparing for — yourself or a household/family?", "Preparing for"},
		{"region", "What general region are you in?", "Region"},
		{"concern", "What situation are you most concerned about?", "Primary concern"},
		{"householdSize", "How many people are in your household?", "Household size"},
		{"experience", "Would you describe your experience as beginner, intermediate, or advanced?", "Experience level"},
	},
}

// Short is the trimmed three-field intake schema.
var Short = Schema{
	Name: "short",
	questions: []Question{
		{"preparingFor", "Who are you preparing for — yourself or a household/family?", "Preparing for"},
		{"concern", "What situation are you most concerned about?", "Primary concern"},
		{"region", "What general region are you in?", "Region"},
	},
}

// ByName returns the schema with the given name, defaulting to Full.
func ByName(name string) Schema {
	if name == Short.Name {
		return Short
	}
	return Full
}

// Questions returns the schema's questions in canonical order.
func (s Schema) Questions() []Question {
	return s.questions
}

// Prompt returns the canned question text for a field, or "" for unknown fields.
func (s Schema) Prompt(field string) string {
	for _, q := range s.questions {
		if q.Field == field {
			return q.Prompt
		}
	}
	return ""
}

// Label returns the human-readable label for a field, or the field name itself
// when the schema does not know it.
func (s Schema) Label(field string) string {
	for _, q := range s.questions {
		if q.Field == field {
			return q.Label
		}
	}
	return field
}

// Normalize merges a caller-supplied partial profile into a fresh template.
// Unknown keys and empty values are dropped; the field set stays closed.
func (s Schema) Normalize(partial map[string]string) Profile {
	merged := make(Profile, len(s.questions))
	for _, q := range s.questions {
		merged[q.Field] = ""
	}
	for key, value := range partial {
		if value == "" {
			continue
		}
		if _, ok := merged[key]; ok {
			merged[key] = value
		}
	}
	return merged
}

// Missing returns the fields still empty, in canonical question order.
func (s Schema) Missing(p Profile) []string {
	missing := make([]string, 0, len(s.questions))
	for _, q := range s.questions {
		if p[q.Field] == "" {
			missing = append(missing, q.Field)
		}
	}
	return missing
}
