package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSinglePass(t *testing.T) {
	p := Full.Normalize(nil)
	p = Full.Extract(p, "I'm preparing for my family in Texas, we're a beginner household of 4")

	assert.Equal(t, "Family or household", p["preparingFor"])
	assert.Equal(t, "Beginner", p["experience"])
	assert.Equal(t, "4", p["householdSize"])
	assert.Contains(t, p["region"], "Texas")
}

func TestExtractNeverOverwrites(t *testing.T) {
	p := Full.Normalize(map[string]string{
		"preparingFor": "Myself",
		"region":       "Canada",
	})
	out := Full.Extract(p, "my family and kids in Texas")

	assert.Equal(t, "Myself", out["preparingFor"])
	assert.Equal(t, "Canada", out["region"])

	// Re-applying the same message changes nothing further.
	again := Full.Extract(out, "my family and kids in Texas")
	assert.Equal(t, out, again)
}

func TestExtractDoesNotMutateInput(t *testing.T) {
	p := Full.Normalize(nil)
	Full.Extract(p, "just me")
	assert.Equal(t, "", p["preparingFor"])
}

func TestExtractEmptyMessage(t *testing.T) {
	p := Full.Normalize(nil)
	assert.Equal(t, p, Full.Extract(p, ""))
}

func TestPreparingForFamilyWinsOverSelf(t *testing.T) {
	p := Full.Extract(Full.Normalize(nil), "me and my kids")
	assert.Equal(t, "Family or household", p["preparingFor"])

	p = Full.Extract(Full.Normalize(nil), "just me, solo")
	assert.Equal(t, "Myself", p["preparingFor"])
}

func TestExperienceOrder(t *testing.T) {
	cases := map[string]string{
		"I'm a total beginner at this":      "Beginner",
		"somewhere intermediate I'd say":    "Intermediate",
		"I'm fairly experienced":            "Advanced",
		"expert level":                      "Advanced",
		"beginner but my partner is expert": "Beginner",
	}
	for msg, want := range cases {
		p := Full.Extract(Full.Normalize(map[string]string{
			"preparingFor": "x", "region": "x", "concern": "x", "householdSize": "x",
		}), msg)
		assert.Equal(t, want, p["experience"], "message %q", msg)
	}
}

func TestConcernRules(t *testing.T) {
	base := Full.Normalize(map[string]string{
		"preparingFor": "x", "region": "x", "householdSize": "x", "experience": "x",
	})

	p := Full.Extract(base, "wildfires near our town")
	assert.Equal(t, "wildfires near our town", p["concern"])

	// Questions and generic option-seeking messages are not concerns.
	p = Full.Extract(base, "what should I worry about?")
	assert.Equal(t, "", p["concern"])
	p = Full.Extract(base, "which options do I have")
	assert.Equal(t, "", p["concern"])

	// Too short or too long.
	p = Full.Extract(base, "a")
	assert.Equal(t, "", p["concern"])
	p = Full.Extract(base, "this is a very very long message that rambles on well past the forty character limit")
	assert.Equal(t, "", p["concern"])
}

func TestHouseholdSizeFirstNumber(t *testing.T) {
	p := Full.Extract(Full.Normalize(nil), "there are 4 of us, maybe 5 on weekends")
	assert.Equal(t, "4", p["householdSize"])

	p = Full.Extract(Full.Normalize(nil), "call me on 555123, we are many")
	assert.Equal(t, "", p["householdSize"], "three or more digits are not a household size")
}

func TestRegionTierPreposition(t *testing.T) {
	p := Full.Extract(Full.Normalize(nil), "We live in British Columbia")
	assert.Equal(t, "British Columbia", p["region"])
}

func TestRegionTierLookup(t *testing.T) {
	cases := map[string]string{
		"usa":  "United States",
		"U.S.": "United States",
		"uk":   "United Kingdom",
	}
	for msg, want := range cases {
		p := Full.Extract(Full.Normalize(nil), msg)
		assert.Equal(t, want, p["region"], "message %q", msg)
	}
	// canada/australia go through the lookup too, preserving canonical casing
	p := Full.Extract(Full.Normalize(nil), "canada")
	assert.Equal(t, "Canada", p["region"])
}

func TestRegionCatchAll(t *testing.T) {
	p := Full.Extract(Full.Normalize(map[string]string{"concern": "x"}), "Pacific Northwest")
	assert.Equal(t, "Pacific Northwest", p["region"])

	// Greetings and other-field answers never claim the region.
	for _, msg := range []string{"hello", "thanks", "okay", "beginner", "my family"} {
		p := Full.Extract(Full.Normalize(map[string]string{"concern": "x"}), msg)
		assert.Equal(t, "", p["region"], "message %q", msg)
	}
}

func TestShortSchemaIgnoresFullOnlyFields(t *testing.T) {
	p := Short.Extract(Short.Normalize(nil), "we are a beginner household of 4 in Texas")
	_, hasSize := p["householdSize"]
	_, hasExp := p["experience"]
	assert.False(t, hasSize)
	assert.False(t, hasExp)
	assert.Equal(t, "Family or household", p["preparingFor"])
	assert.Equal(t, "Texas", p["region"])
}
