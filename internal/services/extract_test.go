package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleReply = `I understand you're experiencing discomfort.

[SYMPTOMS: headache, Nausea , sensitivity to light]
[SPECIALIST: Neurologist]

Could you tell me how long this has been going on?`

func TestExtractSymptoms(t *testing.T) {
	assert.Equal(t,
		[]string{"headache", "nausea", "sensitivity to light"},
		ExtractSymptoms(sampleReply))
}

func TestExtractSymptomsAbsent(t *testing.T) {
	assert.Empty(t, ExtractSymptoms("no directives here"))
}

func TestExtractSymptomsFirstMatchOnly(t *testing.T) {
	text := "[SYMPTOMS: fever] and later [SYMPTOMS: cough]"
	assert.Equal(t, []string{"fever"}, ExtractSymptoms(text))
}

func TestExtractSpecialist(t *testing.T) {
	assert.Equal(t, "Neurologist", ExtractSpecialist(sampleReply))
	assert.Equal(t, "", ExtractSpecialist("nothing"))
}

func TestIsUrgentCaseInsensitive(t *testing.T) {
	assert.True(t, IsUrgent("[URGENT: true]"))
	assert.True(t, IsUrgent("[urgent: TRUE]"))
	assert.False(t, IsUrgent("[URGENT: false]"))
	assert.False(t, IsUrgent("urgent: true"))
}

func TestStripDirectives(t *testing.T) {
	cleaned := StripDirectives(sampleReply)
	assert.NotContains(t, cleaned, "[SYMPTOMS")
	assert.NotContains(t, cleaned, "[SPECIALIST")
	assert.Contains(t, cleaned, "I understand you're experiencing discomfort.")
	assert.Contains(t, cleaned, "Could you tell me how long this has been going on?")
}

func TestStripDirectivesRemovesUnparsedMarkers(t *testing.T) {
	// An URGENT: false marker never matches IsUrgent but is still stripped.
	cleaned := StripDirectives("stay calm [URGENT: false] please")
	assert.Equal(t, "stay calm  please", cleaned)
}
