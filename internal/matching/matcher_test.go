package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCatalog() []Disease {
	return []Disease{
		{
			ID:                   "d1",
			Name:                 "Common Cold",
			Description:          "A viral infection of the upper respiratory tract",
			Precautions:          []string{"Rest well", "Stay hydrated"},
			RecommendedSpecialty: "General Physician",
			Symptoms:             []string{"Cough", "Runny Nose", "Sore Throat", "Headache"},
		},
		{
			ID:       "d2",
			Name:     "Influenza (Flu)",
			Symptoms: []string{"Fever", "Cough", "Fatigue", "Muscle Pain"},
		},
		{
			ID:       "d3",
			Name:     "Migraine",
			Symptoms: []string{"Headache", "Nausea"},
		},
		{
			ID:       "d4",
			Name:     "Eczema",
			Symptoms: []string{"Skin Rash", "Itching"},
		},
	}
}

func TestMatchEmptyInput(t *testing.T) {
	_, err := Match(nil, testCatalog())
	assert.ErrorIs(t, err, ErrNoSymptoms)

	_, err = Match([]string{}, testCatalog())
	assert.ErrorIs(t, err, ErrNoSymptoms)

	_, err = Match([]string{"  ", ""}, testCatalog())
	assert.ErrorIs(t, err, ErrNoSymptoms)
}

func TestMatchHalfOverlapScoresFifty(t *testing.T) {
	catalog := []Disease{{ID: "d", Name: "Test", Symptoms: []string{"Fever", "Cough"}}}

	results, err := Match([]string{"Fever"}, catalog)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, 50, results[0].MatchScore)
	assert.Equal(t, []string{"fever"}, results[0].MatchingSymptoms)
	assert.Equal(t, []string{"fever", "cough"}, results[0].TotalSymptoms)
}

func TestMatchExcludesZeroOverlap(t *testing.T) {
	results, err := Match([]string{"fever"}, testCatalog())
	assert.NoError(t, err)
	for _, r := range results {
		assert.NotEmpty(t, r.MatchingSymptoms)
		assert.NotEqual(t, "Eczema", r.Name)
	}
	assert.Len(t, results, 1) // only Influenza lists fever
}

func TestMatchCaseInsensitive(t *testing.T) {
	results, err := Match([]string{"HEADACHE", " nausea "}, testCatalog())
	assert.NoError(t, err)

	var migraine *Result
	for i := range results {
		if results[i].Name == "Migraine" {
			migraine = &results[i]
		}
	}
	assert.NotNil(t, migraine)
	assert.Equal(t, 100, migraine.MatchScore)
}

func TestMatchSortedDescendingWithinBounds(t *testing.T) {
	results, err := Match([]string{"headache", "cough", "fever", "nausea"}, testCatalog())
	assert.NoError(t, err)
	assert.NotEmpty(t, results)
	for i, r := range results {
		assert.GreaterOrEqual(t, r.MatchScore, 0)
		assert.LessOrEqual(t, r.MatchScore, 100)
		if i > 0 {
			assert.GreaterOrEqual(t, results[i-1].MatchScore, r.MatchScore)
		}
	}
	// Migraine matches 2/2, should rank first.
	assert.Equal(t, "Migraine", results[0].Name)
}

func TestMatchDuplicateReportsDoNotInflateScore(t *testing.T) {
	catalog := []Disease{{ID: "d", Name: "Test", Symptoms: []string{"Fever", "Cough"}}}
	results, err := Match([]string{"fever", "Fever", "FEVER"}, catalog)
	assert.NoError(t, err)
	assert.Equal(t, 50, results[0].MatchScore)
}

func TestMatchTiesKeepCatalogOrder(t *testing.T) {
	catalog := []Disease{
		{ID: "a", Name: "Alpha", Symptoms: []string{"Fever", "Cough"}},
		{ID: "b", Name: "Beta", Symptoms: []string{"Fever", "Nausea"}},
	}
	results, err := Match([]string{"fever"}, catalog)
	assert.NoError(t, err)
	assert.Equal(t, "Alpha", results[0].Name)
	assert.Equal(t, "Beta", results[1].Name)
}

func TestFallbackMatchedDisease(t *testing.T) {
	p := Fallback([]string{"cough"}, testCatalog())
	assert.Equal(t, "Common Cold", p.Disease)
	assert.Equal(t, 70, p.Confidence)
	assert.Equal(t, []string{"Rest well", "Stay hydrated"}, p.Precautions)
}

func TestFallbackGenericGuess(t *testing.T) {
	p := Fallback([]string{"toe pain"}, testCatalog())
	assert.Equal(t, "General Health Concern", p.Disease)
	assert.Equal(t, 50, p.Confidence)
	assert.Len(t, p.Precautions, 4)
}
