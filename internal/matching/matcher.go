package matching

import (
	"errors"
	"math"
	"sort"
	"strings"
)

// ErrNoSymptoms is returned when the reported symptom list is empty. An empty
// list must not degenerate into a wildcard match.
var ErrNoSymptoms = errors.New("at least one symptom is required")

// Disease is a catalog record the matcher scores against. Symptoms holds the
// disease's full symptom names as stored (title-cased).
type Disease struct {
	ID                   string
	Name                 string
	Description          string
	Precautions          []string
	RecommendedSpecialty string
	Symptoms             []string
}

// Result is one ranked candidate disease. MatchingSymptoms and TotalSymptoms
// are lower-cased for display, mirroring the comparison form.
type Result struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	Precautions          []string `json:"precautions"`
	RecommendedSpecialty string   `json:"recommendedSpecialty,omitempty"`
	MatchingSymptoms     []string `json:"matchingSymptoms"`
	TotalSymptoms        []string `json:"totalSymptoms"`
	MatchScore           int      `json:"matchScore"`
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Match scores the catalog against the reported symptom names. A disease is a
// candidate only if it shares at least one symptom (case-insensitive) with
// the reported list; candidates score round(100 * matching / total) and are
// returned in descending score order. Ties keep catalog order (stable sort).
func Match(reported []string, catalog []Disease) ([]Result, error) {
	if len(reported) == 0 {
		return nil, ErrNoSymptoms
	}

	reportedSet := make(map[string]struct{}, len(reported))
	for _, s := range reported {
		if n := normalize(s); n != "" {
			reportedSet[n] = struct{}{}
		}
	}
	if len(reportedSet) == 0 {
		return nil, ErrNoSymptoms
	}

	results := make([]Result, 0, len(catalog))
	for _, d := range catalog {
		if len(d.Symptoms) == 0 {
			continue
		}
		total := make([]string, 0, len(d.Symptoms))
		matching := make([]string, 0, len(d.Symptoms))
		for _, name := range d.Symptoms {
			n := normalize(name)
			total = append(total, n)
			if _, ok := reportedSet[n]; ok {
				matching = append(matching, n)
			}
		}
		if len(matching) == 0 {
			continue
		}
		score := int(math.Round(float64(len(matching)) / float64(len(total)) * 100))
		results = append(results, Result{
			ID:                   d.ID,
			Name:                 d.Name,
			Description:          d.Description,
			Precautions:          d.Precautions,
			RecommendedSpecialty: d.RecommendedSpecialty,
			MatchingSymptoms:     matching,
			TotalSymptoms:        total,
			MatchScore:           score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	return results, nil
}
