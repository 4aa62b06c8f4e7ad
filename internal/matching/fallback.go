package matching

// Prediction mirrors the response shape of the external disease predictor so
// the degraded mode is indistinguishable to callers apart from confidence.
type Prediction struct {
	Disease     string   `json:"disease"`
	Confidence  int      `json:"confidence"`
	Description string   `json:"description"`
	Precautions []string `json:"precautions"`
}

const (
	fallbackConfidenceMatched = 70
	fallbackConfidenceGeneric = 50
)

// Fallback produces a single best-guess prediction when the external
// predictor is unavailable: the first catalog disease sharing any reported
// symptom, or a generic guess when nothing matches. It is a degraded mode
// only; Match remains the primary algorithm.
func Fallback(reported []string, catalog []Disease) Prediction {
	reportedSet := make(map[string]struct{}, len(reported))
	for _, s := range reported {
		reportedSet[normalize(s)] = struct{}{}
	}

	for _, d := range catalog {
		for _, name := range d.Symptoms {
			if _, ok := reportedSet[normalize(name)]; ok {
				return Prediction{
					Disease:     d.Name,
					Confidence:  fallbackConfidenceMatched,
					Description: d.Description,
					Precautions: d.Precautions,
				}
			}
		}
	}

	return Prediction{
		Disease:     "General Health Concern",
		Confidence:  fallbackConfidenceGeneric,
		Description: "Based on your symptoms, a general health consultation is recommended.",
		Precautions: []string{
			"Rest and stay hydrated",
			"Monitor your symptoms",
			"Consult a healthcare professional if symptoms persist",
			"Avoid self-medication",
		},
	}
}
