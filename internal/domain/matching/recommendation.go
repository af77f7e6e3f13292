package matching

var recommendations = []struct {
	min  int
	text string
}{
	{90, "Exceptional match: the candidate covers nearly every requirement of the role."},
	{75, "Very good match: strong fit, only minor gaps to discuss."},
	{60, "Good match: solid base, a few skills should be confirmed in interview."},
	{40, "Average match: training is needed on the missing skills."},
}

const weakRecommendation = "Weak match: the profile does not fit this role."

// Recommendation returns the recruiter-facing summary for a score.
func Recommendation(score int) string {
	for _, r := range recommendations {
		if score >= r.min {
			return r.text
		}
	}
	return weakRecommendation
}
