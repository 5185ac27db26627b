// Package academic filters grade records and rolls credits up.
// CGPA and SGPA are opaque scalars from the data provider: they are passed through, not derived.
package academic

import "sort"

// FilterByTerm returns the records of `term`, keeping input order.
// An empty term or AllTerms returns every record.
func FilterByTerm(grades []GradeRecord, term string) []GradeRecord {
	if term == "" || term == AllTerms {
		all := make([]GradeRecord, len(grades))
		copy(all, grades)
		return all
	}
	filtered := make([]GradeRecord, 0)
	for _, g := range grades {
		if g.Term == term {
			filtered = append(filtered, g)
		}
	}
	return filtered
}

// DistinctTerms returns each term once, sorted with sort.Strings (byte-wise, so "Fall 2024" < "Spring 2024").
// The order is lexicographic, not chronological.
func DistinctTerms(grades []GradeRecord) []string {
	seen := make(map[string]struct{}, len(grades))
	terms := make([]string, 0)
	for _, g := range grades {
		if _, ok := seen[g.Term]; ok {
			continue
		}
		seen[g.Term] = struct{}{}
		terms = append(terms, g.Term)
	}
	sort.Strings(terms)
	return terms
}

// CreditCompletionRatio is completed/total, or 0 when total is not positive.
// The caller guarantees completed <= total; the ratio is not clamped.
func CreditCompletionRatio(completed, total float64) float64 {
	if total > 0 {
		return completed / total
	}
	return 0
}

// NewRollup derives the summary scalars of a Dashboard.
func NewRollup(d Dashboard) Rollup {
	return Rollup{
		CGPA:             d.CGPA,
		SGPA:             d.SGPA,
		TotalCredits:     d.TotalCredits,
		CompletedCredits: d.CompletedCredits,
		CompletionRatio:  CreditCompletionRatio(d.CompletedCredits, d.TotalCredits),
	}
}

// View builds the academic screen for the selected term.
func View(d Dashboard, term string) TermView {
	if term == "" {
		term = AllTerms
	}
	return TermView{
		Rollup: NewRollup(d),
		Term:   term,
		Terms:  DistinctTerms(d.Grades),
		Grades: FilterByTerm(d.Grades, term),
	}
}

// TermCredits sums the credits of each term.
func TermCredits(grades []GradeRecord) map[string]float64 {
	credits := make(map[string]float64)
	for _, g := range grades {
		credits[g.Term] += g.Credits
	}
	return credits
}
