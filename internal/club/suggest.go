package club

import (
	"slices"
	"strings"
	"unicode"
)

const (
	// minSuggestionScore is the lowest similarity worth offering as a suggestion.
	minSuggestionScore = 0.3
	tokenMatchScore    = 0.8
)

// PlayerSuggestion is a player whose name resembles a search query.
type PlayerSuggestion struct {
	Player     Player
	Confidence float64
}

// SuggestPlayers ranks players by how closely their names resemble query and
// returns at most limit of them, best first. Players below a minimal
// similarity are left out.
func SuggestPlayers(query string, players []Player, limit int) []PlayerSuggestion {
	query = normalizeName(query)
	if query == "" || limit <= 0 {
		return nil
	}

	var suggestions []PlayerSuggestion
	for _, player := range players {
		score := nameSimilarity(query, normalizeName(player.Name))
		if score > minSuggestionScore {
			suggestions = append(suggestions, PlayerSuggestion{Player: player, Confidence: score})
		}
	}

	slices.SortStableFunc(suggestions, func(a, b PlayerSuggestion) int {
		switch {
		case a.Confidence > b.Confidence:
			return -1
		case a.Confidence < b.Confidence:
			return 1
		}
		return 0
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// nameSimilarity averages whole-name edit similarity with first/last name
// token overlap, so "bob" still resembles "Bob Johnson".
func nameSimilarity(query, name string) float64 {
	whole := stringSimilarity(query, name)
	tokens := tokenSimilarity(query, name)
	return (whole + tokens) / 2
}

// normalizeName lowercases name and keeps only letters and single spaces.
func normalizeName(name string) string {
	var result strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			result.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(result.String()), " ")
}

func stringSimilarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}
	r1, r2 := []rune(s1), []rune(s2)
	maxLen := max(len(r1), len(r2))
	if len(r1) == 0 || len(r2) == 0 {
		return 0.0
	}
	return 1.0 - float64(levenshteinDistance(r1, r2))/float64(maxLen)
}

// tokenSimilarity is the share of query tokens that closely match a token of
// the name.
func tokenSimilarity(query, name string) float64 {
	queryTokens := strings.Fields(query)
	nameTokens := strings.Fields(name)
	if len(queryTokens) == 0 || len(nameTokens) == 0 {
		return 0.0
	}

	var matchCount int
	for _, qt := range queryTokens {
		for _, nt := range nameTokens {
			if stringSimilarity(qt, nt) >= tokenMatchScore {
				matchCount++
				break
			}
		}
	}
	return float64(matchCount) / float64(len(queryTokens))
}

func levenshteinDistance(s1, s2 []rune) int {
	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(s2)]
}
