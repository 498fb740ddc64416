package usecase

import (
	"sort"
	"strconv"
	"strings"

	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
)

// Qidiruv natijalari ro'yxat tartibini saqlaydi. To'g'ridan-to'g'ri moslik
// bo'lmasa, o'xshashlik bo'yicha eng yaxshilari qaytariladi.
const (
	minSimilarityScore = 5
	minFallbackScore   = 8
	maxFallbackResults = 6
)

type scoredVehicle struct {
	Vehicle entity.Vehicle
	Score   int
	Index   int
}

// searchVehicles erkin matn bo'yicha qidirish (marka, model, yil, kategoriya, dvigatel, tavsif)
func searchVehicles(vehicles []entity.Vehicle, query string) []entity.Vehicle {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	tokens := filterTokens(queryTokens(query))
	tokensNorm := normalizeTokens(tokens)
	compactQuery := normalizeAlphaNum(query)
	queryDigits := extractDigits(query)

	results := make([]entity.Vehicle, 0)
	var scored []scoredVehicle

	for i, v := range vehicles {
		title := strings.ToLower(v.Title())
		catLower := strings.ToLower(v.Category)
		engineLower := strings.ToLower(v.Specs.Engine)
		descLower := strings.ToLower(v.Description)
		titleCompact := normalizeAlphaNum(v.Title())
		catNorm := normalizeAlphaNum(v.Category)
		descNorm := normalizeAlphaNum(v.Description)

		if strings.Contains(title, query) ||
			strings.Contains(catLower, query) ||
			strings.Contains(engineLower, query) ||
			(compactQuery != "" && strings.Contains(titleCompact, compactQuery)) ||
			matchAllTokens(tokens, title, catLower, engineLower, descLower) {
			results = append(results, v.Clone())
			continue
		}

		// Yil bo'yicha qat'iy moslik
		if len(queryDigits) == 4 && strconv.Itoa(v.Year) == queryDigits {
			results = append(results, v.Clone())
			continue
		}

		score := similarityScore(tokensNorm, compactQuery, titleCompact, catNorm, descNorm)
		if score >= minSimilarityScore {
			scored = append(scored, scoredVehicle{Vehicle: v, Score: score, Index: i})
		}
	}

	if len(results) == 0 && len(scored) > 0 {
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Score > scored[j].Score
		})
		for _, sv := range scored {
			if sv.Score >= minFallbackScore && len(results) < maxFallbackResults {
				results = append(results, sv.Vehicle.Clone())
			}
		}
	}

	return results
}

func queryTokens(q string) []string {
	q = strings.ToLower(q)
	separators := []string{",", ".", "?", "!", ";", ":", "/", "\\", "-", "_"}
	for _, sep := range separators {
		q = strings.ReplaceAll(q, sep, " ")
	}

	var tokens []string
	for _, f := range strings.Fields(q) {
		if len(f) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// matchAllTokens har bir token kamida bitta maydonda bo'lishi kerak
func matchAllTokens(tokens []string, parts ...string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, t := range tokens {
		found := false
		for _, p := range parts {
			if strings.Contains(p, t) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func normalizeAlphaNum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return strings.ToLower(b.String())
}

func filterTokens(tokens []string) []string {
	stop := map[string]struct{}{
		"any": {}, "do": {}, "you": {}, "have": {}, "the": {}, "a": {},
		"show": {}, "me": {}, "for": {}, "with": {}, "is": {}, "there": {},
	}
	var out []string
	for _, t := range tokens {
		if _, skip := stop[t]; skip {
			continue
		}
		out = append(out, t)
	}
	return out
}

func normalizeTokens(tokens []string) []string {
	var out []string
	for _, t := range tokens {
		if n := normalizeAlphaNum(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func similarityScore(qTokens []string, compactQuery, titleCompact, catNorm, descNorm string) int {
	score := 0

	for _, qt := range qTokens {
		if qt == "" {
			continue
		}
		if strings.Contains(titleCompact, qt) {
			score += 4
			continue
		}
		if strings.Contains(catNorm, qt) || strings.Contains(descNorm, qt) {
			score += 2
		}
	}

	if compactQuery != "" {
		if lcs := longestCommonSubstringLength(compactQuery, titleCompact); lcs >= 3 {
			score += lcs
		}
	}

	return score
}

func extractDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func longestCommonSubstringLength(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	prev := make([]int, len(b)+1)
	best := 0
	for i := 1; i <= len(a); i++ {
		curr := make([]int, len(b)+1)
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > best {
					best = curr[j]
				}
			}
		}
		prev = curr
	}
	return best
}
