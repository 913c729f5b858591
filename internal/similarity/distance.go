package similarity

// LevenshteinDistance counts the single-rune insertions, deletions and
// substitutions needed to turn s1 into s2.
func LevenshteinDistance(s1, s2 string) int {
	r1, r2 := []rune(s1), []rune(s2)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}
	if len(r1) < len(r2) {
		r1, r2 = r2, r1
	}

	// Two rows of the edit matrix suffice.
	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(r2)]
}

// LevenshteinSimilarity scales the edit distance into [0, 1] by the longer
// name's length.
func LevenshteinSimilarity(s1, s2 string) float64 {
	n := max(len([]rune(s1)), len([]rune(s2)))
	if n == 0 {
		return 1.0
	}
	return 1.0 - float64(LevenshteinDistance(s1, s2))/float64(n)
}

// JaroSimilarity returns the Jaro similarity of s1 and s2 in [0, 1].
func JaroSimilarity(s1, s2 string) float64 {
	r1, r2 := []rune(s1), []rune(s2)
	if len(r1) == 0 && len(r2) == 0 {
		return 1.0
	}
	if len(r1) == 0 || len(r2) == 0 {
		return 0.0
	}

	window := max(0, max(len(r1), len(r2))/2-1)
	m1 := make([]bool, len(r1))
	m2 := make([]bool, len(r2))

	matches := 0
	for i := range r1 {
		for j := max(0, i-window); j < min(len(r2), i+window+1); j++ {
			if m2[j] || r1[i] != r2[j] {
				continue
			}
			m1[i], m2[j] = true, true
			matches++
			break
		}
	}
	if matches == 0 {
		return 0.0
	}

	transpositions, k := 0, 0
	for i := range r1 {
		if !m1[i] {
			continue
		}
		for !m2[k] {
			k++
		}
		if r1[i] != r2[k] {
			transpositions++
		}
		k++
	}

	m := float64(matches)
	return (m/float64(len(r1)) + m/float64(len(r2)) + (m-float64(transpositions/2))/m) / 3.0
}

// JaroWinkler boosts the Jaro score for a shared prefix of up to four runes.
func JaroWinkler(s1, s2 string) float64 {
	const scale = 0.1

	jaro := JaroSimilarity(s1, s2)
	r1, r2 := []rune(s1), []rune(s2)
	prefix := 0
	for i := range min(4, len(r1), len(r2)) {
		if r1[i] != r2[i] {
			break
		}
		prefix++
	}
	return jaro + float64(prefix)*scale*(1.0-jaro)
}
