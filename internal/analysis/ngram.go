package analysis

import (
	"slices"
	"sort"
	"strings"

	"github.com/SeamusWaldron/cubesim"
)

// maxOccurrences caps the sample occurrences kept per n-gram.
const maxOccurrences = 10

// NGram is a move sequence that occurs more than once.
type NGram struct {
	N           int               `json:"n"`
	Sequence    []string          `json:"sequence"`
	Count       int               `json:"count"`
	Occurrences []NGramOccurrence `json:"occurrences,omitempty"`

	tokens []uint8
}

// Notation returns the sequence as space-separated notation.
func (g NGram) Notation() string {
	return strings.Join(g.Sequence, " ")
}

// NGramOccurrence is where an n-gram was found.
type NGramOccurrence struct {
	SolveID    string `json:"solve_id,omitempty"`
	StartIndex int    `json:"start_index"`
	TsMs       int64  `json:"ts_ms"`
}

// NGramReport holds the most frequent n-grams keyed by length.
type NGramReport struct {
	TopNGrams map[int][]NGram `json:"top_ngrams"`
}

// moveToken packs a move into a byte: layer index times two, plus one for
// counter-clockwise.
func moveToken(m cubesim.Move) uint8 {
	t := uint8(slices.Index(cubesim.Faces, m.Face)) * 2
	if !m.Clockwise {
		t++
	}
	return t
}

func moveFromToken(t uint8) cubesim.Move {
	return cubesim.Move{Face: cubesim.Faces[t/2], Clockwise: t%2 == 0}
}

// RollingHash is a Rabin-Karp hash over a sliding window of tokens.
type RollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1)
	window []uint8
	n      int
}

// NewRollingHash creates a rolling hash for windows of n tokens.
func NewRollingHash(n int) *RollingHash {
	rh := &RollingHash{base: 31, n: n, window: make([]uint8, 0, n), pow: 1}
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}
	return rh
}

// Roll pushes token, dropping the oldest one once the window is full.
func (rh *RollingHash) Roll(token uint8) {
	if len(rh.window) < rh.n {
		rh.window = append(rh.window, token)
		rh.hash = rh.hash*rh.base + uint64(token)
		return
	}

	old := rh.window[0]
	rh.hash = (rh.hash-uint64(old)*rh.pow)*rh.base + uint64(token)
	copy(rh.window, rh.window[1:])
	rh.window[rh.n-1] = token
}

// Hash returns the hash of the current window.
func (rh *RollingHash) Hash() uint64 {
	return rh.hash
}

// Window returns a copy of the current window.
func (rh *RollingHash) Window() []uint8 {
	return slices.Clone(rh.window)
}

// Ready reports whether the window is full.
func (rh *RollingHash) Ready() bool {
	return len(rh.window) == rh.n
}

// MineNGrams finds the topK most frequent repeated sequences for each
// length in [minN, maxN].
func MineNGrams(moves []TimedMove, minN, maxN, topK int) *NGramReport {
	report := &NGramReport{TopNGrams: make(map[int][]NGram)}

	tokens := make([]uint8, len(moves))
	for i, m := range moves {
		tokens[i] = moveToken(m.Move)
	}

	for n := max(minN, 1); n <= maxN && n <= len(tokens); n++ {
		if grams := mineN(tokens, moves, n, topK); len(grams) > 0 {
			report.TopNGrams[n] = grams
		}
	}
	return report
}

func mineN(tokens []uint8, moves []TimedMove, n, topK int) []NGram {
	buckets := make(map[uint64][]*NGram)
	rh := NewRollingHash(n)

	for i, t := range tokens {
		rh.Roll(t)
		if !rh.Ready() {
			continue
		}

		start := i - n + 1
		occ := NGramOccurrence{StartIndex: start, TsMs: moves[start].TsMs}
		h := rh.Hash()
		window := rh.Window()

		var found *NGram
		for _, g := range buckets[h] {
			if slices.Equal(g.tokens, window) {
				found = g
				break
			}
		}
		if found == nil {
			found = &NGram{N: n, tokens: window}
			buckets[h] = append(buckets[h], found)
		}
		found.Count++
		if len(found.Occurrences) < maxOccurrences {
			found.Occurrences = append(found.Occurrences, occ)
		}
	}

	var grams []NGram
	for _, bucket := range buckets {
		for _, g := range bucket {
			if g.Count >= 2 {
				grams = append(grams, *g)
			}
		}
	}
	return topNGrams(grams, topK)
}

// MineNGramsAcrossSolves merges per-solve reports, keyed by solve ID, into
// one report of the topK sequences per length.
func MineNGramsAcrossSolves(reports map[string]*NGramReport, topK int) *NGramReport {
	merged := &NGramReport{TopNGrams: make(map[int][]NGram)}

	// Walk solves in ID order so sample occurrences are stable.
	ids := make([]string, 0, len(reports))
	for id := range reports {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	byN := make(map[int]map[string]*NGram)
	for _, id := range ids {
		for n, grams := range reports[id].TopNGrams {
			if byN[n] == nil {
				byN[n] = make(map[string]*NGram)
			}
			for _, g := range grams {
				key := string(g.tokens)
				agg, ok := byN[n][key]
				if !ok {
					agg = &NGram{N: n, tokens: g.tokens}
					byN[n][key] = agg
				}
				agg.Count += g.Count
				for _, occ := range g.Occurrences {
					if len(agg.Occurrences) >= maxOccurrences {
						break
					}
					occ.SolveID = id
					agg.Occurrences = append(agg.Occurrences, occ)
				}
			}
		}
	}

	for n, aggs := range byN {
		grams := make([]NGram, 0, len(aggs))
		for _, g := range aggs {
			grams = append(grams, *g)
		}
		if top := topNGrams(grams, topK); len(top) > 0 {
			merged.TopNGrams[n] = top
		}
	}
	return merged
}

// topNGrams sorts by count, breaking ties by sequence, keeps topK and fills
// in the notation.
func topNGrams(grams []NGram, topK int) []NGram {
	sort.Slice(grams, func(i, j int) bool {
		if grams[i].Count != grams[j].Count {
			return grams[i].Count > grams[j].Count
		}
		return string(grams[i].tokens) < string(grams[j].tokens)
	})
	if len(grams) > topK {
		grams = grams[:topK]
	}
	for i := range grams {
		seq := make([]string, len(grams[i].tokens))
		for j, t := range grams[i].tokens {
			seq[j] = moveFromToken(t).Notation()
		}
		grams[i].Sequence = seq
	}
	return grams
}
