package nameindex

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/fpl-assistant/internal/domain/refdata"
)

// MaxCandidates caps how many ranked candidates callers should surface when
// a query stays ambiguous.
const MaxCandidates = 10

var ErrEmptyQuery = crerr.New("player name query is empty")

const (
	substringWeight = 0.9
	fuzzyWeight     = 0.8
	fuzzyFloor      = 0.6
	// fuzzyTrigger gates the third tier: it only runs when the earlier
	// tiers found nothing or their best candidate scored below this.
	fuzzyTrigger = 0.7

	unambiguousFloor      = 0.95
	unambiguousSeparation = 0.2
)

// Match is one ranked resolver candidate. Score is in (0, 1].
type Match struct {
	Player refdata.Player
	Score  float64
}

type entry struct {
	key     string
	players []int
}

// Index maps normalized name keys to player positions. Keys collide across
// players on purpose (shared surnames); ranking sorts that out downstream.
// The index is rebuilt wholesale after every reference-data load and never
// patched, so it needs no locking.
type Index struct {
	players []refdata.Player
	entries []entry
	byKey   map[string]int
}

// Normalize lowercases, trims, and collapses internal whitespace.
func Normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Build indexes every player under up to four keys: the display name, the
// full first+last name, the surname alone, and first name + display name.
// The last one covers players whose display name is not their surname.
func Build(players []refdata.Player) *Index {
	idx := &Index{
		players: players,
		byKey:   make(map[string]int, len(players)*4),
	}

	for i, p := range players {
		idx.add(Normalize(p.WebName), i)
		idx.add(Normalize(p.FirstName+" "+p.SecondName), i)
		idx.add(Normalize(p.SecondName), i)
		idx.add(Normalize(p.FirstName+" "+p.WebName), i)
	}

	return idx
}

func (idx *Index) add(key string, player int) {
	if key == "" {
		return
	}

	pos, ok := idx.byKey[key]
	if !ok {
		idx.byKey[key] = len(idx.entries)
		idx.entries = append(idx.entries, entry{key: key, players: []int{player}})
		return
	}

	for _, existing := range idx.entries[pos].players {
		if existing == player {
			return
		}
	}
	idx.entries[pos].players = append(idx.entries[pos].players, player)
}

// strategy scores index keys against a normalized query. Each one is pure:
// same query and index, same scores.
type strategy func(query string, idx *Index) map[int]float64

func exactStrategy(query string, idx *Index) map[int]float64 {
	pos, ok := idx.byKey[query]
	if !ok {
		return nil
	}

	scores := make(map[int]float64, len(idx.entries[pos].players))
	for _, p := range idx.entries[pos].players {
		scores[p] = 1.0
	}
	return scores
}

// substringStrategy scores containment either way round, weighted by length
// ratio so a three-letter query buried in a long key ranks low.
func substringStrategy(query string, idx *Index) map[int]float64 {
	scores := make(map[int]float64)
	for _, e := range idx.entries {
		if !strings.Contains(e.key, query) && !strings.Contains(query, e.key) {
			continue
		}

		shorter, longer := len(query), len(e.key)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		score := float64(shorter) / float64(longer) * substringWeight
		mergeScores(scores, e.players, score)
	}
	return scores
}

// fuzzyStrategy scores edit-distance similarity, weighted below the
// substring ceiling so tier order survives numerically close ratios.
func fuzzyStrategy(query string, idx *Index) map[int]float64 {
	scores := make(map[int]float64)
	for _, e := range idx.entries {
		ratio := similarity(query, e.key)
		if ratio < fuzzyFloor {
			continue
		}
		mergeScores(scores, e.players, ratio*fuzzyWeight)
	}
	return scores
}

// mergeScores keeps the best score per player. Multiple matching keys must
// not inflate a player's ranking.
func mergeScores(scores map[int]float64, players []int, score float64) {
	for _, p := range players {
		if score > scores[p] {
			scores[p] = score
		}
	}
}

func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1.0
	}

	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}

// Resolve ranks players against a free-text query. Tiers run in order:
// exact key match, substring containment, then fuzzy similarity when the
// earlier tiers came up empty or unconvincing. Ties keep player insertion
// order, which just reflects upstream data order.
func (idx *Index) Resolve(query string) ([]Match, error) {
	normalized := Normalize(query)
	if normalized == "" {
		return nil, ErrEmptyQuery
	}

	scores := exactStrategy(normalized, idx)
	if len(scores) == 0 {
		scores = substringStrategy(normalized, idx)
	}

	if len(scores) == 0 || bestScore(scores) < fuzzyTrigger {
		for p, score := range fuzzyStrategy(normalized, idx) {
			if score > scores[p] {
				if scores == nil {
					scores = make(map[int]float64)
				}
				scores[p] = score
			}
		}
	}

	matches := make([]Match, 0, len(scores))
	for p := range idx.players {
		if score, ok := scores[p]; ok {
			matches = append(matches, Match{Player: idx.players[p], Score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches, nil
}

func bestScore(scores map[int]float64) float64 {
	best := 0.0
	for _, s := range scores {
		if s > best {
			best = s
		}
	}
	return best
}

// Unambiguous reports whether the ranked result can be auto-selected: a
// single candidate, or a top score at least 0.95 that also clears the
// runner-up by more than 0.2. Both floors must hold; anything else goes
// back to the caller as a candidate list.
func Unambiguous(matches []Match) bool {
	switch len(matches) {
	case 0:
		return false
	case 1:
		return true
	}

	top, second := matches[0].Score, matches[1].Score
	return top >= unambiguousFloor && top-second > unambiguousSeparation
}
