package engine

import (
	"math/rand"
	"sort"
	"strings"
	"time"

	"poseloop/internal/domain"
)

// SessionPlan is the ordered pose sequence a session will run through.
// Fallback is set when match terms were supplied but no pose scored
// against them, so the whole pool was used instead. The session is
// still usable; callers can surface the substitution if they care.
type SessionPlan struct {
	Poses    []domain.Pose
	Fallback bool
}

// Score computes the relevance of a keyword set to a set of match
// terms. Every (keyword, term) pair contributes independently: 2 for a
// case-insensitive exact match, 1 when either string contains the
// other, 0 otherwise.
func Score(keywords, terms []string) int {
	total := 0
	for _, kw := range keywords {
		k := strings.ToLower(kw)
		for _, term := range terms {
			t := strings.ToLower(term)
			switch {
			case k == t:
				total += 2
			case strings.Contains(k, t) || strings.Contains(t, k):
				total++
			}
		}
	}
	return total
}

// SelectSession returns exactly count poses drawn from pool, ranked by
// keyword relevance to matchTerms. See PlanSession for the rules.
func SelectSession(pool []domain.Pose, matchTerms []string, count int, randomize bool, rng *rand.Rand) []domain.Pose {
	return PlanSession(pool, matchTerms, count, randomize, rng).Poses
}

// PlanSession builds the ordered sequence for a session:
//
//   - with no match terms, every pose in the pool is eligible;
//   - with match terms, poses are scored by Score and zero-scored
//     poses are dropped — unless that drops everything, in which case
//     the full pool is eligible again (a session must never come out
//     empty just because no keyword matched);
//   - eligible poses are ordered by score, highest first; when
//     randomize is set, order is shuffled independently within each
//     equal-score group, keeping the most relevant poses earlier;
//     otherwise pool order is kept within groups;
//   - the eligible cycle repeats until count poses are accumulated.
//
// An empty pool or a non-positive count yields an empty plan. A nil
// rng gets seeded from the wall clock; tests pass a fixed seed.
func PlanSession(pool []domain.Pose, matchTerms []string, count int, randomize bool, rng *rand.Rand) SessionPlan {
	if len(pool) == 0 || count <= 0 {
		return SessionPlan{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	eligible, fallback := rankPool(pool, matchTerms)
	if randomize {
		shuffleWithinScoreGroups(eligible, rng)
	}

	out := make([]domain.Pose, 0, count)
	for len(out) < count {
		for _, sp := range eligible {
			out = append(out, sp.pose)
			if len(out) == count {
				break
			}
		}
	}
	return SessionPlan{Poses: out, Fallback: fallback}
}

type scoredPose struct {
	pose  domain.Pose
	score int
	order int // position in the original pool
}

// rankPool scores the pool against the match terms and returns the
// eligible poses sorted by score descending, pool order within equal
// scores. The second return value reports the full-pool fallback.
func rankPool(pool []domain.Pose, matchTerms []string) ([]scoredPose, bool) {
	if len(matchTerms) == 0 {
		return wholePool(pool), false
	}

	scored := make([]scoredPose, 0, len(pool))
	for i, p := range pool {
		s := Score(p.Keywords, matchTerms)
		if s > 0 {
			scored = append(scored, scoredPose{pose: p, score: s, order: i})
		}
	}
	if len(scored) == 0 {
		return wholePool(pool), true
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].order < scored[j].order
	})
	return scored, false
}

func wholePool(pool []domain.Pose) []scoredPose {
	all := make([]scoredPose, len(pool))
	for i, p := range pool {
		all[i] = scoredPose{pose: p, order: i}
	}
	return all
}

// shuffleWithinScoreGroups permutes each run of equal-score poses
// independently, leaving the group order (highest score first) intact.
func shuffleWithinScoreGroups(ranked []scoredPose, rng *rand.Rand) {
	start := 0
	for start < len(ranked) {
		end := start + 1
		for end < len(ranked) && ranked[end].score == ranked[start].score {
			end++
		}
		group := ranked[start:end]
		rng.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})
		start = end
	}
}
