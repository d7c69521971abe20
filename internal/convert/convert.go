// Package convert implements the conversion core: a Viterbi-style dynamic
// program that segments a syllable buffer into the maximum-likelihood
// sequence of tree- (and source-) indexed phrases (SPEC_FULL.md §4.G).
package convert

import (
	"math"

	"github.com/chewing/zhuyin-core/internal/candidate"
	"github.com/chewing/zhuyin-core/internal/dict"
	"github.com/chewing/zhuyin-core/internal/phone"
	"github.com/chewing/zhuyin-core/internal/tree"
)

// Phrase is one segment of a resulting segmentation: span [Start, End) over
// the input syllable slice.
type Phrase struct {
	Text       string
	Start, End int
	Freq       uint32
}

// lengthBonus is this implementation's fixed schedule for SPEC_FULL.md
// §4.G's tunable length_bonus: monotonically non-decreasing in phrase
// length, small enough to never overturn a real frequency advantage (a
// factor of ~1.05 in freq already dominates one extra syllable of bonus)
// but decisive when two segmentations tie exactly on summed log-frequency.
// See DESIGN.md for why this schedule and not another.
func lengthBonus(length int) float64 {
	return 0.05 * float64(length-1)
}

// score combines a candidate's frequency and span length into the
// per-phrase contribution to a segmentation's total score.
func score(freq uint32, length int) float64 {
	if freq == 0 {
		freq = 1
	}
	return math.Log(float64(freq)) + lengthBonus(length)
}

// Convert runs the DP search over syllables and returns the chosen
// segmentation in left-to-right order. It always succeeds (Testable
// Property 5): a position with no tree- or source-indexed phrase of any
// length falls back to a synthetic single-syllable phrase of frequency 1.
func Convert(tr *tree.Tree, d *dict.Dict, syllables []phone.Phone, sources ...candidate.Source) []Phrase {
	l := len(syllables)
	if l == 0 {
		return nil
	}

	best := make([]float64, l+1)
	back := make([]Phrase, l+1)
	for i := 1; i <= l; i++ {
		best[i] = math.Inf(-1)
	}

	for i := 0; i < l; i++ {
		if math.IsInf(best[i], -1) {
			continue // unreachable start position
		}

		node := tree.Root
		nodeValid := true
		matchedAny := false

		for j := i; j < l; j++ {
			if nodeValid {
				child, ok := tr.LookupChild(node, uint16(syllables[j]))
				if ok {
					node = child
				} else {
					nodeValid = false
				}
			}

			span := syllables[i : j+1]
			it := candidate.New(tr, d, node, nodeValid, span, sources...)
			c, ok := it.Next()
			if !ok {
				if !nodeValid && len(sources) == 0 {
					// Without a live tree node or any source, no longer
					// span starting at i can ever match either.
					break
				}
				continue
			}

			matchedAny = true
			length := j - i + 1
			end := j + 1
			candidateScore := best[i] + score(c.Freq, length)
			relax(best, back, end, candidateScore, Phrase{Text: c.Text, Start: i, End: end, Freq: c.Freq})
		}

		if !matchedAny {
			end := i + 1
			single := Phrase{Text: syllables[i].ToUTF8(), Start: i, End: end, Freq: 1}
			relax(best, back, end, best[i]+score(1, 1), single)
		}
	}

	return reconstruct(back, l)
}

// relax updates best[end]/back[end] if candidate is an improvement:
// strictly higher score always wins. An exact tie keeps whichever candidate
// was recorded first; lengthBonus already makes a longer phrase strictly
// score higher than the singletons it would otherwise lose to (Testable
// Property 6), so a same-score, same-start tie never needs a separate
// length tie-break here.
func relax(best []float64, back []Phrase, end int, candidateScore float64, p Phrase) {
	if candidateScore > best[end] {
		best[end] = candidateScore
		back[end] = p
	}
}

func reconstruct(back []Phrase, l int) []Phrase {
	var out []Phrase
	for end := l; end > 0; {
		p := back[end]
		out = append(out, p)
		end = p.Start
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
