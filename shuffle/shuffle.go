// Package shuffle arranges question sequences under a limit on consecutive
// identical correct-answer positions.
package shuffle

import (
	"math/rand"

	"github.com/examtools/quizshuffle/models"
	"github.com/examtools/quizshuffle/utils"
)

// maxAttempts bounds the randomized search; past it the last arrangement is
// accepted as-is.
const maxAttempts = 2000

// WithConstraint returns a shuffled copy of questions in which the correct
// answer does not sit in the same position more than limit times in a row.
// If no satisfying arrangement turns up within maxAttempts reshuffles, the
// last one is returned with an advisory log, so generation always proceeds.
func WithConstraint(questions []*models.Question, limit int) []*models.Question {
	shuffled := make([]*models.Question, len(questions))
	copy(shuffled, questions)
	reshuffle(shuffled)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if constraintOK(shuffled, limit) {
			if attempt > 1 {
				utils.LogShuffle("Constraint satisfied on attempt %d", attempt)
			}
			return shuffled
		}
		reshuffle(shuffled)
	}

	utils.LogShuffle("Consecutive-answer limit not satisfied after %d attempts, keeping last arrangement (non-fatal)", maxAttempts)
	return shuffled
}

// reshuffle permutes qs in place.
func reshuffle(qs []*models.Question) {
	for i := len(qs) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		qs[i], qs[j] = qs[j], qs[i]
	}
}

// constraintOK reports whether no correct-answer position repeats into a
// run of limit or more consecutive questions. Questions without a key
// position (true/false) break a run: the counter restarts after them.
func constraintOK(qs []*models.Question, limit int) bool {
	consecutive := 0
	lastPos := 0
	haveLast := false

	for _, q := range qs {
		pos, ok := q.CorrectAnswerPosition()
		if !ok {
			consecutive = 0
			haveLast = false
			continue
		}
		if haveLast && pos == lastPos {
			consecutive++
			if consecutive >= limit {
				return false
			}
		} else {
			consecutive = 1
		}
		lastPos = pos
		haveLast = true
	}
	return true
}
