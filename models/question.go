package models

import (
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"unicode"
)

// Patterns that identify a true/false question: alternatives carry a fixed
// V./F. labeling, or the block switches on a gabarito conditional. Those
// questions keep their alternative order.
var vfPattern = regexp.MustCompile(
	`\\ti\[V\.\]|\\ti\[F\.\]|\\doneitem\[V\.\]|\\doneitem\[F\.\]|\\ifnum\\gabarito`)

// First answerlist environment of a question: begin line, item region,
// end line.
var answerlistBlock = regexp.MustCompile(
	`(?s)(\\begin\{answerlist\}[^\n]*\n)(.*?)(\n?[ \t]*\\end\{answerlist\})`)

// Start of an individual alternative inside the item region. The region is
// cut at the start offset of each match; itemMarker re-absorbs whatever
// indentation is left at the head of a piece.
var itemStart = regexp.MustCompile(`(?m)[ \t]*\\(?:ti|di)(?:\[[^\]]*\])?(?:\s|$)`)

// Marker and optional [label] at the head of a cut piece. The label is not
// captured: alternatives are re-rendered without it.
var itemMarker = regexp.MustCompile(`^[ \t]*(\\(?:ti|di))(?:\[[^\]]*\])?`)

// Question is one extracted question block, spanning the line that opens it
// through its matching closing brace. Content is treated as immutable;
// derived properties are computed once and cached, so repeated queries are
// cheap and safe from any goroutine.
type Question struct {
	Content string

	vfOnce sync.Once
	vf     bool

	listOnce   sync.Once
	listFound  bool
	itemsStart int
	itemsEnd   int
	items      []AnswerItem
}

// IsTrueFalse reports whether the question carries fixed true/false
// alternatives.
func (q *Question) IsTrueFalse() bool {
	q.vfOnce.Do(func() {
		q.vf = vfPattern.MatchString(q.Content)
	})
	return q.vf
}

func (q *Question) IsMultipleChoice() bool {
	return !q.IsTrueFalse()
}

// parseAnswerlist locates the first answerlist block and splits its item
// region into alternatives. Runs once per Question.
func (q *Question) parseAnswerlist() {
	q.listOnce.Do(func() {
		loc := answerlistBlock.FindStringSubmatchIndex(q.Content)
		if loc == nil {
			return
		}
		q.listFound = true
		q.itemsStart, q.itemsEnd = loc[4], loc[5]
		for _, piece := range cutItems(q.Content[q.itemsStart:q.itemsEnd]) {
			if strings.TrimSpace(piece) == "" {
				continue
			}
			m := itemMarker.FindStringSubmatchIndex(piece)
			if m == nil {
				// text before the first alternative, not an item
				continue
			}
			q.items = append(q.items, AnswerItem{
				Marker:  piece[m[2]:m[3]],
				Content: piece[m[1]:],
			})
		}
	})
}

// cutItems splits the item region at the start of each alternative marker.
// The piece before the first marker (if any) is kept here and discarded by
// the caller.
func cutItems(region string) []string {
	locs := itemStart.FindAllStringIndex(region, -1)
	if locs == nil {
		return nil
	}
	pieces := make([]string, 0, len(locs)+1)
	prev := 0
	for _, loc := range locs {
		pieces = append(pieces, region[prev:loc[0]])
		prev = loc[0]
	}
	return append(pieces, region[prev:])
}

// Items returns the alternatives of the first answerlist block in document
// order, empty when the question has no recognizable answerlist.
func (q *Question) Items() []AnswerItem {
	q.parseAnswerlist()
	return q.items
}

// CorrectAnswerPosition returns the zero-based index of the \di alternative.
// ok is false for true/false questions and when no answerlist is found.
func (q *Question) CorrectAnswerPosition() (int, bool) {
	if q.IsTrueFalse() {
		return 0, false
	}
	for i, item := range q.Items() {
		if item.Marker == `\di` {
			return i, true
		}
	}
	return 0, false
}

// WithShuffledAlternatives returns a copy of the question with its
// alternatives in random order. True/false questions, questions without an
// answerlist and single-alternative lists come back unchanged.
func (q *Question) WithShuffledAlternatives() *Question {
	if q.IsTrueFalse() {
		return &Question{Content: q.Content}
	}
	q.parseAnswerlist()
	if !q.listFound || len(q.items) < 2 {
		return &Question{Content: q.Content}
	}

	shuffled := make([]AnswerItem, len(q.items))
	copy(shuffled, q.items)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	var b strings.Builder
	for _, item := range shuffled {
		b.WriteString("    ")
		b.WriteString(item.Marker)
		b.WriteString(item.Content)
	}
	region := strings.TrimRightFunc(b.String(), unicode.IsSpace)

	return &Question{
		Content: q.Content[:q.itemsStart] + region + q.Content[q.itemsEnd:],
	}
}
