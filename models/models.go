package models

import "time"

// Config holds one run's settings, collected up front and immutable after
// the prompt phase.
type Config struct {
	SourceFile          string
	NumVersions         int
	SuffixChar          rune
	ShuffleQuestions    bool
	ShuffleAlternatives bool
	MaxConsecutive      int
	ArchivePath         string
}

// AnswerItem is a single alternative inside an answerlist block.
type AnswerItem struct {
	Marker  string // `\ti` (regular) or `\di` (correct)
	Content string // verbatim text after the marker and its optional [label]
}

// Exam is a parsed source file: the questions in original order plus the
// verbatim text around them.
type Exam struct {
	Header    string
	Questions []*Question
	Footer    string
}

// Stats counts the classification split of the exam's questions.
func (e *Exam) Stats() (multipleChoice, trueFalse int) {
	for _, q := range e.Questions {
		if q.IsTrueFalse() {
			trueFalse++
		} else {
			multipleChoice++
		}
	}
	return multipleChoice, trueFalse
}

// RunRecord is one archived generation run.
type RunRecord struct {
	ID                  string    `json:"id"`
	SourceFile          string    `json:"source_file"`
	SourceDigest        string    `json:"source_digest"`
	QuestionCount       int       `json:"question_count"`
	MultipleChoice      int       `json:"multiple_choice"`
	TrueFalse           int       `json:"true_false"`
	NumVersions         int       `json:"num_versions"`
	ShuffleQuestions    bool      `json:"shuffle_questions"`
	ShuffleAlternatives bool      `json:"shuffle_alternatives"`
	MaxConsecutive      int       `json:"max_consecutive"`
	CreatedAt           time.Time `json:"created_at"`
}

// VersionRecord is one generated version file and its answer key. Key holds
// one letter per question ("a", "b", ...) with "-" where no single correct
// alternative applies (true/false questions, missing answerlist).
type VersionRecord struct {
	File string   `json:"file"`
	Key  []string `json:"key"`
}

// RunSummary is a RunRecord joined with its stored version count, as listed
// by the history command.
type RunSummary struct {
	RunRecord
	VersionCount int `json:"version_count"`
}

// AnswerKeyReport is the JSON artifact written alongside generated versions.
type AnswerKeyReport struct {
	SourceFile  string          `json:"source_file"`
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Versions    []VersionRecord `json:"versions"`
}
