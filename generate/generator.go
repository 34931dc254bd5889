// Package generate renders and writes the shuffled exam versions.
package generate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/examtools/quizshuffle/models"
	"github.com/examtools/quizshuffle/shuffle"
	"github.com/examtools/quizshuffle/utils"
)

// separator sits between question blocks: three blank lines.
const separator = "\n\n\n\n"

// Assemble renders one version document: header and footer verbatim, the
// question blocks right-trimmed and joined by the block separator.
func Assemble(exam *models.Exam, questions []*models.Question) string {
	parts := make([]string, len(questions))
	for i, q := range questions {
		parts[i] = strings.TrimRightFunc(q.Content, unicode.IsSpace)
	}
	return exam.Header + strings.Join(parts, separator) + exam.Footer
}

// VersionFileName returns the output path for version v (0-based): the
// source stem with its last character stepped to suffix+v, directory and
// extension preserved.
func VersionFileName(source string, suffix rune, v int) string {
	dir := filepath.Dir(source)
	base := filepath.Base(source)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	prefix := ""
	if runes := []rune(stem); len(runes) > 0 {
		prefix = string(runes[:len(runes)-1])
	}
	return filepath.Join(dir, prefix+string(suffix+rune(v))+ext)
}

// AnswerKey maps each question to the letter of its correct alternative,
// "-" when it has no single key position.
func AnswerKey(questions []*models.Question) []string {
	key := make([]string, len(questions))
	for i, q := range questions {
		if pos, ok := q.CorrectAnswerPosition(); ok {
			key[i] = string(rune('a' + pos))
		} else {
			key[i] = "-"
		}
	}
	return key
}

// Run writes cfg.NumVersions shuffled versions next to the source file and
// returns one record per written file. Versions are generated strictly in
// order; a write failure stops the run but leaves earlier files in place.
func Run(cfg models.Config, exam *models.Exam) ([]models.VersionRecord, error) {
	start := time.Now()
	records := make([]models.VersionRecord, 0, cfg.NumVersions)

	for v := 0; v < cfg.NumVersions; v++ {
		outPath := VersionFileName(cfg.SourceFile, cfg.SuffixChar, v)
		utils.LogVersion("Generating version %d/%d -> %s", v+1, cfg.NumVersions, filepath.Base(outPath))

		questions := make([]*models.Question, len(exam.Questions))
		copy(questions, exam.Questions)

		if cfg.ShuffleAlternatives {
			utils.LogShuffle("Shuffling multiple-choice alternatives")
			for i, q := range questions {
				questions[i] = q.WithShuffledAlternatives()
			}
		}
		if cfg.ShuffleQuestions {
			utils.LogShuffle("Shuffling question order")
			questions = shuffle.WithConstraint(questions, cfg.MaxConsecutive)
		}

		content := Assemble(exam, questions)
		if err := os.WriteFile(outPath, []byte(content), 0644); err != nil {
			return records, fmt.Errorf("writing %s: %w", outPath, err)
		}
		utils.LogVersion("Wrote %s", outPath)

		records = append(records, models.VersionRecord{
			File: filepath.Base(outPath),
			Key:  AnswerKey(questions),
		})
	}

	utils.LogInfo("Generated %d version(s) in %v", len(records), time.Since(start))
	return records, nil
}

// ReportFileName returns the answer-key report path for a source file: the
// source stem plus "_keys.json", in the source directory.
func ReportFileName(source string) string {
	dir := filepath.Dir(source)
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+"_keys.json")
}

// WriteAnswerKeyReport writes the per-version answer keys as indented JSON
// next to the generated files and returns the written path.
func WriteAnswerKeyReport(cfg models.Config, runID string, records []models.VersionRecord) (string, error) {
	report := models.AnswerKeyReport{
		SourceFile:  filepath.Base(cfg.SourceFile),
		RunID:       runID,
		GeneratedAt: time.Now(),
		Versions:    records,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding answer-key report: %w", err)
	}
	path := ReportFileName(cfg.SourceFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
