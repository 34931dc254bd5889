package generate_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/examtools/quizshuffle/generate"
	"github.com/examtools/quizshuffle/latex"
	"github.com/examtools/quizshuffle/models"
)

const examDoc = `\documentclass{exam}
\begin{document}
{ % Q1
\rtask{Pick one}
\begin{answerlist}
    \ti red
    \di green
    \ti blue
\end{answerlist}
}

{ % Q2
\rtask{True or false}
\begin{answerlist}
    \ti[V.] True
    \di[F.] False
\end{answerlist}
}

{ % Q3
\rtask{Pick again}
\begin{answerlist}
    \di north
    \ti south
\end{answerlist}
}
\end{document}
`

func TestAssemble(t *testing.T) {
	exam := &models.Exam{Header: "H\n", Footer: "F\n"}
	questions := []*models.Question{
		{Content: "{ one }\n"},
		{Content: "{ two }  \n"},
	}

	got := generate.Assemble(exam, questions)
	want := "H\n{ one }\n\n\n\n{ two }F\n"
	if got != want {
		t.Errorf("Assemble() = %q, want %q", got, want)
	}
}

func TestVersionFileName(t *testing.T) {
	cases := []struct {
		source string
		suffix rune
		v      int
		want   string
	}{
		{"P1A.tex", 'B', 0, "P1B.tex"},
		{"P1A.tex", 'B', 1, "P1C.tex"},
		{"P1A.tex", 'B', 2, "P1D.tex"},
		{"P1A.tex", 'D', 0, "P1D.tex"},
		{filepath.Join("exams", "P1A.tex"), 'B', 0, filepath.Join("exams", "P1B.tex")},
		{"final.ltx", 'B', 0, "finaB.ltx"},
	}

	for _, tc := range cases {
		if got := generate.VersionFileName(tc.source, tc.suffix, tc.v); got != tc.want {
			t.Errorf("VersionFileName(%q, %q, %d) = %q, want %q", tc.source, tc.suffix, tc.v, got, tc.want)
		}
	}
}

func TestAnswerKey(t *testing.T) {
	exam := latex.Parse(examDoc)
	if len(exam.Questions) != 3 {
		t.Fatalf("fixture should parse into 3 questions, got %d", len(exam.Questions))
	}

	key := generate.AnswerKey(exam.Questions)
	want := []string{"b", "-", "a"}
	if !reflect.DeepEqual(key, want) {
		t.Errorf("AnswerKey() = %v, want %v", key, want)
	}
}

func TestRunWritesRequestedVersions(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "P1A.tex")
	if err := os.WriteFile(source, []byte(examDoc), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg := models.Config{
		SourceFile:     source,
		NumVersions:    3,
		SuffixChar:     'B',
		MaxConsecutive: 3,
	}
	exam := latex.Parse(examDoc)

	records, err := generate.Run(cfg, exam)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	wantFiles := []string{"P1B.tex", "P1C.tex", "P1D.tex"}
	for i, name := range wantFiles {
		if records[i].File != name {
			t.Errorf("record %d file = %q, want %q", i, records[i].File, name)
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("version %s not written: %v", name, err)
		}
		// With both shuffles off every version is the same assembly of the
		// original order.
		want := generate.Assemble(exam, exam.Questions)
		if string(data) != want {
			t.Errorf("version %s content mismatch:\n got: %q\nwant: %q", name, data, want)
		}
	}
}

func TestRunKeysMatchWrittenContent(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "P1A.tex")
	if err := os.WriteFile(source, []byte(examDoc), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg := models.Config{
		SourceFile:          source,
		NumVersions:         2,
		SuffixChar:          'B',
		ShuffleQuestions:    true,
		ShuffleAlternatives: true,
		MaxConsecutive:      3,
	}
	exam := latex.Parse(examDoc)

	records, err := generate.Run(cfg, exam)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, rec := range records {
		written, err := latex.ParseFile(filepath.Join(dir, rec.File))
		if err != nil {
			t.Fatalf("reparse %s: %v", rec.File, err)
		}
		if len(written.Questions) != len(exam.Questions) {
			t.Fatalf("%s: expected %d questions, got %d", rec.File, len(exam.Questions), len(written.Questions))
		}
		recomputed := generate.AnswerKey(written.Questions)
		if !reflect.DeepEqual(recomputed, rec.Key) {
			t.Errorf("%s: stored key %v does not match recomputed %v", rec.File, rec.Key, recomputed)
		}
	}
}

func TestWriteAnswerKeyReport(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "P1A.tex")
	cfg := models.Config{SourceFile: source}

	records := []models.VersionRecord{
		{File: "P1B.tex", Key: []string{"b", "-", "a"}},
		{File: "P1C.tex", Key: []string{"a", "-", "b"}},
	}

	path, err := generate.WriteAnswerKeyReport(cfg, "run-123", records)
	if err != nil {
		t.Fatalf("WriteAnswerKeyReport: %v", err)
	}
	if want := filepath.Join(dir, "P1A_keys.json"); path != want {
		t.Errorf("report path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var report models.AnswerKeyReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if report.SourceFile != "P1A.tex" || report.RunID != "run-123" {
		t.Errorf("report identity = %q / %q, want P1A.tex / run-123", report.SourceFile, report.RunID)
	}
	if !reflect.DeepEqual(report.Versions, records) {
		t.Errorf("report versions = %v, want %v", report.Versions, records)
	}
}

func TestReportFileName(t *testing.T) {
	got := generate.ReportFileName(filepath.Join("exams", "P1A.tex"))
	if want := filepath.Join("exams", "P1A_keys.json"); got != want {
		t.Errorf("ReportFileName = %q, want %q", got, want)
	}
}
