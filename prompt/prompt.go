// Package prompt collects the run configuration interactively, with
// defaults supplied by flags and environment variables.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/examtools/quizshuffle/generate"
	"github.com/examtools/quizshuffle/models"
	"github.com/examtools/quizshuffle/utils"
)

// Collector reads replies from one stream and writes prompts to another,
// so tests can drive it with buffers.
type Collector struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Collector reading replies from in and writing prompts to out.
func New(in io.Reader, out io.Writer) *Collector {
	return &Collector{in: bufio.NewReader(in), out: out}
}

// Banner prints the tool header.
func (c *Collector) Banner() {
	line := strings.Repeat("=", 55)
	fmt.Fprintln(c.out, line)
	fmt.Fprintln(c.out, "  quizshuffle - LaTeX exam version generator")
	fmt.Fprintln(c.out, line)
	fmt.Fprintln(c.out)
}

// ask prints a prompt with its default and returns the trimmed reply, the
// default when the reply is empty. A closed input stream surfaces as io.EOF
// so the caller can end the program cleanly.
func (c *Collector) ask(prompt, def string) (string, error) {
	fmt.Fprintf(c.out, "%s [default: %s]: ", prompt, def)
	line, err := c.in.ReadString('\n')
	if err == io.EOF && line == "" {
		fmt.Fprintln(c.out)
		return "", io.EOF
	}
	if err != nil && err != io.EOF {
		return "", err
	}
	value := strings.TrimSpace(line)
	if value == "" {
		return def, nil
	}
	return value, nil
}

// askBool asks a yes/no question. The default choice is shown uppercased;
// replies other than y or n fall back to the default.
func (c *Collector) askBool(prompt string, def bool) (bool, error) {
	options, defStr := "y/N", "n"
	if def {
		options, defStr = "Y/n", "y"
	}
	raw, err := c.ask(fmt.Sprintf("%s (%s)", prompt, options), defStr)
	if err != nil {
		return def, err
	}
	switch strings.ToLower(raw) {
	case "y":
		return true, nil
	case "n":
		return false, nil
	}
	return def, nil
}

// Collect walks through the configuration prompts and validates the result.
// With assumeYes every default is accepted without asking. Validation
// failures come back as plain errors; io.EOF means the user closed stdin.
func (c *Collector) Collect(defaults models.Config, assumeYes bool) (models.Config, error) {
	cfg := defaults

	if !assumeYes {
		source, err := c.ask("Path to source file", cfg.SourceFile)
		if err != nil {
			return cfg, err
		}
		cfg.SourceFile = source
	}
	if _, err := os.Stat(cfg.SourceFile); err != nil {
		return cfg, fmt.Errorf("source file not found: %s", cfg.SourceFile)
	}

	if !assumeYes {
		raw, err := c.ask("Number of versions to generate", strconv.Itoa(cfg.NumVersions))
		if err != nil {
			return cfg, err
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid number of versions: %q", raw)
		}
		cfg.NumVersions = n
	}
	if cfg.NumVersions < 1 {
		return cfg, fmt.Errorf("number of versions must be >= 1, got %d", cfg.NumVersions)
	}

	defSuffix := string(cfg.SuffixChar)
	if cfg.SuffixChar == 0 {
		defSuffix = utils.DefaultSuffix(cfg.SourceFile)
	}
	if assumeYes {
		cfg.SuffixChar = []rune(defSuffix)[0]
	} else {
		example := filepath.Base(generate.VersionFileName(cfg.SourceFile, []rune(defSuffix)[0], 0))
		raw, err := c.ask(
			fmt.Sprintf("Starting suffix letter (e.g. %s generates %s, ...)", defSuffix, example),
			defSuffix)
		if err != nil {
			return cfg, err
		}
		cfg.SuffixChar = unicode.ToUpper([]rune(raw)[0])
	}

	if !assumeYes {
		var err error
		cfg.ShuffleQuestions, err = c.askBool("Shuffle question order", cfg.ShuffleQuestions)
		if err != nil {
			return cfg, err
		}
		cfg.ShuffleAlternatives, err = c.askBool("Shuffle multiple-choice alternatives", cfg.ShuffleAlternatives)
		if err != nil {
			return cfg, err
		}

		raw, err := c.ask("Maximum consecutive answers in the same position", strconv.Itoa(cfg.MaxConsecutive))
		if err != nil {
			return cfg, err
		}
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid consecutive-answer limit: %q", raw)
		}
		cfg.MaxConsecutive = limit
	}

	return cfg, nil
}
