package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"unicode"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/examtools/quizshuffle/db"
	"github.com/examtools/quizshuffle/generate"
	"github.com/examtools/quizshuffle/latex"
	"github.com/examtools/quizshuffle/models"
	"github.com/examtools/quizshuffle/prompt"
	"github.com/examtools/quizshuffle/utils"
)

func main() {
	// Set up logging with timestamps
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Println("[CONFIG] No .env file found, using environment as-is")
	}

	// Flag defaults come from the environment so .env files and scripts can
	// preconfigure a run; explicit flags override, prompts confirm.
	var (
		inputFlag    = flag.String("input", utils.GetEnvOrDefault("QS_SOURCE_FILE", "P1A.tex"), "source exam file")
		versionsFlag = flag.Int("versions", utils.GetEnvInt("QS_NUM_VERSIONS", 2), "number of versions to generate")
		suffixFlag   = flag.String("suffix", utils.GetEnvOrDefault("QS_SUFFIX", ""), "starting suffix letter (default: next after the source's)")
		shuffleQFlag = flag.Bool("shuffle-questions", utils.GetEnvBool("QS_SHUFFLE_QUESTIONS", true), "shuffle question order")
		shuffleAFlag = flag.Bool("shuffle-alternatives", utils.GetEnvBool("QS_SHUFFLE_ALTERNATIVES", true), "shuffle multiple-choice alternatives")
		maxConsFlag  = flag.Int("max-consecutive", utils.GetEnvInt("QS_MAX_CONSECUTIVE", 3), "limit for consecutive answers in the same position")
		dbFlag       = flag.String("db", utils.GetEnvOrDefault("QS_DB_PATH", "quizshuffle.db"), "run archive path")
		yesFlag      = flag.Bool("yes", false, "accept all defaults without prompting")
		historyFlag  = flag.Int("history", 0, "list the N most recent archived runs and exit")
	)
	flag.Parse()

	// Graceful exit on Ctrl+C, also mid-prompt
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println()
		log.Println("[SHUTDOWN] Interrupted")
		os.Exit(0)
	}()

	if *historyFlag > 0 {
		archive, err := db.InitDB(*dbFlag)
		if err != nil {
			log.Fatalf("[FATAL] Failed to open run archive: %v", err)
		}
		defer archive.Close()
		if err := printHistory(archive, *historyFlag); err != nil {
			log.Fatalf("[FATAL] %v", err)
		}
		return
	}

	log.Println("[STARTUP] quizshuffle starting...")

	defaults := models.Config{
		SourceFile:          *inputFlag,
		NumVersions:         *versionsFlag,
		ShuffleQuestions:    *shuffleQFlag,
		ShuffleAlternatives: *shuffleAFlag,
		MaxConsecutive:      *maxConsFlag,
		ArchivePath:         *dbFlag,
	}
	if *suffixFlag != "" {
		defaults.SuffixChar = unicode.ToUpper([]rune(*suffixFlag)[0])
	}

	collector := prompt.New(os.Stdin, os.Stdout)
	if !*yesFlag {
		collector.Banner()
	}
	cfg, err := collector.Collect(defaults, *yesFlag)
	if err != nil {
		if errors.Is(err, io.EOF) {
			log.Println("[SHUTDOWN] Input closed, nothing generated")
			os.Exit(0)
		}
		log.Fatalf("[FATAL] %v", err)
	}

	log.Printf("[INFO] Loading: %s", cfg.SourceFile)
	raw, err := os.ReadFile(cfg.SourceFile)
	if err != nil {
		log.Fatalf("[FATAL] Failed to read source: %v", err)
	}
	exam := latex.Parse(string(raw))
	mc, tf := exam.Stats()
	log.Printf("[INFO] Questions found: %d (%d multiple choice, %d true/false)",
		len(exam.Questions), mc, tf)

	records, err := generate.Run(cfg, exam)
	if err != nil {
		log.Fatalf("[FATAL] Generation failed: %v", err)
	}

	runID := uuid.NewString()
	if path, err := generate.WriteAnswerKeyReport(cfg, runID, records); err != nil {
		utils.LogError("Answer-key report not written (non-fatal): %v", err)
	} else {
		log.Printf("[INFO] Answer keys written to %s", path)
	}

	archiveRun(cfg, exam, raw, runID, records)

	log.Println("[SHUTDOWN] All versions generated")
}

// archiveRun records the run in the local archive. Archive trouble never
// fails the run: the generated files are already on disk.
func archiveRun(cfg models.Config, exam *models.Exam, source []byte, runID string, records []models.VersionRecord) {
	archive, err := db.InitDB(cfg.ArchivePath)
	if err != nil {
		utils.LogError("Run archive unavailable (non-fatal): %v", err)
		return
	}
	defer archive.Close()

	mc, tf := exam.Stats()
	run := models.RunRecord{
		ID:                  runID,
		SourceFile:          filepath.Base(cfg.SourceFile),
		SourceDigest:        utils.Fingerprint(source),
		QuestionCount:       len(exam.Questions),
		MultipleChoice:      mc,
		TrueFalse:           tf,
		NumVersions:         cfg.NumVersions,
		ShuffleQuestions:    cfg.ShuffleQuestions,
		ShuffleAlternatives: cfg.ShuffleAlternatives,
		MaxConsecutive:      cfg.MaxConsecutive,
	}
	if err := archive.RecordRun(run, records); err != nil {
		utils.LogError("Run not archived (non-fatal): %v", err)
	}
}

// printHistory lists archived runs, newest first, with their version files
// and answer keys.
func printHistory(archive *db.DB, limit int) error {
	runs, err := archive.RecentRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No archived runs yet.")
		return nil
	}

	for _, r := range runs {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Printf("%s  %s  %s  %d questions (%d MC, %d TF), %d version(s), digest %s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), id, r.SourceFile,
			r.QuestionCount, r.MultipleChoice, r.TrueFalse, r.VersionCount,
			utils.ShortFingerprint(r.SourceDigest))

		versions, err := archive.VersionsForRun(r.ID)
		if err != nil {
			return err
		}
		for _, v := range versions {
			fmt.Printf("    %s  key: %s\n", v.File, strings.Join(v.Key, " "))
		}
	}
	return nil
}
