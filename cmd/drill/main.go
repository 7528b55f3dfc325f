package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"wortschatz/internal/config"
	"wortschatz/internal/database"
	"wortschatz/internal/models"
	"wortschatz/internal/repository"
	"wortschatz/internal/service"
)

func main() {
	runCmd := flag.NewFlagSet("run", flag.ExitOnError)
	runQuestions := runCmd.String("questions", "", "Path to question pool JSON file (required)")
	runLearner := runCmd.Int64("learner", 1, "Learner ID")
	runSize := runCmd.Int("size", 0, "Questions per sub-session (default from config)")

	dueCmd := flag.NewFlagSet("due", flag.ExitOnError)
	dueLearner := dueCmd.Int64("learner", 1, "Learner ID")
	dueLimit := dueCmd.Int("limit", 20, "Maximum number of due items to list")

	statsCmd := flag.NewFlagSet("stats", flag.ExitOnError)
	statsLearner := statsCmd.Int64("learner", 1, "Learner ID")

	freezeCmd := flag.NewFlagSet("freeze", flag.ExitOnError)
	freezeLearner := freezeCmd.Int64("learner", 1, "Learner ID")
	freezeDate := freezeCmd.String("date", "", "Date to protect, YYYY-MM-DD (required)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	reviewRepo := repository.NewReviewRepository(db)
	streakRepo := repository.NewStreakRepository(db)
	weakAreaRepo := repository.NewWeakAreaRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	// Initialize services
	reviewService := service.NewReviewService(reviewRepo)
	streakService := service.NewStreakService(streakRepo)
	weakAreaService := service.NewWeakAreaService(weakAreaRepo)
	practiceService := service.NewPracticeService(sessionRepo, reviewService, weakAreaService, streakService)

	switch os.Args[1] {
	case "run":
		runCmd.Parse(os.Args[2:])
		if *runQuestions == "" {
			fmt.Println("Error: -questions flag is required")
			runCmd.PrintDefaults()
			os.Exit(1)
		}
		size := *runSize
		if size <= 0 {
			size = cfg.SessionSize
		}
		runDrill(practiceService, streakService, *runQuestions, *runLearner, size)

	case "due":
		dueCmd.Parse(os.Args[2:])
		showDue(reviewService, *dueLearner, *dueLimit)

	case "stats":
		statsCmd.Parse(os.Args[2:])
		showStats(reviewService, streakService, weakAreaService, *statsLearner)

	case "freeze":
		freezeCmd.Parse(os.Args[2:])
		if *freezeDate == "" {
			fmt.Println("Error: -date flag is required")
			freezeCmd.PrintDefaults()
			os.Exit(1)
		}
		activateFreeze(streakService, *freezeLearner, *freezeDate)

	default:
		printUsage()
		os.Exit(1)
	}
}

func loadQuestions(path string) ([]models.Question, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open question file: %w", err)
	}
	defer file.Close()

	var questions []models.Question
	if err := json.NewDecoder(file).Decode(&questions); err != nil {
		return nil, fmt.Errorf("failed to decode question file: %w", err)
	}
	return questions, nil
}

func runDrill(practice *service.PracticeService, streaks *service.StreakService, questionsPath string, learnerID int64, size int) {
	pool, err := loadQuestions(questionsPath)
	if err != nil {
		log.Fatalf("Failed to load questions: %v", err)
	}
	if len(pool) == 0 {
		log.Fatal("Question pool is empty")
	}

	drill := service.NewDrillSession(pool, size, time.Now())
	fmt.Printf("Loaded %d questions (%d sub-sessions of up to %d)\n\n", len(pool), drill.SubSessionCount(), size)

	reader := bufio.NewScanner(os.Stdin)
	subSession := 1

	for {
		fmt.Printf("--- Sub-session %d of %d ---\n", subSession, drill.SubSessionCount())
		quit, err := runSubSession(practice, drill, learnerID, reader)
		if err != nil {
			log.Fatalf("Session failed: %v", err)
		}
		if quit {
			break
		}

		if !drill.NextSubSession(time.Now()) {
			break
		}
		subSession++

		fmt.Print("\nContinue to next sub-session? [Y/n] ")
		if !reader.Scan() || strings.EqualFold(strings.TrimSpace(reader.Text()), "n") {
			break
		}
		fmt.Println()
	}

	fmt.Println("\nDone. Tschüss!")
}

// runSubSession drives one sub-session to completion. Returns true if
// the learner quit early.
func runSubSession(practice *service.PracticeService, drill *service.DrillSession, learnerID int64, reader *bufio.Scanner) (bool, error) {
	session, err := practice.BeginSession(learnerID, drill.Len(), time.Now())
	if err != nil {
		return false, err
	}

	for !drill.IsComplete() {
		q := drill.CurrentQuestion()
		if q == nil {
			break
		}

		fmt.Printf("\nQuestion %d/%d: %s\n", drill.CurrentIndex()+1, drill.Len(), q.Prompt)
		for i, choice := range q.Choices {
			fmt.Printf("  %d) %s\n", i+1, choice)
		}
		fmt.Print("Answer (number), or q to quit: ")

		if !reader.Scan() {
			return true, nil
		}
		input := strings.TrimSpace(reader.Text())
		if strings.EqualFold(input, "q") {
			return true, nil
		}

		choice, err := strconv.Atoi(input)
		if err != nil || !drill.SelectAnswer(choice-1) {
			fmt.Println("Invalid choice, try again")
			continue
		}

		now := time.Now()
		attempt := drill.CheckAnswer(now)
		if attempt == nil {
			continue
		}

		if attempt.IsCorrect {
			fmt.Println("Correct!")
		} else {
			fmt.Printf("Incorrect. The answer is: %s\n", attempt.CorrectAnswer)
		}

		if err := practice.RecordAttempt(learnerID, session.ID, q, attempt, now); err != nil {
			return false, err
		}

		if result := drill.NextQuestion(time.Now()); result != nil {
			outcome, err := practice.CompleteSession(learnerID, session.ID, *result, time.Now())
			if err != nil {
				return false, err
			}
			fmt.Printf("\nSub-session complete: %d/%d correct (%.0f%%)\n",
				result.Correct, result.Total, result.Accuracy()*100)
			fmt.Printf("Current streak: %d day(s)\n", outcome.CurrentStreak)
			if outcome.FreezeAwarded {
				fmt.Println("You earned a streak freeze!")
			}
		}
	}

	return false, nil
}

func showDue(reviews *service.ReviewService, learnerID int64, limit int) {
	items, err := reviews.DueItems(learnerID, time.Now(), limit)
	if err != nil {
		log.Fatalf("Failed to list due items: %v", err)
	}

	if len(items) == 0 {
		fmt.Println("Nothing due for review")
		return
	}

	fmt.Printf("%d item(s) due for review:\n", len(items))
	for _, item := range items {
		fmt.Printf("  item %d [%s]  ease %.2f  due since %s\n",
			item.ItemID, item.SkillType, item.EaseFactor, item.NextReviewAt.Format("2006-01-02"))
	}
}

func showStats(reviews *service.ReviewService, streaks *service.StreakService, weakAreas *service.WeakAreaService, learnerID int64) {
	now := time.Now()

	stats, err := reviews.Stats(learnerID, now)
	if err != nil {
		log.Fatalf("Failed to load review stats: %v", err)
	}
	fmt.Printf("Tracked items: %d  due now: %d  average ease: %.2f\n",
		stats.TotalItems, stats.DueItems, stats.AverageEase)

	streak, err := streaks.CurrentStreak(learnerID, now)
	if err != nil {
		log.Fatalf("Failed to derive streak: %v", err)
	}
	status, err := streaks.FreezeStatus(learnerID, now)
	if err != nil {
		log.Fatalf("Failed to load freeze status: %v", err)
	}
	fmt.Printf("Current streak: %d day(s), freeze status: %s\n", streak, status)

	focus, err := weakAreas.FocusAreas(learnerID)
	if err != nil {
		log.Fatalf("Failed to load focus areas: %v", err)
	}
	if len(focus) == 0 {
		fmt.Println("No areas need focus")
		return
	}
	fmt.Println("Areas needing focus:")
	for _, area := range focus {
		fmt.Printf("  %s/%s  %d mistakes, last at %s\n",
			area.AreaType, area.AreaID, area.MistakeCount, area.LastMistakeAt.Format("2006-01-02"))
	}
}

func activateFreeze(streaks *service.StreakService, learnerID int64, date string) {
	used, err := streaks.ActivateFreeze(learnerID, date, time.Now())
	if err != nil {
		log.Fatalf("Failed to activate freeze: %v", err)
	}
	if used {
		fmt.Printf("Streak freeze activated for %s\n", date)
	} else {
		fmt.Println("Freeze not activated (none available, in recovery, or already used for that date)")
	}
}

func printUsage() {
	fmt.Println("Wortschatz Drill")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  drill run -questions <file> [options]    Run an interactive drill session")
	fmt.Println("  drill due [options]                      List items due for review")
	fmt.Println("  drill stats [options]                    Show review, streak and weak-area stats")
	fmt.Println("  drill freeze -date <YYYY-MM-DD>          Spend a streak freeze on a date")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DB_TYPE          Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./wortschatz.db)")
	fmt.Println("  DB_URL           PostgreSQL or MySQL connection URL")
	fmt.Println("  SESSION_SIZE     Questions per sub-session (default: 15)")
	fmt.Println()
	fmt.Println("Question file format: JSON array of questions, e.g.")
	fmt.Println(`  [{"item_id": 1, "skill_type": "translation", "prompt": "die Katze",`)
	fmt.Println(`    "choices": ["the cat", "the dog"], "correct_index": 0,`)
	fmt.Println(`    "areas": [{"type": "gender", "identifier": "die"}]}]`)
}
