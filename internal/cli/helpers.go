package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/recorder"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

func loadState() (*recorder.StateFile, error) {
	sf, err := recorder.NewDefaultStateFile()
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return sf, nil
}

// getDBPath returns the database path from the flag, then the state file.
func getDBPath(state recorder.AppState) string {
	if dbPath != "" {
		return dbPath
	}
	return state.DBPath // Empty means default
}

func openDB(state recorder.AppState) (*storage.DB, error) {
	path := getDBPath(state)
	var db *storage.DB
	var err error

	if path == "" {
		db, err = storage.OpenDefault()
	} else {
		db, err = storage.Open(path)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// sequencerOptions merges the flags over the saved settings.
func sequencerOptions(state recorder.AppState, log *logrus.Logger) []cubesim.Option {
	d := state.TurnDuration()
	if turnDuration > 0 {
		d = turnDuration
	}

	opts := []cubesim.Option{
		cubesim.WithTurnDuration(d),
		cubesim.WithLogger(log),
	}
	if seed != 0 {
		opts = append(opts, cubesim.WithSeed(seed))
	}
	return opts
}

func scrambleLength(state recorder.AppState) int {
	if scrambleLen > 0 {
		return scrambleLen
	}
	return state.Scramble()
}

// newLogger returns a logger for a command. Full-screen commands log to a
// dated file under ~/.cubesim/logs so the terminal stays clean.
func newLogger(toFile bool) (*logrus.Logger, io.Closer, error) {
	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if !toFile {
		if !verbose {
			log.SetLevel(logrus.WarnLevel)
		}
		return log, io.NopCloser(nil), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	logDir := filepath.Join(homeDir, ".cubesim", "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(logDir, fmt.Sprintf("cubesim-%s.log", time.Now().Format("2006-01-02")))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log.SetOutput(f)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return log, f, nil
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.1fs", mins, secs)
}

// wrapMoves groups notations into lines of about width characters.
func wrapMoves(moves []cubesim.Move, width int) []string {
	var lines []string
	var line strings.Builder
	for _, m := range moves {
		n := m.Notation()
		if line.Len() > 0 && line.Len()+len(n)+1 > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(n)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
