// Command seed loads recipient offices from a CSV file for development
// databases. Each row is "name,initial"; the initial column may be empty.
// A header row whose first cell is "name" is skipped, as are offices that
// already exist.
//
// Usage:
//
//	seed -file=recipients.csv
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	recipientrepo "github.com/heartmarshall/doctrkr-backend/internal/adapter/postgres/recipient"
	"github.com/heartmarshall/doctrkr-backend/internal/app"
	"github.com/heartmarshall/doctrkr-backend/internal/config"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

func main() {
	path := flag.String("file", "", "CSV file with name,initial rows")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "Usage: seed -file=recipients.csv")
		os.Exit(1)
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("open %s: %v", *path, err)
	}
	defer f.Close()

	rows, err := readRows(f)
	if err != nil {
		log.Fatalf("read %s: %v", *path, err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, closeDB, err := app.OpenDatabase(ctx, cfg.Database, logger)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer closeDB()

	recipients := recipientrepo.New(pool)

	var created, skipped int
	for _, rec := range rows {
		if _, err := recipients.Create(ctx, &rec); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				skipped++
				continue
			}
			logger.Error("seed recipient failed",
				slog.String("name", rec.Name),
				slog.String("error", err.Error()),
			)
			closeDB()
			os.Exit(1)
		}
		created++
	}

	logger.Info("seed completed", slog.Int("created", created), slog.Int("skipped", skipped))
}

// readRows parses name,initial records. Blank names are ignored.
func readRows(r io.Reader) ([]domain.Recipient, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []domain.Recipient
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		name := strings.TrimSpace(rec[0])
		if name == "" || (line == 1 && strings.EqualFold(name, "name")) {
			continue
		}
		if len(name) > 255 {
			return nil, fmt.Errorf("line %d: name too long", line)
		}

		item := domain.Recipient{Name: name}
		if len(rec) > 1 {
			if initial := strings.TrimSpace(rec[1]); initial != "" {
				item.Initial = &initial
			}
		}
		out = append(out, item)
	}
}
