// Command seed creates post groups.
//
//	seed -title "Cats" -description "Posts about cats"
//	seed -file groups.json
//
// groups.json holds an array of {"title", "slug", "description"} objects.
// Existing slugs are reported and skipped.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"yatube/internal/config"
	"yatube/internal/domains/group"
	groupRepo "yatube/internal/domains/group/repository"
	groupService "yatube/internal/domains/group/service"
	"yatube/internal/infrastructure/database"
	"yatube/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	if err := run(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}
}

// run owns every resource it opens, so main can exit right after it returns
func run(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	var (
		file        = fs.String("file", "", "JSON file with an array of groups")
		title       = fs.String("title", "", "group title")
		slug        = fs.String("slug", "", "group slug (generated from title when empty)")
		description = fs.String("description", "", "group description")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	reqs, err := loadRequests(*file, group.CreateGroupRequest{Title: *title, Slug: *slug, Description: *description})
	if err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("load database config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	svc := groupService.NewGroupService(groupRepo.NewPostgresRepository(db.Pool))
	created, err := seed(ctx, svc, reqs)
	log.Info().Int("created", created).Int("total", len(reqs)).Msg("Seeding finished")
	return err
}

// loadRequests reads the JSON file when given, else uses the single flag-built request
func loadRequests(path string, single group.CreateGroupRequest) ([]group.CreateGroupRequest, error) {
	if path == "" {
		if single.Title == "" {
			return nil, errors.New("either -file or -title is required")
		}
		return []group.CreateGroupRequest{single}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return decodeRequests(f)
}

func decodeRequests(r io.Reader) ([]group.CreateGroupRequest, error) {
	var reqs []group.CreateGroupRequest
	if err := json.NewDecoder(r).Decode(&reqs); err != nil {
		return nil, fmt.Errorf("decode groups: %w", err)
	}
	if len(reqs) == 0 {
		return nil, errors.New("no groups in file")
	}
	return reqs, nil
}

// seed creates every group, skipping duplicates. Other errors abort.
func seed(ctx context.Context, svc group.Service, reqs []group.CreateGroupRequest) (int, error) {
	created := 0
	for _, req := range reqs {
		g, err := svc.Create(ctx, req)
		switch {
		case errors.Is(err, group.ErrDuplicateSlug):
			log.Warn().Str("title", req.Title).Msg("Group already exists, skipping")
			continue
		case err != nil:
			return created, fmt.Errorf("create %q: %w", req.Title, err)
		}
		log.Info().Int64("id", g.ID).Str("slug", g.Slug).Msg("Group created")
		created++
	}
	return created, nil
}
