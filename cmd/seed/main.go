// Command main runs the database seeder for the social backend.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/clairelorenzo/app-backend-6104/internal/bootstrap"
	"github.com/clairelorenzo/app-backend-6104/internal/config"
	"github.com/clairelorenzo/app-backend-6104/internal/seed"

	"gopkg.in/yaml.v3"
)

// preset mirrors seed.Options so seeding profiles can be versioned as YAML
// files. See the presets/ directory for examples.
type preset struct {
	Users          int  `yaml:"users"`
	Posts          int  `yaml:"posts"`
	FriendsPerUser int  `yaml:"friends_per_user"`
	Clean          bool `yaml:"clean"`
	MaxDays        int  `yaml:"max_days"`
}

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	friendsPerUser := flag.Int("friends", 3, "Friendships to create per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	presetPath := flag.String("preset", "", "Path to a YAML preset file (overrides count flags)")
	dryRun := flag.Bool("dry-run", false, "Log what would be created without writing")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	opts := seed.Options{
		NumUsers:       *numUsers,
		NumPosts:       *numPosts,
		FriendsPerUser: *friendsPerUser,
		ShouldClean:    *shouldClean,
		DryRun:         *dryRun,
	}

	if *presetPath != "" {
		loaded, err := loadPreset(*presetPath)
		if err != nil {
			log.Fatalf("❌ Failed to load preset %s: %v", *presetPath, err)
		}
		loaded.DryRun = *dryRun
		opts = loaded
		log.Printf("Applying preset %s: %d users, %d posts, clean=%v\n",
			*presetPath, opts.NumUsers, opts.NumPosts, opts.ShouldClean)
	} else {
		log.Printf("Target: %d users, %d posts, clean=%v\n", opts.NumUsers, opts.NumPosts, opts.ShouldClean)
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, redisClient, err := bootstrap.InitRuntime(cfg, bootstrap.Options{})
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}

	// Run seeder
	if err := seed.Seed(db, opts); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	// Cached rows and live sessions still reference pre-seed data
	if !opts.DryRun && redisClient != nil {
		if err := redisClient.FlushDB(context.Background()).Err(); err != nil {
			log.Printf("⚠️  Could not flush cache: %v", err)
		}
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Printf("📧 All test users have the password: %s\n", seed.SeedPassword)
}

func loadPreset(path string) (seed.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return seed.Options{}, err
	}

	var p preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return seed.Options{}, err
	}

	return seed.Options{
		NumUsers:       p.Users,
		NumPosts:       p.Posts,
		FriendsPerUser: p.FriendsPerUser,
		ShouldClean:    p.Clean,
		MaxDays:        p.MaxDays,
	}, nil
}
