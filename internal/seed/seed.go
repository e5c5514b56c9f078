// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only;
// every seeded account shares the password "password123".
package seed

import (
	"fmt"
	"log"

	"github.com/clairelorenzo/app-backend-6104/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers       int
	NumPosts       int
	FriendsPerUser int
	ShouldClean    bool
	DryRun         bool
	SkipBcrypt     bool
	MaxDays        int
}

// baseUsernames are always present so developers have known logins.
var baseUsernames = []string{"claire", "clorenzo", "test"}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 10
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 30
	}
	if opts.FriendsPerUser <= 0 {
		opts.FriendsPerUser = 3
	}

	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	// Clear existing data to avoid conflicts if requested
	if opts.ShouldClean && !opts.DryRun {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)

	users, err := createUsers(db, factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	posts, err := createPosts(factory, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	comments, err := createComments(factory, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", comments)

	friendships, pending, err := createFriendGraph(factory, users, opts.FriendsPerUser)
	if err != nil {
		return fmt.Errorf("failed to create friend graph: %w", err)
	}
	log.Printf("✓ %d friendships and %d pending requests created", friendships, pending)

	events, err := createEvents(factory, users)
	if err != nil {
		return fmt.Errorf("failed to create events: %w", err)
	}
	log.Printf("✓ %d events created", events)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE comments, posts, friend_requests, friendships, events, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

// createUsers ensures the well-known base accounts exist, then fills the
// remainder with generated ones. Username collisions are skipped so the
// seeder can be re-run against a dirty database.
func createUsers(db *gorm.DB, factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	for _, username := range baseUsernames {
		if len(users) >= count {
			break
		}
		if factory.opts.DryRun {
			name := username
			user, err := factory.CreateUser(func(u *models.User) { u.Username = name })
			if err != nil {
				return nil, err
			}
			users = append(users, user)
			continue
		}

		var user models.User
		err := db.Where(models.User{Username: username}).
			Attrs(models.User{Password: factory.password}).
			FirstOrCreate(&user).Error
		if err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	for i := len(users); i < count; i++ {
		user, err := factory.CreateUser(func(u *models.User) {
			// index suffix keeps generated names unique within a run
			u.Username = fmt.Sprintf("%s%d", u.Username, i)
		})
		if err != nil {
			log.Printf("Failed to create user %d: %v", i, err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

func createPosts(factory *Factory, users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[factory.rng.Intn(len(users))]
		posts = append(posts, factory.BuildPost(author))
	}

	// chunked batch insert keeps large presets fast
	const chunk = 100
	for start := 0; start < len(posts); start += chunk {
		end := start + chunk
		if end > len(posts) {
			end = len(posts)
		}
		if err := factory.CreatePostsBatch(posts[start:end]); err != nil {
			return nil, err
		}
		if start > 0 {
			log.Printf("Created %d posts...", start)
		}
	}

	return posts, nil
}

func createComments(factory *Factory, users []*models.User, posts []*models.Post) (int, error) {
	created := 0
	for _, post := range posts {
		n := 1 + factory.rng.Intn(3)
		for i := 0; i < n; i++ {
			author := users[factory.rng.Intn(len(users))]
			if _, err := factory.CreateComment(author, post); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

// createFriendGraph connects the seeded users into a single mesh: a ring so
// nobody is isolated, random extra edges for density, and a few dangling
// pending requests between strangers.
func createFriendGraph(factory *Factory, users []*models.User, perUser int) (int, int, error) {
	if len(users) < 2 {
		return 0, 0, nil
	}

	seen := make(map[[2]uint]bool)
	pairKey := func(a, b uint) [2]uint {
		if a > b {
			a, b = b, a
		}
		return [2]uint{a, b}
	}

	// respect edges already in the database so re-runs do not trip the
	// unique pair index
	if !factory.opts.DryRun {
		var existing []models.Friendship
		if err := factory.db.Find(&existing).Error; err != nil {
			return 0, 0, err
		}
		for _, f := range existing {
			seen[pairKey(f.UserAID, f.UserBID)] = true
		}

		var open []models.FriendRequest
		if err := factory.db.Where("status = ?", models.RequestPending).Find(&open).Error; err != nil {
			return 0, 0, err
		}
		for _, r := range open {
			seen[pairKey(r.FromID, r.ToID)] = true
		}
	}

	friendships := 0
	befriend := func(a, b *models.User) error {
		key := pairKey(a.ID, b.ID)
		if a.ID == b.ID || seen[key] {
			return nil
		}
		seen[key] = true
		if err := factory.CreateFriendship(a, b); err != nil {
			return err
		}
		friendships++
		return nil
	}

	for i, user := range users {
		next := users[(i+1)%len(users)]
		if err := befriend(user, next); err != nil {
			return friendships, 0, err
		}
		for k := 1; k < perUser; k++ {
			other := users[factory.rng.Intn(len(users))]
			if err := befriend(user, other); err != nil {
				return friendships, 0, err
			}
		}
	}

	pending := 0
	for i := 0; i < len(users)/3; i++ {
		from := users[factory.rng.Intn(len(users))]
		to := users[factory.rng.Intn(len(users))]
		if from.ID == to.ID || seen[pairKey(from.ID, to.ID)] {
			continue
		}
		seen[pairKey(from.ID, to.ID)] = true
		if _, err := factory.CreateFriendRequest(from, to, models.RequestPending); err != nil {
			return friendships, pending, err
		}
		pending++
	}

	return friendships, pending, nil
}

func createEvents(factory *Factory, users []*models.User) (int, error) {
	created := 0
	for _, user := range users {
		n := 1 + factory.rng.Intn(2)
		for i := 0; i < n; i++ {
			if _, err := factory.CreateEvent(user); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}
