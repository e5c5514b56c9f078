package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/clairelorenzo/app-backend-6104/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
	// bcrypt is slow, so the shared seed password is hashed once
	password string
}

// SeedPassword is the plaintext credential every seeded account gets.
const SeedPassword = "password123"

// postBackgrounds is a small palette for the optional post styling column.
var postBackgrounds = []string{
	"#f8e8ee", "#e8f4f8", "#fef9e7", "#eafaf1", "#f4ecf7", "#fdf2e9",
}

// eventTemplates pairs plausible names with their category so seeded
// calendars look coherent.
var eventTemplates = []struct {
	name string
	kind models.EventType
}{
	{"Morning deep work", models.EventFocus},
	{"Library sprint", models.EventFocus},
	{"Problem set grind", models.EventFocus},
	{"Reading block", models.EventFocus},
	{"Board game night", models.EventSocial},
	{"Coffee catchup", models.EventSocial},
	{"Team dinner", models.EventSocial},
	{"Movie night", models.EventSocial},
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())

	f := &Factory{
		db: db,
		//nolint:gosec // Weak random number generator is fine for seeding
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		opts:   opts,
		nextID: 1000,
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if opts.SkipBcrypt {
		f.password = SeedPassword
	} else {
		hashed, _ := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
		f.password = string(hashed)
	}
	return f
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Password: f.password,
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s", user.Username)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post for the given author without persisting it.
// Useful for batching.
func (f *Factory) BuildPost(author *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		AuthorID: author.ID,
		Content:  gofakeit.Paragraph(1, 3, 8, "\n"),
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	// some authors pick a card background, most leave the default
	if f.rng.Float32() < 0.4 {
		post.Options = &models.PostOptions{
			BackgroundColor: postBackgrounds[f.rng.Intn(len(postBackgrounds))],
		}
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost constructs and persists a sample `models.Post` for the given author.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(author, overrides...)

	if f.opts.DryRun {
		f.nextID++
		post.ID = f.nextID
		log.Printf("[dry-run] CreatePost: author=%d len=%d", post.AuthorID, len(post.Content))
		return post, nil
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePostsBatch persists multiple posts in a single DB call when possible.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	if f.opts.DryRun {
		for _, p := range posts {
			f.nextID++
			p.ID = f.nextID
		}
		log.Printf("[dry-run] CreatePostsBatch: %d posts (no DB write)", len(posts))
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateComment constructs and persists a sample `models.Comment` on the
// provided post authored by the provided user.
func (f *Factory) CreateComment(author *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		AuthorID: author.ID,
		PostID:   post.ID,
		Content:  gofakeit.Sentence(8),
	}

	// comments land after the post they answer
	if !post.CreatedAt.IsZero() {
		at := post.CreatedAt.Add(time.Duration(f.rng.Intn(72)) * time.Hour)
		if at.After(time.Now()) {
			at = time.Now()
		}
		comment.CreatedAt = at
	}

	for _, override := range overrides {
		override(comment)
	}

	if f.opts.DryRun {
		f.nextID++
		comment.ID = f.nextID
		log.Printf("[dry-run] CreateComment: author=%d post=%d", comment.AuthorID, comment.PostID)
		return comment, nil
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateFriendRequest persists a directed request between two users in the
// given lifecycle state.
func (f *Factory) CreateFriendRequest(from, to *models.User, status models.RequestStatus) (*models.FriendRequest, error) {
	request := &models.FriendRequest{
		FromID: from.ID,
		ToID:   to.ID,
		Status: status,
	}

	if f.opts.DryRun {
		f.nextID++
		request.ID = f.nextID
		log.Printf("[dry-run] CreateFriendRequest: %d -> %d (%s)", request.FromID, request.ToID, status)
		return request, nil
	}

	if err := f.db.Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

// CreateFriendship persists an established friendship between two users,
// together with the accepted request that would have produced it.
func (f *Factory) CreateFriendship(a, b *models.User) error {
	if _, err := f.CreateFriendRequest(a, b, models.RequestAccepted); err != nil {
		return err
	}

	friendship := &models.Friendship{
		UserAID: a.ID,
		UserBID: b.ID,
	}

	if f.opts.DryRun {
		log.Printf("[dry-run] CreateFriendship: %d <-> %d", a.ID, b.ID)
		return nil
	}
	return f.db.Create(friendship).Error
}

// CreateEvent constructs and persists a sample `models.Event` owned by the
// provided user, scheduled in the near future.
func (f *Factory) CreateEvent(owner *models.User, overrides ...func(*models.Event)) (*models.Event, error) {
	template := eventTemplates[f.rng.Intn(len(eventTemplates))]

	start := time.Now().
		AddDate(0, 0, f.rng.Intn(14)).
		Truncate(time.Hour).
		Add(time.Duration(8+f.rng.Intn(12)) * time.Hour)

	event := &models.Event{
		OwnerID:   owner.ID,
		Name:      template.name,
		Type:      template.kind,
		StartTime: start,
		EndTime:   start.Add(time.Duration(1+f.rng.Intn(3)) * time.Hour),
	}

	for _, override := range overrides {
		override(event)
	}

	if f.opts.DryRun {
		f.nextID++
		event.ID = f.nextID
		log.Printf("[dry-run] CreateEvent: owner=%d %q (%s)", event.OwnerID, event.Name, event.Type)
		return event, nil
	}

	if err := f.db.Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}
