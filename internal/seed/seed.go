// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	VocabFile   string
}

// Run populates the database with fake users, the vocabulary's categories,
// and posts created through the repository layer so tag resolution and
// association replacement run exactly as they do in production.
func Run(db *gorm.DB, opts Options) error {
	ctx := context.Background()

	if opts.NumUsers <= 0 {
		opts.NumUsers = 10
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 50
	}

	vocab := DefaultVocabulary()
	if opts.VocabFile != "" {
		loaded, err := LoadVocabulary(opts.VocabFile)
		if err != nil {
			return err
		}
		vocab = loaded
	}

	if opts.ShouldClean {
		if err := clean(db); err != nil {
			return err
		}
	}

	users, err := seedUsers(db, opts.NumUsers)
	if err != nil {
		return err
	}

	categories, err := seedCategories(db, vocab.Categories)
	if err != nil {
		return err
	}

	postRepo := repository.NewPostRepository(db)
	created := 0
	for i := 0; i < opts.NumPosts; i++ {
		author := users[rand.Intn(len(users))]

		var categoryID *uint
		if rand.Intn(10) != 0 { // roughly one in ten posts has no category
			categoryID = &categories[rand.Intn(len(categories))].ID
		}

		tags := pickTags(vocab.Tags, rand.Intn(4))

		title := fmt.Sprintf("%s #%d", strings.TrimSuffix(gofakeit.Sentence(5), "."), i+1)
		_, err := postRepo.Create(ctx, author.ID, repository.PostInput{
			Title:      title,
			Content:    gofakeit.Paragraph(2, 4, 12, " "),
			CategoryID: categoryID,
			Tags:       tags,
		})
		if err != nil {
			return fmt.Errorf("failed to seed post %d: %w", i+1, err)
		}
		created++
	}

	log.Printf("Seeded %d users, %d categories, %d posts", len(users), len(categories), created)
	return nil
}

func clean(db *gorm.DB) error {
	for _, table := range []string{"post_tags", "posts", "tags", "categories", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clean table %s: %w", table, err)
		}
	}
	return nil
}

func seedUsers(db *gorm.DB, n int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			Username:     fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:        gofakeit.Email(),
			PasswordHash: string(hash),
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to seed user: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

func seedCategories(db *gorm.DB, names []string) ([]models.Category, error) {
	categories := make([]models.Category, 0, len(names))
	for _, name := range names {
		category := models.Category{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&category).Error; err != nil {
			return nil, fmt.Errorf("failed to seed category %s: %w", name, err)
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func pickTags(pool []string, n int) []string {
	if n == 0 || len(pool) == 0 {
		return nil
	}
	picked := make([]string, 0, n)
	perm := rand.Perm(len(pool))
	for i := 0; i < n && i < len(pool); i++ {
		picked = append(picked, pool[perm[i]])
	}
	return picked
}
