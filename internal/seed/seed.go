// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"microblog/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// DemoPassword is the password every seeded account signs in with.
const DemoPassword = "DemoPassword42"

// Seed populates the database with demo data: verified users, a mix of live
// posts and drafts, comments, and reactions. The reaction catalog must be
// seeded first.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway")
		}
	}

	if err := ReactionReferences(db); err != nil {
		return fmt.Errorf("seed reaction catalog: %w", err)
	}

	users, err := seedUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	posts, err := seedPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}

	if err := seedCommentsAndReactions(db, users, posts); err != nil {
		return fmt.Errorf("seed comments and reactions: %w", err)
	}

	log.Println("Seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	// Children before parents so FK constraints never fire.
	tables := []interface{}{
		&models.Reaction{},
		&models.Reactable{},
		&models.Comment{},
		&models.Post{},
		&models.RevokedToken{},
		&models.UserAuth{},
		&models.UserSettings{},
		&models.User{},
	}
	for _, table := range tables {
		if err := db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedUsers(db *gorm.DB, n int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		name := gofakeit.Name()
		username := fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i)
		email := fmt.Sprintf("%s@%s", username, gofakeit.DomainName())

		user := models.User{
			Email:    email,
			Username: username,
			Name:     name,
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			settings := models.UserSettings{
				UserID:    user.ID,
				ShowEmail: gofakeit.Bool(),
				ShowName:  gofakeit.Bool(),
			}
			if err := tx.Create(&settings).Error; err != nil {
				return err
			}
			auth := models.UserAuth{
				UserID:     user.ID,
				Email:      email,
				Username:   username,
				Password:   string(hash),
				IsVerified: true,
			}
			return tx.Create(&auth).Error
		})
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func seedPosts(db *gorm.DB, users []models.User, n int) ([]models.Post, error) {
	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[rand.Intn(len(users))]
		post := models.Post{
			Title:    gofakeit.Sentence(gofakeit.Number(3, 8)),
			Content:  gofakeit.Paragraph(1, gofakeit.Number(2, 5), gofakeit.Number(5, 15), " "),
			AuthorID: author.ID,
			// Roughly one post in five stays a draft.
			IsLive: rand.Intn(5) != 0,
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&post).Error; err != nil {
				return err
			}
			return tx.Create(&models.Reactable{
				ResourceID:   post.ID,
				ResourceType: models.ResourceTypePost,
			}).Error
		})
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func seedCommentsAndReactions(db *gorm.DB, users []models.User, posts []models.Post) error {
	for _, post := range posts {
		if !post.IsLive {
			continue
		}

		for i := 0; i < rand.Intn(4); i++ {
			author := users[rand.Intn(len(users))]
			comment := models.Comment{
				Content:  gofakeit.Sentence(gofakeit.Number(4, 20)),
				PostID:   post.ID,
				AuthorID: author.ID,
				IsLive:   true,
			}
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&comment).Error; err != nil {
					return err
				}
				return tx.Create(&models.Reactable{
					ResourceID:   comment.ID,
					ResourceType: models.ResourceTypeComment,
				}).Error
			})
			if err != nil {
				return err
			}
		}

		var reactable models.Reactable
		if err := db.Where("resource_id = ? AND resource_type = ?", post.ID, models.ResourceTypePost).
			First(&reactable).Error; err != nil {
			return err
		}
		// A random subset of users reacts, at most once each.
		reactors := rand.Perm(len(users))[:rand.Intn(len(users)+1)]
		for _, idx := range reactors {
			reaction := models.Reaction{
				UserID:      users[idx].ID,
				ReactableID: reactable.ID,
				ReactionID:  BuiltInReactions[rand.Intn(len(BuiltInReactions))].ID,
			}
			if err := db.Create(&reaction).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
