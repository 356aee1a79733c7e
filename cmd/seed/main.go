package main

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"photoshare/internal/database"
	"photoshare/internal/domain"
)

func main() {
	db, err := database.Connect("photoshare.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM transformed_images")
	db.Exec("DELETE FROM ratings")
	db.Exec("DELETE FROM comments")
	db.Exec("DELETE FROM photo_tags")
	db.Exec("DELETE FROM tags")
	db.Exec("DELETE FROM photos")
	db.Exec("DELETE FROM blacklisted_tokens")
	db.Exec("DELETE FROM tokens")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@photoshare.local",
		Username:     "admin",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@photoshare.local / admin123")

	modHash, _ := bcrypt.GenerateFromPassword([]byte("mod123"), bcrypt.DefaultCost)
	moderator := domain.User{
		Email:        "moderator@photoshare.local",
		Username:     "moderator",
		PasswordHash: string(modHash),
		Role:         domain.RoleModerator,
		IsActive:     true,
	}
	db.Create(&moderator)

	users := []domain.User{}
	for i := 1; i <= 3; i++ {
		hash, _ := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)
		u := domain.User{
			Email:        fmt.Sprintf("user%d@photoshare.local", i),
			Username:     fmt.Sprintf("user%d", i),
			PasswordHash: string(hash),
			Role:         domain.RoleUser,
			IsActive:     true,
		}
		db.Create(&u)
		users = append(users, u)
	}

	log.Println("Creating photos...")
	nature := domain.Tag{Name: "nature"}
	city := domain.Tag{Name: "city"}
	db.Create(&nature)
	db.Create(&city)

	photos := make([]domain.Photo, 0, 6)
	for i := 0; i < 6; i++ {
		owner := users[i%len(users)]
		tag := nature
		if i%2 == 1 {
			tag = city
		}
		p := domain.Photo{
			URL:         fmt.Sprintf("/static/uploads/seed/photo-%d.jpg", i+1),
			StorageKey:  fmt.Sprintf("seed/photo-%d.jpg", i+1),
			Description: fmt.Sprintf("Seed photo %d", i+1),
			OwnerID:     owner.ID,
			Tags:        []domain.Tag{tag},
		}
		db.Create(&p)
		photos = append(photos, p)
	}

	log.Println("Creating comments and ratings...")
	for i, p := range photos {
		commenter := users[(i+1)%len(users)]
		db.Create(&domain.Comment{
			Content: fmt.Sprintf("Nice shot #%d!", i+1),
			PhotoID: p.ID,
			UserID:  commenter.ID,
		})
		if commenter.ID != p.OwnerID {
			db.Create(&domain.Rating{
				Value:   3 + i%3,
				UserID:  commenter.ID,
				PhotoID: p.ID,
			})
		}
	}

	log.Println("Seed completed")
}
