package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"contactagenda/internal/database"
	"contactagenda/internal/domain"
	"contactagenda/internal/modules/auth"
	"contactagenda/internal/repository"
)

// Provisions the schema, the predefined roles and an initial admin account.
// Safe to run repeatedly: existing roles and users are left untouched.
func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Role{},
		&domain.UserRole{},
		&domain.RefreshToken{},
		&domain.Contact{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	ctx := context.Background()
	roleRepo := repository.NewRoleRepository(db)
	userRepo := repository.NewUserRepository(db)

	log.Println("Creating roles...")
	roles := map[string]string{
		domain.RoleAdmin: "Full administrative access",
		domain.RoleUser:  "Standard authenticated user",
		domain.RoleGuest: "Read-only access",
	}
	for name, description := range roles {
		if _, err := roleRepo.GetByName(ctx, name); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatal("role lookup failed:", err)
		}
		role, err := domain.NewRole(name, description)
		if err != nil {
			log.Fatal(err)
		}
		if err := roleRepo.Create(ctx, role); err != nil {
			log.Fatal("role creation failed:", err)
		}
	}

	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		log.Println("SEED_ADMIN_PASSWORD not set, skipping admin account")
		return
	}

	if exists, err := userRepo.ExistsByUsername(ctx, "admin"); err != nil {
		log.Fatal(err)
	} else if exists {
		log.Println("Admin account already present")
		return
	}

	log.Println("Creating admin account...")
	hash, err := auth.NewBcryptHasher().Hash(adminPassword)
	if err != nil {
		log.Fatal(err)
	}
	adminUser, err := domain.NewUser("admin", "admin@contactagenda.local", hash, "Administrator")
	if err != nil {
		log.Fatal(err)
	}
	if err := userRepo.Create(ctx, adminUser); err != nil {
		log.Fatal("admin creation failed:", err)
	}

	adminRole, err := roleRepo.GetByName(ctx, domain.RoleAdmin)
	if err != nil {
		log.Fatal(err)
	}
	link, err := domain.NewUserRole(adminUser.ID, adminRole.ID)
	if err != nil {
		log.Fatal(err)
	}
	if err := userRepo.AddUserRole(ctx, link); err != nil {
		log.Fatal(err)
	}

	log.Println("Seed completed")
}
