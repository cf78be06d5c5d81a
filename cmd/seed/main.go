package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/domain"
	jwtsvc "skillswap/internal/pkg/jwt"
	"skillswap/internal/pkg/logger"
	"skillswap/internal/repository"
)

// Seeds a small demo marketplace: two providers, one seeker, a skill for
// each party and two weeks of open slots. Prints ready-to-use bearer
// tokens so the API can be exercised immediately.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog := logger.New(cfg.Env)
	db, err := database.Connect(cfg.DatabaseURL, zlog)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed: ", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM skill_swap_agreements")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM time_slots")
	db.Exec("DELETE FROM skills")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	skills := repository.NewSkillRepository(db)
	slots := repository.NewSlotRepository(db)

	log.Println("Creating users...")
	alice := &domain.User{Email: "alice@example.com", Name: "Alice", Role: domain.RoleProvider}
	bela := &domain.User{Email: "bela@example.com", Name: "Bela", Role: domain.RoleProvider}
	carol := &domain.User{Email: "carol@example.com", Name: "Carol", Role: domain.RoleSeeker}
	for _, u := range []*domain.User{alice, bela, carol} {
		if err := users.Create(ctx, u); err != nil {
			log.Fatal("user insert failed: ", err)
		}
	}

	log.Println("Creating skills...")
	for _, s := range []*domain.Skill{
		{OwnerID: alice.ID, Name: "Guitar lessons", Description: "Acoustic, beginner to intermediate"},
		{OwnerID: bela.ID, Name: "Spanish conversation", Description: "Native speaker, B1 and up"},
		{OwnerID: carol.ID, Name: "Web design", Description: "Landing pages and portfolios"},
	} {
		if err := skills.Create(ctx, s); err != nil {
			log.Fatal("skill insert failed: ", err)
		}
	}

	log.Println("Creating time slots...")
	day := time.Now().Truncate(24 * time.Hour).Add(24 * time.Hour)
	for d := 0; d < 14; d++ {
		date := day.AddDate(0, 0, d)
		for _, provider := range []*domain.User{alice, bela} {
			for _, hour := range []int{10, 14, 17} {
				start := date.Add(time.Duration(hour) * time.Hour)
				slot := &domain.TimeSlot{
					ProviderID:  provider.ID,
					Date:        date,
					StartTime:   start,
					EndTime:     start.Add(time.Hour),
					IsAvailable: true,
				}
				if err := slots.Create(ctx, slot); err != nil {
					log.Fatal("slot insert failed: ", err)
				}
			}
		}
	}

	tokens := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	for _, u := range []*domain.User{alice, bela, carol} {
		token, err := tokens.GenerateToken(u.ID, u.Role)
		if err != nil {
			log.Fatal("token generation failed: ", err)
		}
		fmt.Printf("%s (%s, id=%d):\n  %s\n", u.Name, u.Role, u.ID, token)
	}

	log.Println("Done.")
}
