package main

import (
	"log"
	"time"

	"classroom-service/internal/config"
	"classroom-service/internal/database"
	"classroom-service/internal/models"
	"classroom-service/internal/repositories/postgres"
	"classroom-service/internal/services"
	"classroom-service/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logg := logger.New(cfg.LogLevel)
	logg.Info("Starting database seeding...")

	db, err := database.NewPostgresConnection(cfg.Database.URI)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	logg.Info("Database connection established")

	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	discussionRepo := postgres.NewDiscussionRepository(db)

	logg.Info("Creating initial users...")

	teacher := &models.User{
		Username: "msrivera",
		Email:    "rivera@school.example",
		Role:     models.RoleTeacher,
	}
	if err := userRepo.Create(teacher); err != nil {
		logg.Warn("Teacher might already exist", "error", err)
		teacher, err = userRepo.FindByEmail("rivera@school.example")
		if err != nil {
			log.Fatal("Failed to load seeded teacher:", err)
		}
	} else {
		logg.Info("Created teacher", "id", teacher.ID)
	}

	students := []struct {
		username string
		email    string
	}{
		{"alice", "alice@school.example"},
		{"bob", "bob@school.example"},
		{"charlie", "charlie@school.example"},
	}

	for _, s := range students {
		user := &models.User{
			Username: s.username,
			Email:    s.email,
			Role:     models.RoleStudent,
		}
		if err := userRepo.Create(user); err != nil {
			logg.Warn("Student might already exist", "username", s.username, "error", err)
		} else {
			logg.Info("Created student", "username", s.username, "id", user.ID)
		}
	}

	logg.Info("Creating sample sessions...")

	sessionService := services.NewSessionService(sessionRepo, userRepo)
	now := time.Now()
	sessions := []models.SessionRequest{
		{Title: "Algebra II: Quadratics", Subject: "math", StartsAt: now.Add(time.Hour), EndsAt: now.Add(2 * time.Hour)},
		{Title: "Intro to Photosynthesis", Subject: "biology", StartsAt: now.Add(24 * time.Hour), EndsAt: now.Add(25 * time.Hour)},
	}

	var firstSessionID uint
	for _, req := range sessions {
		session, err := sessionService.CreateSession(teacher.ID, &req)
		if err != nil {
			logg.Warn("Session might already exist", "title", req.Title, "error", err)
			continue
		}
		logg.Info("Created session", "title", session.Title, "id", session.ID)
		if firstSessionID == 0 {
			firstSessionID = session.ID
		}
	}

	if firstSessionID != 0 {
		logg.Info("Creating sample discussion...")
		alice, err := userRepo.FindByEmail("alice@school.example")
		if err == nil {
			post := &models.Post{
				SessionID: firstSessionID,
				AuthorID:  alice.ID,
				Content:   "Will the vertex form derivation be on the quiz?",
			}
			if err := discussionRepo.CreatePost(post); err != nil {
				logg.Warn("Failed to seed post", "error", err)
			} else {
				comment := &models.Comment{
					PostID:   post.ID,
					AuthorID: teacher.ID,
					Content:  "Yes, bring your notes from Tuesday.",
				}
				if err := discussionRepo.CreateComment(comment); err != nil {
					logg.Warn("Failed to seed comment", "error", err)
				}
			}
		}
	}

	logg.Info("Database seeding completed successfully!")
}
