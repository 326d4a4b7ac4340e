package main

import (
	"fmt"
	"net/http"

	"github.com/nexora-hq/nexora-backend-go/internal/config"
	appHTTP "github.com/nexora-hq/nexora-backend-go/internal/handler/http"
	"github.com/nexora-hq/nexora-backend-go/internal/handler/http/response"
	"github.com/nexora-hq/nexora-backend-go/internal/pkg/database"
	"github.com/nexora-hq/nexora-backend-go/internal/pkg/jwt"
	"github.com/nexora-hq/nexora-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/nexora-hq/nexora-backend-go/internal/service/auth"
	salaryService "github.com/nexora-hq/nexora-backend-go/internal/service/salary"
	ticketService "github.com/nexora-hq/nexora-backend-go/internal/service/ticket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	response.SetDebug(cfg.IsDevelopment())

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	ticketRepo := postgresql.NewTicketRepository(db)
	sequenceRepo := postgresql.NewSequenceRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	salarySvc := salaryService.NewSalaryService(salaryRepo)
	ticketSvc := ticketService.NewTicketService(db, ticketRepo, sequenceRepo)

	authHandler := appHTTP.NewAuthHandler(authService)
	salaryHandler := appHTTP.NewSalaryHandler(salarySvc)
	ticketHandler := appHTTP.NewTicketHandler(ticketSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		salaryHandler,
		ticketHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
