package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/digitalis-hr/pointage-backend-go/internal/config"
	appHTTP "github.com/digitalis-hr/pointage-backend-go/internal/handler/http"
	"github.com/digitalis-hr/pointage-backend-go/internal/pkg/database"
	"github.com/digitalis-hr/pointage-backend-go/internal/pkg/jwt"
	"github.com/digitalis-hr/pointage-backend-go/internal/pkg/storage"
	"github.com/digitalis-hr/pointage-backend-go/internal/repository/postgresql"
	attendanceService "github.com/digitalis-hr/pointage-backend-go/internal/service/attendance"
	serviceAuth "github.com/digitalis-hr/pointage-backend-go/internal/service/auth"
	"github.com/digitalis-hr/pointage-backend-go/internal/service/file"
	"github.com/digitalis-hr/pointage-backend-go/internal/service/master"
	planningService "github.com/digitalis-hr/pointage-backend-go/internal/service/planning"
	reportService "github.com/digitalis-hr/pointage-backend-go/internal/service/report"
	workerService "github.com/digitalis-hr/pointage-backend-go/internal/service/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	ctx := context.Background()
	dsn := cfg.DatabaseURL()

	if err := database.RunMigrations(ctx, dsn); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	workerRepo := postgresql.NewWorkerRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	planningRepo := postgresql.NewPlanningRepository(db)
	campaignRepo := postgresql.NewCampaignRepository(db)
	roleRepo := postgresql.NewRoleRepository(db)
	userRepo := postgresql.NewUserRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	inTx := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return postgresql.WithTransaction(ctx, db, fn)
	}

	fileService := file.NewFileService(fileStorage)
	resolver := workerService.NewResolver(workerRepo)
	workerSvc := workerService.NewWorkerService(workerRepo, fileService)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, resolver, fileService, inTx)
	planningSvc := planningService.NewPlanningService(planningRepo, resolver, inTx)
	reportSvc := reportService.NewReportService(attendanceSvc)
	masterSvc := master.NewMasterService(campaignRepo, roleRepo)
	authSvc := serviceAuth.NewAuthService(userRepo, jwtService)

	if err := authSvc.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatal("Failed to bootstrap admin account:", err)
	}

	router := appHTTP.NewRouter(cfg, jwtService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Worker:     appHTTP.NewWorkerHandler(workerSvc),
		Planning:   appHTTP.NewPlanningHandler(planningSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Master:     appHTTP.NewMasterHandler(masterSvc),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
