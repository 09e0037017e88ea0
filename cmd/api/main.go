package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alipatel16/patel-enterprise-backoffice/internal/config"
	appHTTP "github.com/alipatel16/patel-enterprise-backoffice/internal/handler/http"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/clock"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/cron"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/database"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/jwt"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/repository/postgresql"
	attendanceService "github.com/alipatel16/patel-enterprise-backoffice/internal/service/attendance"
	penaltyService "github.com/alipatel16/patel-enterprise-backoffice/internal/service/penalty"
	policyService "github.com/alipatel16/patel-enterprise-backoffice/internal/service/policy"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.Timeout)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	loc, err := time.LoadLocation(cfg.Store.Timezone)
	if err != nil {
		fmt.Println("Error loading store timezone:", err)
		return
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	penaltyRepo := postgresql.NewPenaltyRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	transactor := postgresql.NewTransactor(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	systemClock := clock.System()

	penaltySvc := penaltyService.NewPenaltyService(penaltyRepo, policyRepo, attendanceRepo, systemClock)
	policySvc := policyService.NewPolicyService(policyRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		transactor,
		attendanceRepo,
		employeeRepo,
		penaltySvc,
		systemClock,
		attendanceService.Options{
			Location:          loc,
			AutoCheckoutClock: cfg.Store.AutoCheckoutClock,
		},
	)

	scheduler := cron.NewScheduler(systemClock)
	cron.NewAttendanceJobs(attendanceSvc).RegisterJobs(scheduler, cfg.Store.SweepInterval)
	// Sweep immediately so sessions left open across a restart close now.
	scheduler.RunOnce(context.Background())
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	penaltyHandler := appHTTP.NewPenaltyHandler(penaltySvc, employeeRepo)
	policyHandler := appHTTP.NewPolicyHandler(policySvc)

	router := appHTTP.NewRouter(
		jwtService,
		attendanceHandler,
		penaltyHandler,
		policyHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
