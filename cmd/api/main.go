package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/okehris/hris-backend-go/internal/config"
	appHTTP "github.com/okehris/hris-backend-go/internal/handler/http"
	"github.com/okehris/hris-backend-go/internal/pkg/database"
	"github.com/okehris/hris-backend-go/internal/pkg/jwt"
	"github.com/okehris/hris-backend-go/internal/repository/postgresql"
	attendanceService "github.com/okehris/hris-backend-go/internal/service/attendance"
	benefitService "github.com/okehris/hris-backend-go/internal/service/benefit"
	"github.com/okehris/hris-backend-go/internal/service/master"
	payrollService "github.com/okehris/hris-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	benefitRepo := postgresql.NewBenefitRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	branchRepo := postgresql.NewBranchRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	qrTokenRepo := postgresql.NewQRTokenRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	benefitSvc := benefitService.NewBenefitService(benefitRepo)
	salarySvc := payrollService.NewSalaryService(db, salaryRepo, benefitRepo, employeeRepo)
	branchSvc := master.NewBranchService(branchRepo, cfg.BranchCode)
	attendanceSvc, err := attendanceService.NewAttendanceService(db, attendanceRepo, qrTokenRepo, branchRepo, cfg.Attendance)
	if err != nil {
		log.Fatal("Failed to initialize attendance service:", err)
	}

	benefitHandler := appHTTP.NewBenefitHandler(benefitSvc)
	salaryHandler := appHTTP.NewSalaryHandler(salarySvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	masterHandler := appHTTP.NewMasterHandler(branchSvc)

	router := appHTTP.NewRouter(
		JWTService,
		benefitHandler,
		salaryHandler,
		attendanceHandler,
		masterHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
