package main

import (
	"flag"
	"log/slog"
	"os"

	"skill-matrix/internal/config"
	"skill-matrix/internal/handler"
	"skill-matrix/internal/logger"
	"skill-matrix/internal/middleware"
	"skill-matrix/internal/model"
	"skill-matrix/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	godotenv.Load()
	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)
	middleware.SetSecret(cfg.JWT.Secret)

	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	authSvc := service.NewAuthService(db)
	workflowSvc := service.NewWorkflowService(db)
	matrixSvc := service.NewMatrixService(db)
	lookupSvc := service.NewLookupService(db)

	authH := handler.NewAuthHandler(authSvc)
	assessmentH := handler.NewAssessmentHandler(workflowSvc)
	matrixH := handler.NewMatrixHandler(matrixSvc)
	lookupH := handler.NewLookupHandler(lookupSvc)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.POST("/api/auth/login", authH.Login)
	lookup := r.Group("/api/lookup")
	lookup.GET("/roles", lookupH.Roles)
	lookup.GET("/designations", lookupH.Designations)
	lookup.GET("/teams", lookupH.Teams)
	lookup.GET("/categories", lookupH.Categories)
	lookup.GET("/hr-list", lookupH.HRList)

	api := r.Group("/api", middleware.JWTAuth())
	api.GET("/auth/profile", authH.Profile)
	api.POST("/auth/update-password", authH.UpdatePassword)
	api.GET("/skills", lookupH.Skills)
	api.GET("/skills/:id/levels", lookupH.SkillLevels)
	api.GET("/designations/:id/thresholds", lookupH.Thresholds)

	staff := api.Group("", middleware.RequireRole(model.RoleEmployee, model.RoleLead))
	staff.GET("/employee/my-assessment", assessmentH.MyAssessment)
	staff.POST("/employee/submit-assessment", assessmentH.SubmitAssessment)
	staff.GET("/employee/approved-skill-matrix", matrixH.ApprovedSkillMatrix)

	lead := api.Group("", middleware.RequireRole(model.RoleLead))
	lead.GET("/lead/team-assessments", assessmentH.TeamAssessments)
	lead.POST("/lead/submit-rating", assessmentH.SubmitLeadRating)
	lead.GET("/team/skill-matrix", matrixH.TeamSkillMatrix)

	hrLead := api.Group("", middleware.RequireRole(model.RoleHR, model.RoleLead))
	hrLead.GET("/auth/employees", authH.Employees)

	hr := api.Group("", middleware.RequireRole(model.RoleHR))
	hr.POST("/auth/register", authH.Register)
	hr.POST("/hrinitiate", assessmentH.Initiate)
	hr.GET("/hr/pending-assessments", assessmentH.PendingAssessments)
	hr.POST("/hr/approve-assessment", assessmentH.ApproveAssessment)
	hr.GET("/hr/teams", lookupH.TeamOverviews)
	hr.GET("/hr/teams/:id/members", lookupH.TeamMembers)

	slog.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}
