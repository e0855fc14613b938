package main

import (
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"projecthub/internal/api"
	"projecthub/internal/auth"
	"projecthub/internal/command"
	"projecthub/internal/config"
	"projecthub/internal/db"
	"projecthub/internal/httpserver"
	"projecthub/internal/mq"
	"projecthub/internal/permission"
	"projecthub/internal/redis"
	"projecthub/internal/repository/postgres"
	"projecthub/internal/service"
	"projecthub/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log := logger.NewLogger()
	defer log.Sync()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal("Config load failed", zap.Error(err))
	}

	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	publisher, err := mq.NewPublisher(cfg.MQ.URL, log)
	if err != nil {
		log.Fatal("MQ initialization failed", zap.Error(err))
	}
	defer publisher.Close()

	rdb := redis.NewClient(cfg.Redis)
	defer rdb.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(dbConn)
	projectRepo := postgres.NewProjectRepository(dbConn, log)
	taskRepo := postgres.NewTaskRepository(dbConn, log)
	teamRepo := postgres.NewTeamRepository(dbConn, log)
	milestoneRepo := postgres.NewMilestoneRepository(dbConn, log)
	timeEntryRepo := postgres.NewTimeEntryRepository(dbConn, log)

	// Auth
	hasher := auth.NewBcryptHasher(0)
	sessions := auth.NewRedisSessionStore(rdb)
	issuer := auth.NewJWTIssuer(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour, sessions)

	// Permission evaluator
	evaluator := permission.NewEvaluator(userRepo, projectRepo, taskRepo, log)

	// Command handlers
	createProject := command.NewCreateProjectHandler(projectRepo, publisher, log)
	updateProject := command.NewUpdateProjectHandler(projectRepo, publisher, log)
	completeProject := command.NewCompleteProjectHandler(projectRepo, taskRepo, publisher, log)
	createTask := command.NewCreateTaskHandler(taskRepo, projectRepo, publisher, log)
	updateTask := command.NewUpdateTaskHandler(taskRepo)
	updateTaskStatus := command.NewUpdateTaskStatusHandler(taskRepo, publisher, log)
	assignTask := command.NewAssignTaskHandler(taskRepo, userRepo, publisher, log)
	createTeam := command.NewCreateTeamHandler(teamRepo)
	updateTeam := command.NewUpdateTeamHandler(teamRepo)
	createMilestone := command.NewCreateMilestoneHandler(milestoneRepo, projectRepo)
	updateMilestone := command.NewUpdateMilestoneHandler(milestoneRepo)
	createTimeEntry := command.NewCreateTimeEntryHandler(timeEntryRepo, taskRepo)
	updateTimeEntry := command.NewUpdateTimeEntryHandler(timeEntryRepo)
	registerUser := command.NewRegisterUserHandler(userRepo, hasher)
	createUser := command.NewCreateUserHandler(userRepo)
	loginUser := command.NewLoginUserHandler(userRepo, hasher, issuer)

	// Services
	projectService := service.NewProjectService(projectRepo, evaluator, createProject, updateProject, completeProject, log)
	taskService := service.NewTaskService(taskRepo, evaluator, createTask, updateTask, updateTaskStatus, assignTask)
	teamService := service.NewTeamService(teamRepo, userRepo, createTeam, updateTeam)
	milestoneService := service.NewMilestoneService(milestoneRepo, evaluator, createMilestone, updateMilestone)
	trackingService := service.NewTimeTrackingService(timeEntryRepo, createTimeEntry, updateTimeEntry, log)
	userService := service.NewUserService(userRepo, evaluator, createUser)
	authService := service.NewAuthService(registerUser, loginUser, issuer, sessions, log)

	// HTTP
	router := httpserver.NewRouter(
		api.NewAuthHandler(authService),
		api.NewProjectHandler(projectService),
		api.NewTaskHandler(taskService),
		api.NewTeamHandler(teamService),
		api.NewMilestoneHandler(milestoneService),
		api.NewTimeTrackingHandler(trackingService),
		api.NewUserHandler(userService),
		issuer,
	)

	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatal("Server start failed", zap.Error(err))
	}
}
