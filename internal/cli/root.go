package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/martijn/taskman/internal/core/repository"
	"github.com/martijn/taskman/internal/core/service"
	"github.com/martijn/taskman/internal/infrastructure/sqlite"
	"github.com/martijn/taskman/pkg/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "taskman",
	Short: "Taskman - Task tracking service",
	Long: `Taskman is a task tracking service with a JSON API and a server-rendered dashboard.

It provides:
- User and task management over a REST API
- Filtered, paginated task listings
- A dashboard with aggregate statistics
- SQLite storage with zero external services`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is taskman.yml)")
}

// initServices initializes the database, repositories and services
func initServices() (*Services, error) {
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	userRepo := sqlite.NewUserRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)

	userService := service.NewUserService(userRepo)
	taskService := service.NewTaskService(taskRepo, userRepo)

	return &Services{
		DB:          db,
		UserRepo:    userRepo,
		TaskRepo:    taskRepo,
		UserService: userService,
		TaskService: taskService,
	}, nil
}

// Services holds all initialized services
type Services struct {
	DB          *sqlite.DB
	UserRepo    repository.UserRepository
	TaskRepo    repository.TaskRepository
	UserService *service.UserService
	TaskService *service.TaskService
}

// Close closes all resources
func (s *Services) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}
