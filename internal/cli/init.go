package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/martijn/taskman/internal/core/domain"
)

var withSampleData bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the database",
	Long:  "Create the database schema, wiping any existing data, and optionally load sample data",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		ctx := cmd.Context()

		// Opening the database creates the schema, so a re-run only needs to
		// clear existing rows and reset the id sequences.
		err = services.DB.Transact(ctx, func(tx *sqlx.Tx) error {
			statements := []string{
				`DELETE FROM tasks`,
				`DELETE FROM users`,
				`DELETE FROM sqlite_sequence WHERE name IN ('tasks', 'users')`,
			}
			for _, stmt := range statements {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to reset database: %w", err)
		}
		fmt.Println("Created database tables")

		if withSampleData {
			if err := seedSampleData(ctx, services); err != nil {
				return fmt.Errorf("failed to load sample data: %w", err)
			}
			fmt.Println("Added sample data")
			fmt.Println("\nSample users created:")
			fmt.Println("- alice_dev (alice@example.com)")
			fmt.Println("- bob_manager (bob@example.com)")
			fmt.Println("- charlie_tester (charlie@example.com)")
			fmt.Println("Password for all users: password123")
		}

		fmt.Println("Database initialization completed successfully!")
		return nil
	},
}

type sampleTask struct {
	title       string
	description string
	owner       int
	status      domain.TaskStatus
	priority    domain.TaskPriority
	dueInDays   int
	doneDaysAgo int
}

func seedSampleData(ctx context.Context, services *Services) error {
	usernames := []struct {
		username string
		email    string
	}{
		{"alice_dev", "alice@example.com"},
		{"bob_manager", "bob@example.com"},
		{"charlie_tester", "charlie@example.com"},
	}

	users := make([]int64, len(usernames))
	for i, u := range usernames {
		user, err := services.UserService.CreateUser(ctx, u.username, u.email, "password123")
		if err != nil {
			return err
		}
		users[i] = user.ID
	}

	tasks := []sampleTask{
		{"Set up CI/CD pipeline", "Configure GitHub Actions for automated testing and deployment", 0, domain.StatusInProgress, domain.PriorityHigh, 3, 0},
		{"Write API documentation", "Create comprehensive API documentation using OpenAPI/Swagger", 0, domain.StatusPending, domain.PriorityMedium, 7, 0},
		{"Review code changes", "Review pull requests for the authentication module", 1, domain.StatusCompleted, domain.PriorityHigh, 0, 1},
		{"Deploy staging environment", "Set up staging environment on AWS ECS", 1, domain.StatusPending, domain.PriorityHigh, 2, 0},
		{"Write unit tests", "Increase test coverage for user authentication endpoints", 2, domain.StatusInProgress, domain.PriorityMedium, 5, 0},
		{"Performance testing", "Load test the API endpoints with various scenarios", 2, domain.StatusPending, domain.PriorityLow, 10, 0},
		{"Database migration", "Migrate user data from legacy system", 1, domain.StatusCompleted, domain.PriorityHigh, 0, 3},
		{"Security audit", "Conduct security review of authentication and authorization", 0, domain.StatusPending, domain.PriorityHigh, 14, 0},
	}

	now := time.Now().UTC()
	for _, st := range tasks {
		task := domain.NewTask(st.title, st.description, users[st.owner])
		task.Priority = st.priority

		// Completed samples get a backdated completion timestamp by running
		// the status transition with a past clock.
		if st.status == domain.StatusCompleted {
			task.SetStatus(st.status, now.AddDate(0, 0, -st.doneDaysAgo))
		} else {
			task.SetStatus(st.status, now)
			due := now.AddDate(0, 0, st.dueInDays)
			task.DueDate = &due
		}

		if err := services.TaskRepo.Create(ctx, task); err != nil {
			return err
		}
	}

	fmt.Printf("Created %d users and %d tasks\n", len(users), len(tasks))
	return nil
}

func init() {
	initCmd.Flags().BoolVarP(&withSampleData, "sample-data", "s", false, "populate the database with sample users and tasks")
	rootCmd.AddCommand(initCmd)
}
