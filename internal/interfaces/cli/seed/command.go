package seed

import (
	"fmt"

	"github.com/spf13/cobra"

	appactivity "github.com/trackr-io/trackr/internal/application/activity"
	appnotification "github.com/trackr-io/trackr/internal/application/notification"
	"github.com/trackr-io/trackr/internal/infrastructure/auth"
	"github.com/trackr-io/trackr/internal/infrastructure/config"
	"github.com/trackr-io/trackr/internal/infrastructure/database"
	"github.com/trackr-io/trackr/internal/infrastructure/permission"
	"github.com/trackr-io/trackr/internal/infrastructure/repository"
	"github.com/trackr-io/trackr/internal/shared/biztime"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

var (
	env        string
	configPath string
	seedFile   string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load users, teams and projects from a YAML file",
		Long: `Create the users, teams and projects listed in a seed file.
Records that already exist are skipped, so the same file can be applied twice.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVarP(&seedFile, "file", "f", "", "Path to the seed file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	f, err := Load(seedFile)
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath, "")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, false); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger().Named("seed")

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()
	db := database.Get()

	enforcer, err := permission.NewEnforcer(db, log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := enforcer.EnsureDefaultPolicies(); err != nil {
		return fmt.Errorf("failed to seed default policies: %w", err)
	}

	seeder := NewSeeder(Deps{
		Users:    repository.NewUserRepository(db),
		Teams:    repository.NewTeamRepository(db),
		Projects: repository.NewProjectRepository(db),
		Hasher:   auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost),
		Enforcer: enforcer,
		Recorder: appactivity.NewRecorder(repository.NewActivityRepository(db), log),
		Notifier: appnotification.NewDispatcher(repository.NewNotificationRepository(db), log),
	}, log)

	log.Infow("seeding database", "environment", env, "file", seedFile)

	res, err := seeder.Run(cmd.Context(), f)
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	fmt.Printf("\nSeed complete:\n")
	fmt.Printf("  Users:    %d created, %d skipped\n", res.UsersCreated, res.UsersSkipped)
	fmt.Printf("  Teams:    %d created, %d skipped\n", res.TeamsCreated, res.TeamsSkipped)
	fmt.Printf("  Projects: %d created, %d skipped\n", res.ProjectsCreated, res.ProjectsSkipped)
	fmt.Printf("  Members:  %d added\n", res.MembersAdded)
	return nil
}
