package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/forerunnerhq/forerunner-store/pkg/admin"
	"github.com/forerunnerhq/forerunner-store/pkg/authentication"
	"github.com/forerunnerhq/forerunner-store/pkg/logging"
	"github.com/forerunnerhq/forerunner-store/pkg/status"
	"github.com/forerunnerhq/forerunner-store/pkg/storage"
	"github.com/forerunnerhq/forerunner-store/pkg/users"
)

var (
	version = "dev" // Will be set during build
	cfgFile string
)

func main() {
	cobra.CheckErr(rootCmd.Execute())
}

var rootCmd = &cobra.Command{
	Use:           "frstore",
	Short:         "FORERUNNER local data store",
	SilenceUsage:  false,
	SilenceErrors: true,
	Long: `FORERUNNER local data store (frstore)

Operational shell around the site's user and admin stores: keeps level
accrual fresh in run mode and exposes read-only inspection commands.

Configuration file must be in JSON format with the following structure:
{
    "data_dir": "/srv/forerunner/data",
    "admin_password_hash": "$argon2id$v=19$m=65536,t=2,p=1$...$...",
    "app_log_path": "/srv/forerunner/log/frstore.log",
    "audit_log_path": "/srv/forerunner/log/frstore-audit.log",
    "status_dir": "/srv/forerunner/status",
    "level_refresh_interval": 60,
    "status_update_interval": 30
}`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to config file")
	rootCmd.AddCommand(runCmd, statsCmd, drivesCmd, hashPasswordCmd, versionCmd)
}

// openStores loads the config, initializes logging and opens both stores
func openStores() (*Config, *users.Store, *admin.Store, error) {
	if cfgFile == "" {
		return nil, nil, nil, fmt.Errorf("config file is required (use --config)")
	}
	if !filepath.IsAbs(cfgFile) {
		abs, err := filepath.Abs(cfgFile)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to get absolute path: %v", err)
		}
		cfgFile = abs
	}

	var config Config
	if err := LoadConfig(cfgFile, &config); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %v", err)
	}

	level := logging.LogLevelInfo
	if config.Debug {
		level = logging.LogLevelDebug
	}
	if err := logging.Initialize(config.AuditLogPath, config.AppLogPath, level, config.LogMaxSize); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logging: %v", err)
	}

	userStorage, err := storage.NewFileStore(nil, filepath.Join(config.DataDir, "user"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open user storage: %v", err)
	}
	adminStorage, err := storage.NewFileStore(nil, filepath.Join(config.DataDir, "admin"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open admin storage: %v", err)
	}

	userStore, err := users.New(userStorage, users.Options{})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open user store: %v", err)
	}
	adminStore, err := admin.New(adminStorage, admin.Options{
		PasswordHash: config.AdminPasswordHash,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open admin store: %v", err)
	}

	return &config, userStore, adminStore, nil
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the store daemon with level refresh and health files",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, userStore, _, err := openStores()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var writer *status.Writer
		if config.StatusDir != "" {
			writer, err = status.New(config.StatusDir, time.Duration(config.StatusUpdateInterval)*time.Second, version)
			if err != nil {
				return fmt.Errorf("failed to create status writer: %v", err)
			}
			writer.SetStatsProvider(userStore)
			if err := writer.WriteStartFile(); err != nil {
				logging.App.Error("Failed to write start file", "error", err)
			}
			writer.StartHeartbeat()
		}

		fmt.Printf("FORERUNNER store %s running, data dir %s\n", version, config.DataDir)
		userStore.RunLevelRefresh(ctx, time.Duration(config.LevelRefreshInterval)*time.Second)

		if writer != nil {
			writer.Stop()
			if err := writer.WriteStopFile("shutdown"); err != nil {
				logging.App.Error("Failed to write stop file", "error", err)
			}
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print store statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, userStore, adminStore, err := openStores()
		if err != nil {
			return err
		}

		fmt.Printf("users: %d\n", userStore.UserCount())
		fmt.Printf("user posts: %d\n", userStore.PostCount())
		fmt.Printf("admin posts: %d\n", len(adminStore.Posts()))

		if top := userStore.UserWithMostPosts(); top != nil {
			fmt.Printf("most posts: %s (%d)\n", top.Username, len(userStore.PostsByUser(top.ID)))
		}
		if top := userStore.UserWithMostFollowers(); top != nil {
			fmt.Printf("most followers: %s (%d)\n", top.Username, len(top.Followers))
		}
		return nil
	},
}

var drivesCmd = &cobra.Command{
	Use:   "drives",
	Short: "List the content drives",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, adminStore, err := openStores()
		if err != nil {
			return err
		}

		for _, d := range adminStore.Drives() {
			state := "draft"
			if d.IsPublished {
				state = "published"
			}
			fmt.Printf("%-8s %-10s %q images=%d updated=%s\n",
				d.ID, state, d.Title, len(d.Images), d.LastUpdated.Format("2006-01-02"))
		}
		return nil
	},
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Generate an argon2id hash for the admin config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := authentication.NewArgon2id().Hash(args[0])
		if err != nil {
			return fmt.Errorf("failed to hash password: %v", err)
		}
		fmt.Println(hash)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("FORERUNNER store %s\n", version)
	},
}
