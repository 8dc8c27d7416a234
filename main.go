package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ReshmithaBathala/bookingbackend/config"
	"github.com/ReshmithaBathala/bookingbackend/database"
	"github.com/ReshmithaBathala/bookingbackend/logger"
	"github.com/ReshmithaBathala/bookingbackend/util/common"
	"github.com/ReshmithaBathala/bookingbackend/util/random"
	"github.com/ReshmithaBathala/bookingbackend/web"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func loadConfig(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal("load config: ", err)
	}
	return cfg
}

func initLogger() {
	level, err := logger.LevelFromConfig(config.GetLogLevel())
	if err != nil {
		log.Fatal(err)
	}
	logger.InitLogger(level)
}

func runWebServer(path string) {
	log.Printf("%v %v", config.GetName(), config.GetVersion())
	// Load first: .env may carry BOOKING_LOG_LEVEL
	cfg := loadConfig(path)
	initLogger()
	defer logger.CloseLogger()

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatal(err)
	}

	server := web.NewServer(cfg, db)
	if err = server.Start(); err != nil {
		logger.Error("start server err:", err)
		_ = database.CloseDB()
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("received SIGHUP, restarting server")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer(cfg, db)
			if err := server.Start(); err != nil {
				logger.Error("restart server err:", err)
				_ = database.CloseDB()
				return
			}
		default:
			logger.Infof("received %s, shutting down", sig)
			if err := common.Combine(server.Stop(), database.CloseDB()); err != nil {
				logger.Warning("shutdown err:", err)
			}
			return
		}
	}
}

func migrateDb(path string) {
	cfg := loadConfig(path)
	fmt.Println("Start migrating database...")
	if _, err := database.InitDB(&cfg.Database); err != nil {
		log.Fatal(err)
	}
	if err := database.CloseDB(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Migration done!")
}

func showSetting(path string) {
	cfg := loadConfig(path)
	out, err := json.MarshalIndent(cfg.Masked(), "", "  ")
	if err != nil {
		fmt.Println("marshal settings failed:", err)
		return
	}
	fmt.Println("current settings as follows:")
	fmt.Println(string(out))
}

func main() {
	var configPath string

	var rootCmd = &cobra.Command{
		Use:     config.GetName(),
		Short:   "Train seat booking API",
		Version: config.GetVersion(),
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.GetConfigPath(), "path to the TOML config file")

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer(configPath)
		},
	}

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Run: func(cmd *cobra.Command, args []string) {
			migrateDb(configPath)
		},
	}

	var settingCmd = &cobra.Command{
		Use:   "setting",
		Short: "Inspect settings",
	}

	var showCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the effective settings with secrets masked",
		Run: func(cmd *cobra.Command, args []string) {
			showSetting(configPath)
		},
	}
	settingCmd.AddCommand(showCmd)

	var genkeyCmd = &cobra.Command{
		Use:   "genkey",
		Short: "Generate a JWT secret and an admin API key",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("BOOKING_JWT_SECRET=" + random.Secret(32))
			fmt.Println("BOOKING_ADMIN_API_KEY=" + random.Seq(40))
		},
	}

	rootCmd.AddCommand(runCmd, migrateCmd, settingCmd, genkeyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
