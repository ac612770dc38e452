package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/crimson-sun/winnow/internal/config"
	"github.com/crimson-sun/winnow/internal/detect"
	"github.com/crimson-sun/winnow/internal/logging"
	"github.com/crimson-sun/winnow/internal/pipeline"
	"github.com/crimson-sun/winnow/internal/store"

	// Register store providers.
	_ "github.com/crimson-sun/winnow/internal/store/drive"
	_ "github.com/crimson-sun/winnow/internal/store/memstore"
)

var rootCmd = &cobra.Command{
	Use:           "winnow",
	Short:         "Incremental CSV cleaning against a remote file store",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagFolderID    string
	flagCredentials string
	flagTodayOnly   bool
	flagTZ          string
	flagStore       string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one synchronization pass",
	Long: `Run one synchronization pass against the root folder.

Every CSV file directly under the root folder is a candidate. Candidates
whose cleaned copy in data_cleaned/ is already at least as fresh are skipped;
the rest are downloaded, normalized and uploaded as <name>_cleaned.csv. Each
attempt is recorded in data_cleaned/_pipeline_log.csv.

A failing file is logged and does not stop the run; only setup failures
(credentials, initial listing) exit non-zero.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if cmd.Flags().Changed("folder-id") {
			cfg.Run.FolderID = flagFolderID
		}
		if cmd.Flags().Changed("credentials") {
			cfg.Store.CredentialsPath = flagCredentials
		}
		if cmd.Flags().Changed("run-today-only") {
			cfg.Run.TodayOnly = flagTodayOnly
		}
		if cmd.Flags().Changed("tz") {
			cfg.Run.Timezone = flagTZ
		}
		if cmd.Flags().Changed("store") {
			cfg.Store.Provider = flagStore
		}

		logging.Init(cfg.Log.JSON, logging.ParseLevel(cfg.Log.Level), cfg.Log.File)

		if cfg.Run.FolderID == "" {
			return errors.New("missing root folder: set --folder-id or WINNOW_FOLDER_ID")
		}
		ctor, err := store.Get(cfg.Store.Provider)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		s, err := ctor(ctx, store.Config{CredentialsPath: cfg.Store.CredentialsPath})
		if err != nil {
			return err
		}

		det := detect.New(cfg.Run.TodayOnly, detect.Location(cfg.Run.Timezone))
		sum, err := pipeline.New(s, det, cfg.Run.FolderID).Run(ctx)
		if err != nil {
			return err
		}
		fmt.Println(sum)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&flagFolderID, "folder-id", "", "root folder ID holding the raw CSV files")
	runCmd.Flags().StringVar(&flagCredentials, "credentials", "credentials.json", "service account credentials file")
	runCmd.Flags().BoolVar(&flagTodayOnly, "run-today-only", true, "only sync sources modified today")
	runCmd.Flags().StringVar(&flagTZ, "tz", "America/New_York", "IANA timezone for the today-only window")
	runCmd.Flags().StringVar(&flagStore, "store", "drive", "store provider (drive, memory)")
	rootCmd.AddCommand(runCmd)
}

func main() {
	// A .env file is optional; absence is not an error.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
