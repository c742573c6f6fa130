package main

import (
	"fmt"
	"os"

	"github.com/op/go-logging"
	"github.com/patricioibar/points-dashboard/dashboard/common"
	"github.com/patricioibar/points-dashboard/loader"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var log = logging.MustGetLogger("log")

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Sales and loyalty points dashboard",
	Long: `Loads the sales workbook and the new-registrant roster once, then
answers filter selections with points, orders, new clients, tiers and
month-by-season pivots.

Configuration comes from config.json, environment variables (SOURCE_PATH,
LOG_LEVEL, COLUMNS_STORE, ...) and flags, in increasing precedence.`,
	SilenceUsage: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("config", common.DefaultConfigFile, "path to the JSON config file")
	f.String("source-path", "", "sales workbook (.xlsx), CSV or JSON file")
	f.String("registrants-path", "", "registrant file, for CSV and JSON sources")
	f.String("log-level", "", "log level (DEBUG, INFO, WARNING, ERROR)")

	for _, name := range []string{"source-path", "registrants-path", "log-level"} {
		if err := v.BindPFlag(name, f.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// InitLogger Receives the log level to be set in go-logging as a string. This method
// parses the string and set the level to the logger. If the level string is not
// valid an error is returned
func InitLogger(logLevel string) error {
	baseBackend := logging.NewLogBackend(os.Stderr, "", 0)
	format := logging.MustStringFormatter(
		`%{time:2006-01-02 15:04:05} %{level:.5s}     %{message}`,
	)
	backendFormatter := logging.NewBackendFormatter(baseBackend, format)

	backendLeveled := logging.AddModuleLevel(backendFormatter)
	logLevelCode, err := logging.LogLevel(logLevel)
	if err != nil {
		return err
	}
	backendLeveled.SetLevel(logLevelCode, "")

	logging.SetBackend(backendLeveled)
	return nil
}

// setup reads the config, starts logging and builds the dashboard from the
// configured source. Only a source that cannot be read at all stops it.
func setup(cmd *cobra.Command) (*common.Dashboard, *common.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	config, err := common.InitConfig(v, configFile)
	if err != nil {
		return nil, nil, err
	}
	if err := InitLogger(config.LogLevel); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", config.LogLevel, err)
	}
	log.Debugf("Config: %+v", config)

	src, err := loader.Load(config.SourcePath, loader.Options{
		SalesSheet:       config.SalesSheet,
		RegistrantsSheet: config.RegistrantsSheet,
		RegistrantsPath:  config.RegistrantsPath,
	})
	if err != nil {
		if loader.IsMissingSource(err) {
			log.Errorf("Source %s is not available: %v", config.SourcePath, err)
		}
		return nil, nil, fmt.Errorf("loading %s: %w", config.SourcePath, err)
	}

	return common.New(src, config), config, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
