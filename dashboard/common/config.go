package common

import (
	"fmt"
	"strings"

	"github.com/patricioibar/points-dashboard/normalizer"
	"github.com/spf13/viper"
)

const DefaultConfigFile = "config.json"

// Config represents the application's configuration structure.
type Config struct {
	SourcePath       string             `json:"source-path" mapstructure:"source-path"`
	RegistrantsPath  string             `json:"registrants-path" mapstructure:"registrants-path"`
	SalesSheet       string             `json:"sales-sheet" mapstructure:"sales-sheet"`
	RegistrantsSheet string             `json:"registrants-sheet" mapstructure:"registrants-sheet"`
	LogLevel         string             `json:"log-level" mapstructure:"log-level"`
	Address          string             `json:"address" mapstructure:"address"`
	TopProfessionals int                `json:"top-professionals" mapstructure:"top-professionals"`
	Columns          normalizer.Columns `json:"columns" mapstructure:"columns"`
}

var requiredFields = []string{
	"source-path",
}

var optionalFields = map[string]interface{}{
	"registrants-path":  "",
	"sales-sheet":       "",
	"registrants-sheet": "Novos Cadastrados",
	"log-level":         "INFO",
	"address":           ":8080",
	"top-professionals": 0,
}

func columnDefaults() map[string]string {
	d := normalizer.DefaultColumns()
	return map[string]string{
		"columns.sale-date":       d.SaleDate,
		"columns.points":          d.Points,
		"columns.total-value":     d.TotalValue,
		"columns.order-id":        d.OrderID,
		"columns.buyer-id":        d.BuyerID,
		"columns.professional-id": d.ProfessionalID,
		"columns.store":           d.Store,
		"columns.segment":         d.Segment,
		"columns.season":          d.Season,
		"columns.registrant-id":   d.RegistrantID,
	}
}

// InitConfig reads configuration from a JSON file and environment variables
// into v. Environment variables take precedence over the config file, and
// flags bound to v take precedence over both.
func InitConfig(v *viper.Viper, configFile string) (*Config, error) {
	if configFile == "" {
		configFile = DefaultConfigFile
	}
	v.SetConfigFile(configFile)
	v.SetConfigType("json")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	for _, field := range requiredFields {
		v.BindEnv(field)
	}
	for field, def := range optionalFields {
		v.SetDefault(field, def)
	}
	for field, def := range columnDefaults() {
		v.SetDefault(field, def)
	}

	if err := v.ReadInConfig(); err != nil {
		// ignore error if config file is not found
		// as we can get all config from env vars
		if !strings.Contains(err.Error(), configFile) {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}

	for _, field := range requiredFields {
		if !v.IsSet(field) || v.GetString(field) == "" {
			return nil, fmt.Errorf("missing required config field: %s", field)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}
	config.Columns = config.Columns.WithDefaults()

	return &config, nil
}
