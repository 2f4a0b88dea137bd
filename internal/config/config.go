package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/finquery/finquery/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Debug      bool             `mapstructure:"debug"`
	Query      QueryConfig      `mapstructure:"query"`
	Capability CapabilityConfig `mapstructure:"capability"`
	Scripts    ScriptsConfig    `mapstructure:"scripts"`
	Render     RenderConfig     `mapstructure:"render"`
}

type QueryConfig struct {
	// Aliases extends the built-in name-to-code table.
	Aliases map[string]string `mapstructure:"aliases"`
}

type CapabilityConfig struct {
	Provider  string          `mapstructure:"provider"`
	Timeout   time.Duration   `mapstructure:"timeout"`
	Eastmoney EastmoneyConfig `mapstructure:"eastmoney"`
}

type EastmoneyConfig struct {
	HistoryURL    string `mapstructure:"history_url"`
	ListURL       string `mapstructure:"list_url"`
	FlowURL       string `mapstructure:"flow_url"`
	PoolURL       string `mapstructure:"pool_url"`
	DataCenterURL string `mapstructure:"datacenter_url"`
	NewsURL       string `mapstructure:"news_url"`
	ReportURL     string `mapstructure:"report_url"`
}

type ScriptsConfig struct {
	Analyze   ScriptConfig `mapstructure:"analyze"`
	Portfolio ScriptConfig `mapstructure:"portfolio"`
}

type ScriptConfig struct {
	Command []string      `mapstructure:"command"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type RenderConfig struct {
	Platform string `mapstructure:"platform"`
}

// Load reads configuration from the given file (optional), environment
// variables with the FINQUERY_ prefix, and built-in defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("FINQUERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, core.WrapError(core.ErrConfigInvalid, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, core.WrapError(core.ErrConfigInvalid, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("capability.provider", "eastmoney")
	v.SetDefault("capability.timeout", 10*time.Second)
	v.SetDefault("capability.eastmoney.history_url", "https://push2his.eastmoney.com/api/qt/stock/kline/get")
	v.SetDefault("capability.eastmoney.list_url", "https://push2.eastmoney.com/api/qt/clist/get")
	v.SetDefault("capability.eastmoney.flow_url", "https://push2his.eastmoney.com/api/qt/stock/fflow/daykline/get")
	v.SetDefault("capability.eastmoney.pool_url", "https://push2ex.eastmoney.com/getTopicZTPool")
	v.SetDefault("capability.eastmoney.datacenter_url", "https://datacenter.eastmoney.com/securities/api/data/v1/get")
	v.SetDefault("capability.eastmoney.news_url", "https://np-listapi.eastmoney.com/comm/web/getNewsByColumns")
	v.SetDefault("capability.eastmoney.report_url", "https://data.eastmoney.com/report/stock.jshtml")
	v.SetDefault("scripts.analyze.command", []string{"python3", "scripts/analyze.py"})
	v.SetDefault("scripts.analyze.timeout", 30*time.Second)
	v.SetDefault("scripts.portfolio.command", []string{"python3", "scripts/portfolio.py"})
	v.SetDefault("scripts.portfolio.timeout", 60*time.Second)
	v.SetDefault("render.platform", "qq")
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Capability.Provider != "eastmoney" {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown capability provider: %s", c.Capability.Provider))
	}
	if c.Capability.Timeout <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("capability timeout must be positive, got %s", c.Capability.Timeout))
	}
	switch c.Render.Platform {
	case "qq", "telegram":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown render platform: %s", c.Render.Platform))
	}
	return nil
}
