package configuration

import (
	"dir-compare/internal/logging"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"os"
	"time"
)

type Configuration struct {
	Compare    CompareConfig    `json:"compare"`
	Runner     RunnerConfig     `json:"runner"`
	Watch      WatchConfig      `json:"watch"`
	Statistics StatisticsConfig `json:"statistics"`
	Profiling  ProfilingConfig  `json:"profiling"`
}

type CompareConfig struct {
	// Criterion used to order the two sides of a leaf, "modtime" or "size"
	Criterion string `json:"criterion"`
	// Precision modification times are truncated to before comparing them
	Precision time.Duration `json:"precision"`
	// Ignore contains glob patterns of entry names to skip
	Ignore          []string `json:"ignore"`
	OnlyDifferences bool     `json:"onlyDifferences"`
	ShowDetails     bool     `json:"showDetails"`
}

type RunnerConfig struct {
	Workers         int           `json:"workers"`
	QueueSize       int           `json:"queueSize"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout"`
}

type WatchConfig struct {
	Debounce time.Duration `json:"debounce"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

type ProfilingConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("dir-compare")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			logging.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/dir-compare/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("Compare.Criterion", "modtime")
	viper.SetDefault("Compare.Precision", time.Duration(0))
	viper.SetDefault("Compare.Ignore", []string{})
	viper.SetDefault("Compare.OnlyDifferences", false)
	viper.SetDefault("Compare.ShowDetails", false)

	viper.SetDefault("Runner.Workers", 1)
	viper.SetDefault("Runner.QueueSize", 4)
	viper.SetDefault("Runner.ShutdownTimeout", 2*time.Minute)

	viper.SetDefault("Watch.Debounce", time.Second)

	viper.SetDefault("Statistics.Enabled", false)
	viper.SetDefault("Statistics.Port", 9000)

	viper.SetDefault("Profiling.Enabled", false)
	viper.SetDefault("Profiling.Host", "localhost")
	viper.SetDefault("Profiling.Port", 6060)
}

// DetectAndReadConfigFile detects the path of the first existing config file
func DetectAndReadConfigFile() string {
	err := readInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logging.Warning("Error reading config file: %v", err)
		}
	}
	return GetFilePath()
}

// readInConfig reads and parses the config file
func readInConfig() error {
	return viper.ReadInConfig()
}

// GetFilePath this is only populated _after_ readInConfig()
func GetFilePath() string {
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	// load default configuration values
	err := viper.Unmarshal(&CurrentConfig)
	if err != nil {
		logging.Fatal("unable to decode into struct, %v", err)
	}
}
