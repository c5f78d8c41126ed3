package configuration

import (
	"dir-compare/internal/source"
	"dir-compare/internal/util"
	"fmt"
	"github.com/gobwas/glob"
)

// Validate checks CurrentConfig. configPath is only used to make error messages
// point to the offending file.
func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(c *Configuration, configPath string) error {
	if configPath == "" {
		configPath = "defaults"
	}

	if _, err := source.ParseCriterion(c.Compare.Criterion, c.Compare.Precision); err != nil {
		return fmt.Errorf("%s: %w", configPath, err)
	}
	if c.Compare.Precision < 0 {
		return fmt.Errorf("%s: compare precision must not be negative: %s", configPath, c.Compare.Precision)
	}
	for _, pattern := range c.Compare.Ignore {
		if util.IsBlank(pattern) {
			return fmt.Errorf("%s: ignore patterns must not be blank", configPath)
		}
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("%s: invalid ignore pattern %q: %w", configPath, pattern, err)
		}
	}

	if c.Runner.Workers < 1 {
		return fmt.Errorf("%s: runner workers must be at least 1, got %d", configPath, c.Runner.Workers)
	}
	if c.Runner.QueueSize < 1 {
		return fmt.Errorf("%s: runner queue size must be at least 1, got %d", configPath, c.Runner.QueueSize)
	}
	if c.Runner.ShutdownTimeout <= 0 {
		return fmt.Errorf("%s: runner shutdown timeout must be positive", configPath)
	}

	if c.Watch.Debounce <= 0 {
		return fmt.Errorf("%s: watch debounce must be positive", configPath)
	}

	if c.Statistics.Enabled && !isValidPort(c.Statistics.Port) {
		return fmt.Errorf("%s: invalid statistics port %d", configPath, c.Statistics.Port)
	}
	if c.Profiling.Enabled {
		if !isValidPort(c.Profiling.Port) {
			return fmt.Errorf("%s: invalid profiling port %d", configPath, c.Profiling.Port)
		}
		if util.IsBlank(c.Profiling.Host) {
			return fmt.Errorf("%s: profiling host must not be blank", configPath)
		}
	}

	return nil
}

func isValidPort(port int) bool {
	return port > 0 && port <= 65535
}
