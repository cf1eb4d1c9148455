package config

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to tropedeck! Let's point it at your trope database.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. API server URL.
	urlPrompt := promptui.Prompt{
		Label:   "API server URL",
		Default: cfg.APIURL,
		Validate: func(s string) error {
			u, err := url.Parse(s)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("must be an absolute URL")
			}
			return nil
		},
	}
	apiURL, err := urlPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("api url prompt: %w", err)
	}
	cfg.APIURL = apiURL

	// 2. Request timeout.
	timeoutPrompt := promptui.Prompt{
		Label:   "Request timeout (seconds)",
		Default: strconv.Itoa(cfg.RequestTimeoutSeconds),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return fmt.Errorf("must be a positive integer")
			}
			return nil
		},
	}
	timeoutStr, err := timeoutPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("timeout prompt: %w", err)
	}
	cfg.RequestTimeoutSeconds, _ = strconv.Atoi(timeoutStr)

	// 3. Health poll cadence.
	pollPrompt := promptui.Select{
		Label: "Background health poll",
		Items: []string{"every 15s", "every 30s", "every 60s", "disabled"},
	}
	pollIdx, _, err := pollPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("poll prompt: %w", err)
	}
	cfg.PollIntervalSeconds = []int{15, 30, 60, 0}[pollIdx]

	// 4. Export directory.
	exportPrompt := promptui.Prompt{
		Label:   "CSV export directory",
		Default: cfg.ExportDir,
	}
	exportDir, err := exportPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("export dir prompt: %w", err)
	}
	cfg.ExportDir = exportDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
