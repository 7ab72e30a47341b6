package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to fstvl! Let's connect your content space.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Space ID.
	spacePrompt := promptui.Prompt{
		Label:    "Contentful space ID",
		Validate: notBlank("space ID"),
	}
	spaceID, err := spacePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("space id: %w", err)
	}
	cfg.SpaceID = strings.TrimSpace(spaceID)

	// 2. Delivery token.
	tokenPrompt := promptui.Prompt{
		Label:    "Content Delivery API access token",
		Mask:     '*',
		Validate: notBlank("access token"),
	}
	token, err := tokenPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("access token: %w", err)
	}
	cfg.AccessToken = strings.TrimSpace(token)

	// 3. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for rendered HTML",
		Default: cfg.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = outputDir

	// 4. Day assignment.
	dayPrompt := promptui.Select{
		Label: "How should artist days be shown?",
		Items: []string{
			"By position: first artists on day one, the rest on day two",
			"As published: use the day linked in the content space",
		},
	}
	dayIdx, _, err := dayPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("day assignment: %w", err)
	}
	cfg.DistributeDays = dayIdx == 0

	if cfg.DistributeDays {
		maxPrompt := promptui.Prompt{
			Label:    "Artists on day one",
			Default:  strconv.Itoa(cfg.MaxArtistsPerDay),
			Validate: nonNegativeInt,
		}
		maxStr, err := maxPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("artists per day: %w", err)
		}
		cfg.MaxArtistsPerDay, _ = strconv.Atoi(strings.TrimSpace(maxStr))
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func notBlank(what string) promptui.ValidateFunc {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}

func nonNegativeInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if n < 0 {
		return fmt.Errorf("must be zero or more")
	}
	return nil
}

// SplitAndTrim splits a comma-separated string and trims whitespace,
// dropping empty entries.
func SplitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
