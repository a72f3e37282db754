package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	shoptaboard "github.com/Gra1gkolodziejczyk/shop-ta-board"
)

// fileConfig is the on-disk shape of ~/.shoptaboard/config.yaml.
type fileConfig struct {
	APIURL  string `yaml:"api_url"`
	Timeout string `yaml:"timeout"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage shopctl configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a starter config file to ~/.shoptaboard/config.yaml.

Existing files are left untouched unless --force is passed.`,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolP("force", "f", false, "overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	dir, err := configDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	data, err := yaml.Marshal(fileConfig{
		APIURL:  shoptaboard.DefaultBaseURL,
		Timeout: shoptaboard.DefaultTimeout.String(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]string{"path": path})
	}

	fmt.Printf("%s Config written to %s\n", colorGreen("✓"), path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	effective := fileConfig{
		APIURL:  viper.GetString("api_url"),
		Timeout: viper.GetDuration("timeout").String(),
	}

	if jsonOut {
		return printJSON(effective)
	}

	fmt.Printf("API URL: %s\n", effective.APIURL)
	fmt.Printf("Timeout: %s\n", effective.Timeout)
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Printf("File:    %s\n", used)
	}
	return nil
}
