// Package cli implements the shopctl command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	shoptaboard "github.com/Gra1gkolodziejczyk/shop-ta-board"
)

var (
	cfgFile string
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "shopctl",
	Short: "Command line client for the shop-ta-board storefront",
	Long: `shopctl talks to the shop-ta-board storefront API.

Shopper tokens are kept under ~/.shoptaboard/ so a signed-in session
survives between invocations. Admin tokens live in a separate file and
never mix with the shopper session.

Examples:
  shopctl auth signup --firstname Tony --lastname Hawk --email tony@example.com --password hangten99
  shopctl products list --category decks
  shopctl cart add 01J3QZ... --quantity 2
  shopctl cart checkout`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.shoptaboard/config.yaml)")
	rootCmd.PersistentFlags().String("api-url", "", "storefront API base URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output as JSON")

	viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		if dir, err := configDir(); err == nil {
			viper.AddConfigPath(dir)
		}
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("SHOPTABOARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("api_url", shoptaboard.DefaultBaseURL)
	viper.SetDefault("timeout", shoptaboard.DefaultTimeout.String())

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "failed to read config file: %v\n", err)
			os.Exit(1)
		}
	}
}

// configDir is where shopctl keeps its config and token files.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".shoptaboard"), nil
}

// getClient builds an API client backed by the on-disk token stores.
func getClient() (*shoptaboard.Client, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}

	tokens, err := shoptaboard.NewFileTokenStore(filepath.Join(dir, "tokens.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}
	adminTokens, err := shoptaboard.NewFileTokenStore(filepath.Join(dir, "admin_tokens.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to open admin token store: %w", err)
	}

	opts := []shoptaboard.Option{
		shoptaboard.WithBaseURL(viper.GetString("api_url")),
		shoptaboard.WithTokenStore(tokens),
		shoptaboard.WithAdminTokenStore(adminTokens),
	}
	if timeout := viper.GetDuration("timeout"); timeout > 0 {
		opts = append(opts, shoptaboard.WithTimeout(timeout))
	}

	return shoptaboard.NewClient(opts...), nil
}

// getSession returns a client with a bootstrapped, authenticated shopper
// session, refreshing stored tokens if the access token went stale.
func getSession(ctx context.Context) (*shoptaboard.Client, error) {
	client, err := getClient()
	if err != nil {
		return nil, err
	}

	if err := client.Session.Bootstrap(ctx); err != nil {
		if errors.Is(err, shoptaboard.ErrSessionExpired) {
			return nil, fmt.Errorf("session expired, run 'shopctl auth login'")
		}
		return nil, err
	}
	if !client.Session.IsAuthenticated() {
		return nil, fmt.Errorf("not signed in, run 'shopctl auth login'")
	}

	return client, nil
}

// getAdmin returns a client whose admin token store holds credentials.
func getAdmin() (*shoptaboard.Client, error) {
	client, err := getClient()
	if err != nil {
		return nil, err
	}
	if !client.Admin.IsAuthenticated() {
		return nil, fmt.Errorf("not signed in as admin, run 'shopctl admin login'")
	}
	return client, nil
}
