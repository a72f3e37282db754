package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	shoptaboard "github.com/Gra1gkolodziejczyk/shop-ta-board"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the shopper session",
	Long: `Sign up, sign in and sign out of the storefront.

Examples:
  shopctl auth signup --firstname Tony --lastname Hawk --email tony@example.com --password hangten99
  shopctl auth login --email tony@example.com --password hangten99
  shopctl auth whoami
  shopctl auth logout`,
}

var authSignupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a shopper account and sign in",
	RunE:  runAuthSignup,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	RunE:  runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and discard stored tokens",
	RunE:  runAuthLogout,
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in shopper",
	RunE:  runAuthWhoami,
}

func init() {
	authSignupCmd.Flags().String("firstname", "", "first name")
	authSignupCmd.Flags().String("lastname", "", "last name")
	authSignupCmd.Flags().String("email", "", "email address")
	authSignupCmd.Flags().String("password", "", "password (8 characters minimum)")
	authSignupCmd.MarkFlagRequired("email")
	authSignupCmd.MarkFlagRequired("password")

	authLoginCmd.Flags().String("email", "", "email address")
	authLoginCmd.Flags().String("password", "", "password")
	authLoginCmd.MarkFlagRequired("email")
	authLoginCmd.MarkFlagRequired("password")

	authCmd.AddCommand(authSignupCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authWhoamiCmd)

	rootCmd.AddCommand(authCmd)
}

func runAuthSignup(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	firstname, _ := cmd.Flags().GetString("firstname")
	lastname, _ := cmd.Flags().GetString("lastname")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	ctx := context.Background()

	user, err := client.Session.SignUp(ctx, shoptaboard.SignUpRequest{
		Firstname: firstname,
		Lastname:  lastname,
		Email:     email,
		Password:  password,
	})
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(user)
	}

	fmt.Printf("%s Welcome, %s %s! You are signed in.\n", colorGreen("✓"), user.Firstname, user.Lastname)
	return nil
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	ctx := context.Background()

	user, err := client.Session.SignIn(ctx, shoptaboard.SignInRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(user)
	}

	fmt.Printf("%s Signed in as %s %s <%s>\n", colorGreen("✓"), user.Firstname, user.Lastname, user.Email)
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	client.Session.SignOut(context.Background())

	if jsonOut {
		return printJSON(map[string]string{"status": "signed out"})
	}

	fmt.Printf("%s Signed out\n", colorGreen("✓"))
	return nil
}

func runAuthWhoami(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := getSession(ctx)
	if err != nil {
		printError(err)
		return err
	}

	user := client.Session.CurrentUser()

	if jsonOut {
		return printJSON(user)
	}

	fmt.Printf("ID:        %s\n", user.ID)
	fmt.Printf("Name:      %s %s\n", user.Firstname, user.Lastname)
	fmt.Printf("Email:     %s\n", user.Email)
	return nil
}
