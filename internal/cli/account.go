package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	shoptaboard "github.com/Gra1gkolodziejczyk/shop-ta-board"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the shopper profile",
	Long: `Update or delete the signed-in shopper's account.

Examples:
  shopctl account update --firstname Anthony
  shopctl account delete`,
}

var accountUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	RunE:  runAccountUpdate,
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the account",
	Long: `Permanently delete the shopper account.

The cart and order history tied to the account are removed as well.
This action cannot be undone.`,
	RunE: runAccountDelete,
}

func init() {
	accountUpdateCmd.Flags().String("firstname", "", "new first name")
	accountUpdateCmd.Flags().String("lastname", "", "new last name")
	accountUpdateCmd.Flags().String("email", "", "new email address")

	accountDeleteCmd.Flags().BoolP("force", "f", false, "skip confirmation prompt")

	accountCmd.AddCommand(accountUpdateCmd)
	accountCmd.AddCommand(accountDeleteCmd)

	rootCmd.AddCommand(accountCmd)
}

func runAccountUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := getSession(ctx)
	if err != nil {
		printError(err)
		return err
	}

	current := client.Session.CurrentUser()

	req := shoptaboard.UpdateProfileRequest{
		Firstname: current.Firstname,
		Lastname:  current.Lastname,
		Email:     current.Email,
	}
	if cmd.Flags().Changed("firstname") {
		req.Firstname, _ = cmd.Flags().GetString("firstname")
	}
	if cmd.Flags().Changed("lastname") {
		req.Lastname, _ = cmd.Flags().GetString("lastname")
	}
	if cmd.Flags().Changed("email") {
		req.Email, _ = cmd.Flags().GetString("email")
	}

	user, err := client.Users.UpdateProfile(ctx, req)
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(user)
	}

	fmt.Printf("%s Profile updated: %s %s <%s>\n", colorGreen("✓"), user.Firstname, user.Lastname, user.Email)
	return nil
}

func runAccountDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := getSession(ctx)
	if err != nil {
		printError(err)
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	if !force {
		user := client.Session.CurrentUser()
		fmt.Printf("%s This permanently deletes the account %s and its order history.\n", colorYellow("⚠"), user.Email)
		if !confirm("Delete account?") {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := client.Users.DeleteAccount(ctx); err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(map[string]string{"status": "deleted"})
	}

	fmt.Printf("%s Account deleted\n", colorGreen("✓"))
	return nil
}
