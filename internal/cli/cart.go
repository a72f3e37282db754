package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	shoptaboard "github.com/Gra1gkolodziejczyk/shop-ta-board"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the shopping cart",
	Long: `Manage the signed-in shopper's cart.

Examples:
  shopctl cart show
  shopctl cart add 01J3QZ... --quantity 2
  shopctl cart update 01J3R0... --quantity 5
  shopctl cart remove 01J3R0...
  shopctl cart clear
  shopctl cart checkout`,
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current cart",
	RunE:  runCartShow,
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartAdd,
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update <item-id>",
	Short: "Change the quantity of a cart line",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartUpdate,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <item-id>",
	Short: "Remove a line from the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE:  runCartClear,
}

var cartCheckoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order from the cart",
	RunE:  runCartCheckout,
}

func init() {
	cartAddCmd.Flags().IntP("quantity", "q", 1, "quantity to add")

	cartUpdateCmd.Flags().IntP("quantity", "q", 0, "new quantity")
	cartUpdateCmd.MarkFlagRequired("quantity")

	cartCheckoutCmd.Flags().BoolP("force", "f", false, "skip confirmation prompt")

	cartCmd.AddCommand(cartShowCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartUpdateCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartClearCmd)
	cartCmd.AddCommand(cartCheckoutCmd)

	rootCmd.AddCommand(cartCmd)
}

func printCart(cart *shoptaboard.Cart) error {
	if jsonOut {
		return printJSON(cart)
	}

	if cart == nil || len(cart.Items) == 0 {
		fmt.Println("Your cart is empty")
		return nil
	}

	w := newTable()
	printTableHeader(w, "ITEM", "PRODUCT", "BRAND", "QTY", "PRICE", "SUBTOTAL")
	for _, item := range cart.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			truncate(item.ID, 12),
			truncate(item.ProductName, 32),
			item.ProductBrand,
			item.Quantity,
			formatPrice(item.ProductPrice),
			formatPrice(item.Subtotal),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nTotal: %s (%d items)\n", formatPrice(cart.TotalAmount), cart.TotalItems)
	return nil
}

func runCartShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := getSession(ctx)
	if err != nil {
		printError(err)
		return err
	}

	cart, err := client.Cart.Fetch(ctx)
	if err != nil {
		printError(err)
		return err
	}

	return printCart(cart)
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := getSession(ctx)
	if err != nil {
		printError(err)
		return err
	}

	quantity, _ := cmd.Flags().GetInt("quantity")

	cart, err := client.Cart.Add(ctx, args[0], quantity)
	if err != nil {
		printError(err)
		return err
	}

	if !jsonOut {
		fmt.Printf("%s Added to cart\n\n", colorGreen("✓"))
	}
	return printCart(cart)
}

func runCartUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := getSession(ctx)
	if err != nil {
		printError(err)
		return err
	}

	quantity, _ := cmd.Flags().GetInt("quantity")

	cart, err := client.Cart.UpdateItem(ctx, args[0], quantity)
	if err != nil {
		printError(err)
		return err
	}

	if !jsonOut {
		fmt.Printf("%s Cart updated\n\n", colorGreen("✓"))
	}
	return printCart(cart)
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := getSession(ctx)
	if err != nil {
		printError(err)
		return err
	}

	cart, err := client.Cart.Remove(ctx, args[0])
	if err != nil {
		printError(err)
		return err
	}

	if !jsonOut {
		fmt.Printf("%s Item removed\n\n", colorGreen("✓"))
	}
	return printCart(cart)
}

func runCartClear(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := getSession(ctx)
	if err != nil {
		printError(err)
		return err
	}

	if err := client.Cart.Clear(ctx); err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(map[string]string{"status": "cleared"})
	}

	fmt.Printf("%s Cart cleared\n", colorGreen("✓"))
	return nil
}

func runCartCheckout(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := getSession(ctx)
	if err != nil {
		printError(err)
		return err
	}

	cart, err := client.Cart.Fetch(ctx)
	if err != nil {
		printError(err)
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	if !force && !jsonOut {
		if err := printCart(cart); err != nil {
			return err
		}
		fmt.Println()
		if !confirm("Place this order?") {
			fmt.Println("Aborted")
			return nil
		}
	}

	result, err := client.Cart.Checkout(ctx)
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(result)
	}

	fmt.Printf("%s Order placed: %s\n", colorGreen("✓"), result.OrderID)
	return nil
}
