package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	shoptaboard "github.com/Gra1gkolodziejczyk/shop-ta-board"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the catalogue",
	Long: `Browse the storefront catalogue. Requires a signed-in session.

Examples:
  shopctl products list
  shopctl products list --category decks
  shopctl products get 01J3QZ...`,
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	RunE:  runProductsList,
}

var productsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show product details",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsGet,
}

func init() {
	productsListCmd.Flags().String("category", "", "filter by category (decks, trucks, wheels, bearings, apparel, shoes, accessories)")

	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsGetCmd)

	rootCmd.AddCommand(productsCmd)
}

func runProductsList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := getSession(ctx)
	if err != nil {
		printError(err)
		return err
	}

	category, _ := cmd.Flags().GetString("category")

	products, err := client.Products.List(ctx, shoptaboard.Category(category))
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"products": products,
			"count":    len(products),
		})
	}

	if len(products) == 0 {
		fmt.Println("No products found")
		return nil
	}

	w := newTable()
	printTableHeader(w, "ID", "NAME", "BRAND", "CATEGORY", "PRICE", "STOCK")
	for i := range products {
		p := &products[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			truncate(p.ID, 12),
			truncate(p.Name, 32),
			p.Brand,
			p.Category,
			formatPrice(p.Price),
			formatStock(p),
		)
	}
	return w.Flush()
}

func runProductsGet(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := getSession(ctx)
	if err != nil {
		printError(err)
		return err
	}

	product, err := client.Products.Get(ctx, args[0])
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(product)
	}

	fmt.Printf("ID:          %s\n", product.ID)
	fmt.Printf("Name:        %s\n", product.Name)
	fmt.Printf("Brand:       %s\n", product.Brand)
	fmt.Printf("Category:    %s\n", product.Category)
	fmt.Printf("Price:       %s\n", formatPrice(product.Price))
	fmt.Printf("Stock:       %s\n", formatStock(product))
	if product.ImageURL != "" {
		fmt.Printf("Image:       %s\n", product.ImageURL)
	}
	fmt.Printf("Description: %s\n", product.Description)
	return nil
}
