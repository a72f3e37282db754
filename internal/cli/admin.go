package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	shoptaboard "github.com/Gra1gkolodziejczyk/shop-ta-board"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage the catalogue as an administrator",
	Long: `Administrator commands for catalogue management.

Admin credentials are stored separately from the shopper session, so an
admin can stay signed in to both at once.

Examples:
  shopctl admin login --email admin@example.com --password secret
  shopctl admin products list
  shopctl admin products create --name "Indy Stage 11" --description "149mm polished trucks" --category trucks --brand Independent --price 74.95 --stock 20
  shopctl admin products set-stock 01J3QZ... 35
  shopctl admin products delete 01J3QZ...`,
}

var adminLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in as an administrator",
	RunE:  runAdminLogin,
}

var adminLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored admin tokens",
	RunE:  runAdminLogout,
}

var adminProductsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage products",
}

var adminProductsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all products, including out-of-stock ones",
	RunE:  runAdminProductsList,
}

var adminProductsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	RunE:  runAdminProductsCreate,
}

var adminProductsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update product fields",
	Long: `Update a product. Only the flags you pass are changed.

Examples:
  shopctl admin products update 01J3QZ... --price 69.95
  shopctl admin products update 01J3QZ... --name "Indy Stage 11 Hollow"`,
	Args: cobra.ExactArgs(1),
	RunE: runAdminProductsUpdate,
}

var adminProductsSetStockCmd = &cobra.Command{
	Use:   "set-stock <id> <stock>",
	Short: "Set the stock level of a product",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdminProductsSetStock,
}

var adminProductsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminProductsDelete,
}

func init() {
	adminLoginCmd.Flags().String("email", "", "admin email address")
	adminLoginCmd.Flags().String("password", "", "admin password")
	adminLoginCmd.MarkFlagRequired("email")
	adminLoginCmd.MarkFlagRequired("password")

	adminProductsCreateCmd.Flags().String("name", "", "product name")
	adminProductsCreateCmd.Flags().String("description", "", "product description (10 characters minimum)")
	adminProductsCreateCmd.Flags().String("category", "", "category (decks, trucks, wheels, bearings, apparel, shoes, accessories)")
	adminProductsCreateCmd.Flags().String("brand", "", "brand name")
	adminProductsCreateCmd.Flags().Float64("price", 0, "unit price")
	adminProductsCreateCmd.Flags().String("image-url", "", "product image URL")
	adminProductsCreateCmd.Flags().Int("stock", 0, "initial stock level")
	adminProductsCreateCmd.MarkFlagRequired("name")
	adminProductsCreateCmd.MarkFlagRequired("description")
	adminProductsCreateCmd.MarkFlagRequired("price")

	adminProductsUpdateCmd.Flags().String("name", "", "new product name")
	adminProductsUpdateCmd.Flags().String("description", "", "new description")
	adminProductsUpdateCmd.Flags().String("category", "", "new category")
	adminProductsUpdateCmd.Flags().String("brand", "", "new brand")
	adminProductsUpdateCmd.Flags().Float64("price", 0, "new unit price")
	adminProductsUpdateCmd.Flags().String("image-url", "", "new image URL")
	adminProductsUpdateCmd.Flags().Int("stock", 0, "new stock level")

	adminProductsDeleteCmd.Flags().BoolP("force", "f", false, "skip confirmation prompt")

	adminProductsCmd.AddCommand(adminProductsListCmd)
	adminProductsCmd.AddCommand(adminProductsCreateCmd)
	adminProductsCmd.AddCommand(adminProductsUpdateCmd)
	adminProductsCmd.AddCommand(adminProductsSetStockCmd)
	adminProductsCmd.AddCommand(adminProductsDeleteCmd)

	adminCmd.AddCommand(adminLoginCmd)
	adminCmd.AddCommand(adminLogoutCmd)
	adminCmd.AddCommand(adminProductsCmd)

	rootCmd.AddCommand(adminCmd)
}

func runAdminLogin(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	ctx := context.Background()

	if err := client.Admin.Login(ctx, shoptaboard.AdminLoginRequest{
		Email:    email,
		Password: password,
	}); err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(map[string]string{"status": "signed in"})
	}

	fmt.Printf("%s Signed in as admin\n", colorGreen("✓"))
	return nil
}

func runAdminLogout(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	if err := client.Admin.Logout(); err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(map[string]string{"status": "signed out"})
	}

	fmt.Printf("%s Admin signed out\n", colorGreen("✓"))
	return nil
}

func runAdminProductsList(cmd *cobra.Command, args []string) error {
	client, err := getAdmin()
	if err != nil {
		printError(err)
		return err
	}

	ctx := context.Background()

	products, err := client.Admin.ListProducts(ctx)
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

func runAdminProductsCreate(cmd *cobra.Command, args []string) error {
	client, err := getAdmin()
	if err != nil {
		printError(err)
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	category, _ := cmd.Flags().GetString("category")
	brand, _ := cmd.Flags().GetString("brand")
	price, _ := cmd.Flags().GetFloat64("price")
	imageURL, _ := cmd.Flags().GetString("image-url")
	stock, _ := cmd.Flags().GetInt("stock")

	ctx := context.Background()

	product, err := client.Admin.CreateProduct(ctx, shoptaboard.CreateProductRequest{
		Name:        name,
		Description: description,
		Category:    shoptaboard.Category(category),
		Brand:       brand,
		Price:       price,
		ImageURL:    imageURL,
		Stock:       stock,
	})
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(product)
	}

	fmt.Printf("%s Product created: %s (%s)\n", colorGreen("✓"), product.Name, product.ID)
	return nil
}

func runAdminProductsUpdate(cmd *cobra.Command, args []string) error {
	client, err := getAdmin()
	if err != nil {
		printError(err)
		return err
	}

	var req shoptaboard.UpdateProductRequest
	if cmd.Flags().Changed("name") {
		v, _ := cmd.Flags().GetString("name")
		req.Name = &v
	}
	if cmd.Flags().Changed("description") {
		v, _ := cmd.Flags().GetString("description")
		req.Description = &v
	}
	if cmd.Flags().Changed("category") {
		v, _ := cmd.Flags().GetString("category")
		c := shoptaboard.Category(v)
		req.Category = &c
	}
	if cmd.Flags().Changed("brand") {
		v, _ := cmd.Flags().GetString("brand")
		req.Brand = &v
	}
	if cmd.Flags().Changed("price") {
		v, _ := cmd.Flags().GetFloat64("price")
		req.Price = &v
	}
	if cmd.Flags().Changed("image-url") {
		v, _ := cmd.Flags().GetString("image-url")
		req.ImageURL = &v
	}
	if cmd.Flags().Changed("stock") {
		v, _ := cmd.Flags().GetInt("stock")
		req.Stock = &v
	}

	ctx := context.Background()

	product, err := client.Admin.UpdateProduct(ctx, args[0], req)
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(product)
	}

	fmt.Printf("%s Product updated: %s\n", colorGreen("✓"), product.Name)
	return nil
}

func runAdminProductsSetStock(cmd *cobra.Command, args []string) error {
	client, err := getAdmin()
	if err != nil {
		printError(err)
		return err
	}

	var stock int
	if _, err := fmt.Sscanf(args[1], "%d", &stock); err != nil {
		return fmt.Errorf("invalid stock value %q", args[1])
	}

	ctx := context.Background()

	product, err := client.Admin.UpdateStock(ctx, args[0], stock)
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(product)
	}

	fmt.Printf("%s Stock for %s set to %d\n", colorGreen("✓"), product.Name, product.Stock)
	return nil
}

func runAdminProductsDelete(cmd *cobra.Command, args []string) error {
	productID := args[0]

	force, _ := cmd.Flags().GetBool("force")
	if !force {
		if !confirm(fmt.Sprintf("%s Delete product %s?", colorYellow("⚠"), productID)) {
			fmt.Println("Aborted")
			return nil
		}
	}

	client, err := getAdmin()
	if err != nil {
		printError(err)
		return err
	}

	ctx := context.Background()

	if err := client.Admin.DeleteProduct(ctx, productID); err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(map[string]string{
			"status":  "deleted",
			"message": fmt.Sprintf("Product %s deleted", productID),
		})
	}

	fmt.Printf("%s Product deleted: %s\n", colorGreen("✓"), productID)
	return nil
}
