package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Browse order history",
	Long: `Browse the signed-in shopper's orders, most recent first.

Examples:
  shopctl orders list
  shopctl orders get 01J3R1...`,
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List placed orders",
	RunE:  runOrdersList,
}

var ordersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show order details",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrdersGet,
}

func init() {
	ordersCmd.AddCommand(ordersListCmd)
	ordersCmd.AddCommand(ordersGetCmd)

	rootCmd.AddCommand(ordersCmd)
}

func runOrdersList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := getSession(ctx)
	if err != nil {
		printError(err)
		return err
	}

	orders, err := client.Orders.List(ctx)
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"orders": orders,
			"count":  len(orders),
		})
	}

	if len(orders) == 0 {
		fmt.Println("No orders yet")
		return nil
	}

	w := newTable()
	printTableHeader(w, "ID", "PLACED", "ITEMS", "TOTAL", "STATUS")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			truncate(o.ID, 12),
			o.CreatedAt.Format("Jan 2, 2006 15:04"),
			o.TotalItems,
			formatPrice(o.TotalAmount),
			formatOrderStatus(o.Status),
		)
	}
	return w.Flush()
}

func runOrdersGet(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := getSession(ctx)
	if err != nil {
		printError(err)
		return err
	}

	order, err := client.Orders.Get(ctx, args[0])
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(order)
	}

	fmt.Printf("ID:      %s\n", order.ID)
	fmt.Printf("Placed:  %s\n", order.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Status:  %s\n", formatOrderStatus(order.Status))
	fmt.Printf("Total:   %s (%d items)\n\n", formatPrice(order.TotalAmount), order.TotalItems)

	w := newTable()
	printTableHeader(w, "PRODUCT", "BRAND", "QTY", "UNIT", "SUBTOTAL")
	for _, item := range order.Items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			truncate(item.ProductName, 32),
			item.ProductBrand,
			item.Quantity,
			formatPrice(item.UnitPrice),
			formatPrice(item.Subtotal),
		)
	}
	return w.Flush()
}
