package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	shoptaboard "github.com/Gra1gkolodziejczyk/shop-ta-board"
)

func colorGreen(s string) string  { return "\033[32m" + s + "\033[0m" }
func colorYellow(s string) string { return "\033[33m" + s + "\033[0m" }
func colorRed(s string) string    { return "\033[31m" + s + "\033[0m" }

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func printTableHeader(w *tabwriter.Writer, cols ...string) {
	fmt.Fprintln(w, strings.Join(cols, "\t"))
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printError(err error) {
	var apiErr *shoptaboard.APIError
	switch {
	case shoptaboard.IsValidation(err):
		fmt.Fprintf(os.Stderr, "%s %v\n", colorRed("✗"), err)
	case shoptaboard.IsNetwork(err):
		fmt.Fprintf(os.Stderr, "%s cannot reach the storefront API: %v\n", colorRed("✗"), err)
	case errors.Is(err, shoptaboard.ErrEmptyCart):
		fmt.Fprintf(os.Stderr, "%s your cart is empty\n", colorRed("✗"))
	case errors.As(err, &apiErr):
		fmt.Fprintf(os.Stderr, "%s API error (%d): %s\n", colorRed("✗"), apiErr.StatusCode, apiErr.Message)
	default:
		fmt.Fprintf(os.Stderr, "%s %v\n", colorRed("✗"), err)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func formatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func formatOrderStatus(status shoptaboard.OrderStatus) string {
	label, ok := shoptaboard.OrderStatusLabels[status]
	if !ok {
		label = string(status)
	}
	switch status {
	case shoptaboard.OrderStatusDelivered, shoptaboard.OrderStatusPaid:
		return colorGreen(label)
	case shoptaboard.OrderStatusCancelled:
		return colorRed(label)
	case shoptaboard.OrderStatusPending, shoptaboard.OrderStatusProcessing:
		return colorYellow(label)
	default:
		return label
	}
}

func formatStock(p *shoptaboard.Product) string {
	switch {
	case !p.Available():
		return colorRed("out of stock")
	case p.LowStock():
		return colorYellow(fmt.Sprintf("%d (low)", p.Stock))
	default:
		return fmt.Sprintf("%d", p.Stock)
	}
}

// confirm asks the user for a y/N answer on stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	var response string
	fmt.Scanln(&response)
	return response == "y" || response == "Y"
}
