// kiosk is a terminal storefront client: browse the catalog, build a local
// cart, and check out either over the WhatsApp deep link or by leaving a
// callback number.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/store/api"
	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/store/cart"
	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/store/checkout"
)

func main() {
	_ = godotenv.Load()

	server := flag.String("server", envOr("KIOSK_SERVER", "http://localhost:8080"), "backend base URL")
	cartPath := flag.String("cart", defaultCartPath(), "cart snapshot file")
	mobile := flag.String("mobile", "", "10-digit callback number for checkout (omit for WhatsApp)")
	userAgent := flag.String("user-agent", "kiosk-terminal", "client signature used for order source")
	flag.Parse()

	client := api.New(*server)
	crt := cart.Open(*cartPath)
	ctx := context.Background()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "products":
		err = listProducts(ctx, client, args[1:])
	case "categories":
		err = listCategories(ctx, client)
	case "add":
		err = addToCart(ctx, client, crt, args[1:])
	case "remove":
		err = removeFromCart(crt, args[1:])
	case "qty":
		err = setQuantity(crt, args[1:])
	case "show":
		showCart(crt)
	case "clear":
		err = crt.Clear()
	case "checkout":
		err = runCheckout(ctx, client, crt, *userAgent, *mobile)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: kiosk [flags] <command>

commands:
  products [search]   list catalog products
  categories          list categories
  add <id> [qty]      add a product to the cart
  remove <id>         remove a product from the cart
  qty <id> <n>        set a line's quantity (0 removes it)
  show                print the cart
  clear               empty the cart
  checkout            submit the order`)
}

func listProducts(ctx context.Context, client *api.Client, args []string) error {
	search := ""
	if len(args) > 0 {
		search = args[0]
	}
	products, err := client.GetProducts(ctx, search, 0)
	if err != nil {
		return err
	}
	for _, p := range products {
		price := fmt.Sprintf("₹%.2f", p.StandardPrice)
		if p.OfferPrice != nil && *p.OfferPrice < p.StandardPrice {
			price = fmt.Sprintf("₹%.2f (was ₹%.2f)", *p.OfferPrice, p.StandardPrice)
		}
		fmt.Printf("%4d  %-30s %-15s %s\n", p.ID, p.Name, p.Category.Name, price)
	}
	return nil
}

func listCategories(ctx context.Context, client *api.Client) error {
	categories, err := client.GetCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Printf("%4d  %s\n", c.ID, c.Name)
	}
	return nil
}

func addToCart(ctx context.Context, client *api.Client, crt *cart.Store, args []string) error {
	if len(args) < 1 {
		return errors.New("add: product id required")
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return errors.New("add: invalid product id")
	}
	quantity := 1
	if len(args) > 1 {
		if quantity, err = strconv.Atoi(args[1]); err != nil {
			return errors.New("add: invalid quantity")
		}
	}

	products, err := client.GetProducts(ctx, "", 0)
	if err != nil {
		return err
	}
	for _, p := range products {
		if p.ID == uint(id) {
			if err := crt.Add(p, quantity); err != nil {
				return err
			}
			fmt.Printf("Added %s x%d (cart: %d items, ₹%.2f)\n", p.Name, quantity, crt.Count(), crt.Total())
			return nil
		}
	}
	return fmt.Errorf("product %d not found", id)
}

func removeFromCart(crt *cart.Store, args []string) error {
	if len(args) < 1 {
		return errors.New("remove: product id required")
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return errors.New("remove: invalid product id")
	}
	return crt.Remove(uint(id))
}

func setQuantity(crt *cart.Store, args []string) error {
	if len(args) < 2 {
		return errors.New("qty: product id and quantity required")
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return errors.New("qty: invalid product id")
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.New("qty: invalid quantity")
	}
	return crt.SetQuantity(uint(id), quantity)
}

func showCart(crt *cart.Store) {
	items := crt.Items()
	if len(items) == 0 {
		fmt.Println("Your cart is empty")
		return
	}
	for _, item := range items {
		fmt.Printf("%4d  %-30s x%-3d ₹%.2f\n", item.ID, item.Name, item.Quantity, item.Subtotal())
	}
	fmt.Printf("\n%d items, total ₹%.2f\n", crt.Count(), crt.Total())
}

func runCheckout(ctx context.Context, client *api.Client, crt *cart.Store, userAgent, mobile string) error {
	submitter := checkout.NewSubmitter(client, crt, userAgent)
	result, err := submitter.Submit(ctx, mobile)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			return errors.New("your cart is empty")
		case errors.Is(err, checkout.ErrInvalidMobile):
			return errors.New("please enter a valid 10-digit mobile number")
		case errors.Is(err, checkout.ErrChannelUnavailable):
			return errors.New("unable to process order, please try again later")
		default:
			return fmt.Errorf("failed to save order, please try again: %w", err)
		}
	}

	fmt.Printf("Your order #%s has been submitted.\n", result.OrderNumber)
	if mobile == "" {
		fmt.Println("Open WhatsApp to confirm:")
		fmt.Println(result.WhatsAppLink)
	} else {
		fmt.Println("The vendor will contact you shortly.")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultCartPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cart.json"
	}
	return filepath.Join(home, ".daddychips", "cart.json")
}
