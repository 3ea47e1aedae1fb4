package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"

	"zocial/models"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the shop catalog",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()
		defer func() { _ = store.Close() }()

		products, err := newClient(store).Products(cmd.Context())
		if err != nil {
			log.Fatalf("fetching products: %v", err)
		}
		for _, p := range products {
			fmt.Printf("%s\t%s\t%.2f\n", p.ID, p.Name, p.Price)
		}
	},
}

var productsAddCmd = &cobra.Command{
	Use:   "add <name> <price>",
	Short: "Add a product to the catalog",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()
		defer func() { _ = store.Close() }()

		price, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			log.Fatalf("invalid price %q", args[1])
		}
		created, err := newClient(store).CreateProduct(cmd.Context(), models.Product{
			Name:  args[0],
			Price: price,
		})
		if err != nil {
			log.Fatalf("creating product: %v", err)
		}
		fmt.Printf("Added %s (%s)\n", created.Name, created.ID)
	},
}

var productsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a product from the catalog",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()
		defer func() { _ = store.Close() }()

		if err := newClient(store).DeleteProduct(cmd.Context(), args[0]); err != nil {
			log.Fatalf("deleting product: %v", err)
		}
		fmt.Println("Removed")
	},
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List placed orders",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()
		defer func() { _ = store.Close() }()

		orders, err := newClient(store).Orders(cmd.Context())
		if err != nil {
			log.Fatalf("fetching orders: %v", err)
		}
		for _, o := range orders {
			fmt.Printf("%s\t%s\t%s\n", o.ID, o.ProductID, o.Buyer)
		}
	},
}

var ordersPlaceCmd = &cobra.Command{
	Use:   "place <product-id> <buyer>",
	Short: "Place an order",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()
		defer func() { _ = store.Close() }()

		placed, err := newClient(store).CreateOrder(cmd.Context(), models.Order{
			ProductID: args[0],
			Buyer:     args[1],
		})
		if err != nil {
			log.Fatalf("placing order: %v", err)
		}
		fmt.Printf("Order %s placed\n", placed.ID)
	},
}

func init() {
	productsCmd.AddCommand(productsAddCmd)
	productsCmd.AddCommand(productsRmCmd)
	ordersCmd.AddCommand(ordersPlaceCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(ordersCmd)
}
