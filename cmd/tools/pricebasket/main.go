// Command pricebasket prices a list of product codes against the configured
// catalog, offer and delivery schedule, and prints the breakdown.
//
//	pricebasket B01 G01
//	pricebasket R01 R01
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/architechlabs/basket-api/internal/app"
	"github.com/architechlabs/basket-api/internal/config"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "pricebasket:", err)
		os.Exit(1)
	}
}

func run(codes []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	deps, err := app.BuildPricing(cfg)
	if err != nil {
		return err
	}

	b, err := deps.NewBasket()
	if err != nil {
		return err
	}
	for _, code := range codes {
		if err := b.Add(code); err != nil {
			return err
		}
	}

	totals, err := b.Totals()
	if err != nil {
		return err
	}

	items := "[empty]"
	if len(codes) > 0 {
		items = strings.Join(codes, ", ")
	}
	fmt.Println("Basket items:", items)
	fmt.Println("Subtotal:", totals.Subtotal.Format())
	fmt.Println("Discount:", totals.Discount.Format())
	fmt.Println("Delivery:", totals.Delivery.Format())
	fmt.Println("Total:   ", totals.Total.Format())
	return nil
}
