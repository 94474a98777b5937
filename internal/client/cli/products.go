package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/affiliate/internal/client/models"
	"github.com/dmitrijs2005/affiliate/internal/client/nav"
	"github.com/dmitrijs2005/affiliate/internal/client/services"
	"github.com/dmitrijs2005/affiliate/internal/common"
)

func productPath(id int64) string {
	return "/shop/products/" + strconv.FormatInt(id, 10)
}

// Products lists the shop's products on the dashboard.
func (a *App) Products(ctx context.Context, _ []string) error {
	if _, ok := a.enter(common.ViewDashboard); !ok {
		return nil
	}
	return a.submit(func() error {
		products, err := a.shops.Dashboard(ctx)
		if err != nil {
			return a.fail(ctx, msgLoadProducts, err)
		}
		if len(products) == 0 {
			printlnFn("No products yet. Add one with: addproduct")
			return nil
		}
		for _, p := range products {
			printlnFn(p.String())
		}
		return nil
	})
}

// AddProduct prompts for a product and adds it to the shop.
func (a *App) AddProduct(ctx context.Context, _ []string) error {
	if _, ok := a.enter(common.ViewDashboard); !ok {
		return nil
	}

	name, err := getSimpleText(a.reader, "Enter product name", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Enter description (optional)", a.out)
	if err != nil {
		return err
	}
	price, err := getFloat(a.reader, "Enter price", a.out)
	if err != nil {
		return err
	}

	return a.submit(func() error {
		p, err := a.shops.CreateProduct(ctx, name, description, price)
		if err != nil {
			return a.fail(ctx, msgCreateProduct, err)
		}
		printlnFn("Created:", p.String())
		return nil
	})
}

// Product opens the details page: the product, its orders and the
// per-blogger analytics.
func (a *App) Product(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: product <id>")
		return nil
	}
	id, err := parseID(args[0])
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if _, ok := a.enter(productPath(id)); !ok {
		return nil
	}

	return a.submit(func() error {
		d, err := a.shops.ProductDetails(ctx, id)
		if err != nil {
			return a.fail(ctx, msgLoadDetails, err)
		}
		printDetails(d)
		return nil
	})
}

// Status changes the status of an order of the product being viewed.
func (a *App) Status(ctx context.Context, args []string) error {
	if len(args) != 2 {
		printlnFn("Usage: status <orderId> <waiting_to_process|processed|cancelled>")
		return nil
	}
	m := a.router.Resolve()
	if m.Page != nav.PageProductDetails {
		printlnFn(msgNoProductShown)
		return nil
	}
	productID, err := parseID(m.Params["id"])
	if err != nil {
		return err
	}
	orderID, err := parseID(args[0])
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	status, err := models.ParseOrderStatus(args[1])
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	return a.submit(func() error {
		d, err := a.shops.UpdateOrderStatus(ctx, productID, orderID, status)
		if err != nil {
			return a.fail(ctx, msgUpdateStatus, err)
		}
		printDetails(d)
		return nil
	})
}

func printDetails(d *services.ProductDetails) {
	printlnFn(d.Product.String())

	printlnFn(fmt.Sprintf("Orders (%d):", len(d.Orders)))
	for _, o := range d.Orders {
		printlnFn("  " + o.String())
	}

	printlnFn(fmt.Sprintf("Analytics (%d):", len(d.Analytics)))
	for _, an := range d.Analytics {
		printlnFn("  " + an.String())
	}
}
