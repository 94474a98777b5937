package cli

import (
	"context"
	"fmt"
	"strconv"
)

// Resolve opens the landing page an affiliate link code points to.
func (a *App) Resolve(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: resolve <code>")
		return nil
	}
	code := args[0]

	return a.submit(func() error {
		l, err := a.shops.ResolveAffiliateLink(ctx, code)
		if err != nil {
			return a.fail(ctx, msgResolveLink, err)
		}
		bloggerID := l.BloggerID
		return a.openLanding(ctx, "/products/"+code, l.ProductID, &bloggerID)
	})
}

// Visit opens the public landing page of a product, optionally on behalf
// of a blogger.
func (a *App) Visit(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		printlnFn("Usage: visit <productId> [bloggerId]")
		return nil
	}
	productID, err := parseID(args[0])
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	var bloggerID *int64
	if len(args) == 2 {
		b, err := parseID(args[1])
		if err != nil {
			printlnFn(err.Error())
			return err
		}
		bloggerID = &b
	}

	return a.submit(func() error {
		return a.openLanding(ctx, "/products/"+strconv.FormatInt(productID, 10), productID, bloggerID)
	})
}

func (a *App) openLanding(ctx context.Context, path string, productID int64, bloggerID *int64) error {
	if _, ok := a.enter(path); !ok {
		return nil
	}
	p, err := a.shops.Landing(ctx, productID, bloggerID)
	if err != nil {
		a.landing = landing{}
		return a.fail(ctx, msgLoadLanding, err)
	}
	a.landing = landing{product: p, bloggerID: bloggerID}
	printlnFn(p.String())
	printlnFn("Place an order with: order")
	return nil
}

// Order places an order for the product on the landing page.
func (a *App) Order(ctx context.Context, _ []string) error {
	if a.landing.product == nil {
		printlnFn(msgNoLanding)
		return nil
	}
	if a.landing.bloggerID == nil {
		printlnFn(msgOrderFields)
		return nil
	}

	phone, err := getSimpleText(a.reader, "Enter phone number", a.out)
	if err != nil {
		return err
	}
	quantity, err := getInt(a.reader, "Enter quantity [1]", a.out, 1)
	if err != nil {
		return err
	}
	if phone == "" || quantity < 1 {
		printlnFn(msgOrderFields)
		return nil
	}

	return a.submit(func() error {
		o, err := a.shops.PlaceOrder(ctx, a.landing.product, a.landing.bloggerID, phone, quantity)
		if err != nil {
			return a.fail(ctx, msgPlaceOrder, err)
		}
		printlnFn(fmt.Sprintf("Order #%d placed! Thank you, it will be processed shortly.", o.ID))
		return nil
	})
}
