package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/affiliate/internal/client/models"
	"github.com/dmitrijs2005/affiliate/internal/common"
)

// Bloggers lists bloggers and the products links can be issued for.
func (a *App) Bloggers(ctx context.Context, _ []string) error {
	if _, ok := a.enter(common.ViewBloggers); !ok {
		return nil
	}
	return a.submit(func() error {
		page, err := a.shops.Bloggers(ctx)
		if err != nil {
			return a.fail(ctx, msgLoadBloggers, err)
		}
		printlnFn(fmt.Sprintf("Bloggers (%d):", len(page.Bloggers)))
		for _, b := range page.Bloggers {
			printlnFn("  " + b.String())
		}
		printlnFn(fmt.Sprintf("Products (%d):", len(page.Products)))
		for _, p := range page.Products {
			printlnFn("  " + p.String())
		}
		return nil
	})
}

func (a *App) AddBlogger(ctx context.Context, _ []string) error {
	if _, ok := a.enter(common.ViewBloggers); !ok {
		return nil
	}

	name, err := getSimpleText(a.reader, "Enter blogger name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter blogger email", a.out)
	if err != nil {
		return err
	}
	bio, err := getSimpleText(a.reader, "Enter bio (optional)", a.out)
	if err != nil {
		return err
	}

	return a.submit(func() error {
		b, err := a.shops.CreateBlogger(ctx, models.BloggerCreate{Name: name, Email: email, Bio: bio})
		if err != nil {
			return a.fail(ctx, msgCreateBlogger, err)
		}
		printlnFn("Created:", b.String())
		return nil
	})
}

// Link issues an affiliate link and prints its shareable URL.
func (a *App) Link(ctx context.Context, args []string) error {
	if len(args) != 2 {
		printlnFn("Usage: link <productId> <bloggerId>")
		return nil
	}
	productID, err := parseID(args[0])
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	bloggerID, err := parseID(args[1])
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if _, ok := a.enter(common.ViewBloggers); !ok {
		return nil
	}

	return a.submit(func() error {
		l, url, err := a.shops.CreateAffiliateLink(ctx, productID, bloggerID)
		if err != nil {
			return a.fail(ctx, msgCreateLink, err)
		}
		printlnFn(fmt.Sprintf("Affiliate link %s created:", l.Code))
		printlnFn(url)
		return nil
	})
}
