package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/affiliate/internal/client/authz"
	"github.com/dmitrijs2005/affiliate/internal/client/models"
	"github.com/dmitrijs2005/affiliate/internal/common"
)

// Register prompts for the new shop's details and creates it. On success
// the login view is opened.
func (a *App) Register(ctx context.Context, _ []string) error {
	if _, ok := a.enter(common.ViewRegister); !ok {
		return nil
	}

	name, err := getSimpleText(a.reader, "Enter shop name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Enter description (optional)", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.submit(func() error {
		shop, err := a.shops.Register(ctx, models.ShopCreate{
			Name:        name,
			Email:       email,
			Password:    string(password),
			Description: description,
		})
		if err != nil {
			return a.fail(ctx, msgRegister, err)
		}
		printlnFn(fmt.Sprintf("Shop %q registered, you can log in now.", shop.Name))
		a.show(a.router.Resolve())
		return nil
	})
}

// Login prompts for credentials and starts a session. The login view is
// replaced by the dashboard, so back never returns to it.
func (a *App) Login(ctx context.Context, _ []string) error {
	if _, ok := a.enter(common.ViewLogin); !ok {
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.submit(func() error {
		if err := a.session.Login(ctx, email, string(password)); err != nil {
			return a.fail(ctx, msgLogin, err)
		}
		printlnFn(fmt.Sprintf("Logged in as %s", a.session.Shop().Name))
		a.show(a.router.Resolve())
		return nil
	})
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	a.session.Logout(ctx)
	a.landing = landing{}
	printlnFn("Logged out")
	a.show(a.router.Resolve())
	return nil
}

// WhoAmI prints the current shop and what the stored credential claims
// about itself.
func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	shop := a.session.Shop()
	if shop == nil {
		printlnFn("Not logged in")
		return nil
	}
	printlnFn(fmt.Sprintf("Shop #%d %s <%s>", shop.ID, shop.Name, shop.Email))

	token, err := a.tokens.AccessToken(ctx)
	if err != nil || token == "" {
		printlnFn(msgNoToken)
		return err
	}
	claims, err := authz.DescribeToken(token)
	if err != nil {
		printlnFn("Access token is opaque")
		return nil
	}
	if claims.Subject != "" {
		printlnFn("Token subject:", claims.Subject)
	}
	if !claims.ExpiresAt.IsZero() {
		printlnFn("Token expires:", claims.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}
