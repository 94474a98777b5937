package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error

	Products(ctx context.Context, args []string) error
	AddProduct(ctx context.Context, args []string) error
	Product(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error

	Bloggers(ctx context.Context, args []string) error
	AddBlogger(ctx context.Context, args []string) error
	Link(ctx context.Context, args []string) error

	Resolve(ctx context.Context, args []string) error
	Visit(ctx context.Context, args []string) error
	Order(ctx context.Context, args []string) error

	Back(ctx context.Context, args []string) error
	Where(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, resolve <code>, visit <productId> [bloggerId], order, back, where, exit"
	helpLoggedIn  = "Available commands: products, addproduct, product <id>, status <orderId> <status>, " +
		"bloggers, addblogger, link <productId> <bloggerId>, resolve <code>, visit <productId> [bloggerId], order, " +
		"whoami, logout, back, where, exit"
)

// runREPL reads commands line by line and dispatches them to a until EOF
// or "exit"/"quit". Handlers report their own failures, so returned errors
// only end the current command.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("shop %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var handler func(context.Context, []string) error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue

		case "register":
			handler = a.Register
		case "login":
			handler = a.Login
		case "logout":
			handler = a.Logout
		case "whoami":
			handler = a.WhoAmI
		case "products":
			handler = a.Products
		case "addproduct":
			handler = a.AddProduct
		case "product":
			handler = a.Product
		case "status":
			handler = a.Status
		case "bloggers":
			handler = a.Bloggers
		case "addblogger":
			handler = a.AddBlogger
		case "link":
			handler = a.Link
		case "resolve":
			handler = a.Resolve
		case "visit":
			handler = a.Visit
		case "order":
			handler = a.Order
		case "back":
			handler = a.Back
		case "where":
			handler = a.Where

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
			continue
		}

		_ = handler(ctx, args)
	}
}
