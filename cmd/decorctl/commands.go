package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pquerna/otp/totp"

	"github.com/Shunadesu/simple-decor-sub001/internal/admin/app"
	"github.com/Shunadesu/simple-decor-sub001/pkg/decorapi"
	"github.com/Shunadesu/simple-decor-sub001/pkg/slogx"
)

const usage = `usage: decorctl <command> [flags]

commands:
  login     authenticate against the backend and persist the session
  logout    clear the persisted session
  whoami    show the current session
  refresh   exchange the current token for a fresh one
  users     list storefront accounts
  blog      list blog posts
  cart      show a customer's cart

Configuration is read from the environment (and .env); see DECOR_* variables.
`

func run(application *app.Application, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("no command given")
	}

	ctx := slogx.WithContext(context.Background(), application.Logger())

	application.Session.OnUnauthorized = func() {
		fmt.Fprintln(os.Stderr, "session rejected by the backend, run `decorctl login`")
	}

	if err := application.Start(ctx); err != nil {
		return err
	}

	// Every dispatched command counts as user activity, the same way any
	// interaction with the dashboard did.
	application.Tracker.Touch()

	switch cmd, rest := args[0], args[1:]; cmd {
	case "login":
		return cmdLogin(ctx, application, rest)
	case "logout":
		application.Session.Logout()
		fmt.Println("logged out")
		return nil
	case "whoami":
		return cmdWhoami(application)
	case "refresh":
		return cmdRefresh(ctx, application)
	case "users":
		return cmdUsers(ctx, application, rest)
	case "blog":
		return cmdBlog(ctx, application, rest)
	case "cart":
		return cmdCart(ctx, application, rest)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdLogin(ctx context.Context, application *app.Application, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "admin account email")
	password := fs.String("password", "", "admin account password")
	totpSecret := fs.String("totp-secret", "", "TOTP secret for accounts with MFA enabled")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("login requires -email and -password")
	}

	var otpCode string
	if *totpSecret != "" {
		code, err := totp.GenerateCode(*totpSecret, time.Now())
		if err != nil {
			return fmt.Errorf("failed to compute TOTP code: %w", err)
		}
		otpCode = code
	}

	if err := application.Session.Login(ctx, *email, *password, otpCode); err != nil {
		return err
	}

	fmt.Printf("logged in as %s (%s)\n",
		application.Session.User().Email,
		application.Session.User().Role,
	)
	return nil
}

func cmdWhoami(application *app.Application) error {
	if !application.Session.Authenticated() {
		fmt.Println("not logged in")
		return nil
	}

	user := application.Session.User()
	fmt.Printf("email:         %s\n", user.Email)
	fmt.Printf("name:          %s\n", user.Name)
	fmt.Printf("role:          %s\n", user.Role)
	fmt.Printf("last activity: %s\n", application.Session.LastActivity().Format(time.RFC3339))
	return nil
}

func cmdRefresh(ctx context.Context, application *app.Application) error {
	if err := application.Session.RefreshToken(ctx); err != nil {
		return err
	}
	fmt.Println("token refreshed")
	return nil
}

func cmdUsers(ctx context.Context, application *app.Application, args []string) error {
	fs := flag.NewFlagSet("users", flag.ContinueOnError)
	search := fs.String("search", "", "filter by name or email")
	status := fs.String("status", "", "filter by status (active, inactive)")
	page := fs.Int("page", 0, "page number")
	limit := fs.Int("limit", 0, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	users, err := application.Users.List(ctx, decorapi.UserListParams{
		Search: *search,
		Status: *status,
		Page:   *page,
		Limit:  *limit,
	})
	if err != nil {
		return err
	}

	for _, u := range users {
		fmt.Printf("%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Role, u.Status)
	}
	return nil
}

func cmdBlog(ctx context.Context, application *app.Application, args []string) error {
	fs := flag.NewFlagSet("blog", flag.ContinueOnError)
	lang := fs.String("lang", "en", "storefront language (en, vi)")
	status := fs.String("status", "", "filter by status (draft, published)")
	page := fs.Int("page", 0, "page number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	posts, err := application.Blog.List(ctx, decorapi.BlogListParams{
		Language: *lang,
		Status:   *status,
		Page:     *page,
	})
	if err != nil {
		return err
	}

	for _, p := range posts {
		title := p.Title.En
		if *lang == "vi" {
			title = p.Title.Vi
		}
		fmt.Printf("%s\t%s\t%s\n", p.ID, p.Status, title)
	}
	return nil
}

func cmdCart(ctx context.Context, application *app.Application, args []string) error {
	fs := flag.NewFlagSet("cart", flag.ContinueOnError)
	userID := fs.String("user", "", "customer account ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *userID == "" {
		return fmt.Errorf("cart requires -user")
	}

	cart, err := application.Carts.Get(ctx, *userID)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(cart, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
