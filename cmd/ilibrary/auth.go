package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
)

type loginOptions struct {
	Username string
	Password string
}

func parseLoginFlags(name string, args []string) (loginOptions, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts loginOptions
	fs.StringVar(&opts.Username, "username", "", "Account username (prompted when omitted)")
	fs.StringVar(&opts.Password, "password", "", "Account password (prompted when omitted)")

	if err := fs.Parse(args); err != nil {
		return loginOptions{}, err
	}
	return opts, nil
}

// promptLine reads one line from stdin after printing the label.
func promptLine(label string) (string, error) {
	if err := writef(os.Stdout, "%s: ", label); err != nil {
		return "", err
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read %s: %w", label, err)
	}
	return strings.TrimSpace(line), nil
}

func resolveCredentials(opts loginOptions) (string, string, error) {
	username := opts.Username
	password := opts.Password
	var err error
	if username == "" {
		if username, err = promptLine("username"); err != nil {
			return "", "", err
		}
	}
	if password == "" {
		if password, err = promptLine("password"); err != nil {
			return "", "", err
		}
	}
	if username == "" || password == "" {
		return "", "", fmt.Errorf("%w: username and password are required", errMissingArgument)
	}
	return username, password, nil
}

func runSignup(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var username, password, email string
	fs.StringVar(&username, "username", "", "Desired username")
	fs.StringVar(&password, "password", "", "Desired password")
	fs.StringVar(&email, "email", "", "Contact email")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if username == "" || password == "" || email == "" {
		return fmt.Errorf("%w: -username, -password and -email are required", errMissingArgument)
	}

	payload := map[string]any{
		"username": username,
		"password": password,
		"email":    email,
	}
	if err := ctx.App.Auth.Signup(ctx.Ctx, payload); err != nil {
		return err
	}
	return writef(os.Stdout, "account created, log in with: ilibrary login -username %s\n", username)
}

func runLogin(ctx *commandContext, args []string) error {
	opts, err := parseLoginFlags("login", args)
	if err != nil {
		return err
	}
	username, password, err := resolveCredentials(opts)
	if err != nil {
		return err
	}

	sess, err := ctx.App.Auth.Login(ctx.Ctx, username, password)
	if err != nil {
		return err
	}

	dest, err := ctx.App.Router.Route(sess.Identity.Roles)
	if err != nil {
		return err
	}
	return writef(os.Stdout, "logged in as %s -> %s\n", sess.Identity.Username, dest)
}

func runLogout(ctx *commandContext, _ []string) error {
	if err := ctx.App.Auth.Logout(ctx.Ctx); err != nil {
		return err
	}
	return writef(os.Stdout, "logged out\n")
}

func runWhoami(ctx *commandContext, _ []string) error {
	sess := ctx.App.Auth.Current()
	if !sess.IsAuthenticated() {
		return writef(os.Stdout, "not logged in\n")
	}

	if err := writef(os.Stdout, "username: %s\n", sess.Identity.Username); err != nil {
		return err
	}
	if sess.Identity.Email != "" {
		if err := writef(os.Stdout, "email:    %s\n", sess.Identity.Email); err != nil {
			return err
		}
	}
	if err := writef(os.Stdout, "roles:    %s\n", strings.Join(sess.Identity.Roles, ", ")); err != nil {
		return err
	}

	dest, err := ctx.App.Router.Route(sess.Identity.Roles)
	if err != nil {
		return writef(os.Stdout, "landing:  unavailable (%v)\n", err)
	}
	return writef(os.Stdout, "landing:  %s\n", dest)
}
