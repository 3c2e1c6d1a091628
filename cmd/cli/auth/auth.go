package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/crucial707/forum-web/cmd/cli/config"
	"github.com/crucial707/forum-web/cmd/cli/output"
	"github.com/crucial707/forum-web/cmd/cli/prompt"
	"github.com/crucial707/forum-web/cmd/cli/root"
	"github.com/crucial707/forum-web/internal/forms"
	"github.com/crucial707/forum-web/internal/models"
)

// maxAttempts bounds how often invalid fields are asked for again.
const maxAttempts = 3

// openSession is replaced in tests.
var openSession = func(cmd *cobra.Command) (*config.Session, error) {
	cfg, err := config.Load(root.Overrides())
	if err != nil {
		return nil, err
	}
	return config.Open(cmd.Context(), cfg, root.Logger())
}

// InitAuth registers login, register, logout and whoami on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(
		loginCmd(),
		registerCmd(),
		logoutCmd(),
		whoamiCmd(),
	)
}

// ==========================
// LOGIN
// ==========================
func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			out := cmd.OutOrStdout()
			if u, ok := sess.Service.User(); ok {
				fmt.Fprintf(out, "Already logged in as %s <%s>. Run 'forum logout' first.\n", u.Username, u.Email)
				return nil
			}

			p := prompt.New(cmd.InOrStdin(), out)
			form := forms.NewLoginForm(sess.Service)
			form.OnSuccess = func(u models.User) {
				fmt.Fprintf(out, "Logged in as %s <%s>.\n", u.Username, u.Email)
			}

			if email == "" {
				if email, err = p.Line("Email"); err != nil {
					return err
				}
			}
			form.SetEmail(email)
			if password == "" {
				if password, err = p.Secret("Password"); err != nil {
					return err
				}
			}
			form.SetPassword(password)

			return submitLogin(cmd.Context(), form, p, out)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email to log in with (prompted when empty)")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted without echo when empty)")
	return cmd
}

func submitLogin(ctx context.Context, f *forms.LoginForm, p *prompt.Prompter, out io.Writer) error {
	for attempt := 1; ; attempt++ {
		ok, err := f.Submit(ctx)
		if err != nil || ok {
			return err
		}
		if msg := f.ServerError(); msg != "" {
			return errors.New(msg)
		}

		errs := f.Errors()
		if attempt >= maxAttempts {
			return fieldsError(errs.Fields())
		}
		if errs.Email != "" {
			v, err := ask(p, out, errs.Email, "Email", false)
			if err != nil {
				return fieldsError(errs.Fields())
			}
			f.SetEmail(v)
		}
		if errs.Password != "" {
			v, err := ask(p, out, errs.Password, "Password", true)
			if err != nil {
				return fieldsError(errs.Fields())
			}
			f.SetPassword(v)
		}
	}
}

// ==========================
// REGISTER
// ==========================
func registerCmd() *cobra.Command {
	var username, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account (does not log in)",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			out := cmd.OutOrStdout()
			p := prompt.New(cmd.InOrStdin(), out)
			form := forms.NewRegisterForm(sess.Service)
			form.OnSuccess = func() {
				fmt.Fprintln(out, "Account created. Run 'forum login' to sign in.")
			}

			if username == "" {
				if username, err = p.Line("Username"); err != nil {
					return err
				}
			}
			form.SetUsername(username)
			if email == "" {
				if email, err = p.Line("Email"); err != nil {
					return err
				}
			}
			form.SetEmail(email)

			password, err := p.Secret("Password")
			if err != nil {
				return err
			}
			form.SetPassword(password)
			confirm, err := p.Secret("Confirm password")
			if err != nil {
				return err
			}
			form.SetConfirmPassword(confirm)

			return submitRegister(cmd.Context(), form, p, out)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username (prompted when empty)")
	cmd.Flags().StringVar(&email, "email", "", "email (prompted when empty)")
	return cmd
}

func submitRegister(ctx context.Context, f *forms.RegisterForm, p *prompt.Prompter, out io.Writer) error {
	for attempt := 1; ; attempt++ {
		ok, err := f.Submit(ctx)
		if err != nil || ok {
			return err
		}
		if msg := f.ServerError(); msg != "" {
			return errors.New(msg)
		}

		errs := f.Errors()
		if attempt >= maxAttempts {
			return fieldsError(errs.Fields())
		}
		fields := []struct {
			msg    string
			label  string
			secret bool
			set    func(string)
		}{
			{errs.Username, "Username", false, f.SetUsername},
			{errs.Email, "Email", false, f.SetEmail},
			{errs.Password, "Password", true, f.SetPassword},
			{errs.ConfirmPassword, "Confirm password", true, f.SetConfirmPassword},
		}
		for _, fld := range fields {
			if fld.msg == "" {
				continue
			}
			v, err := ask(p, out, fld.msg, fld.label, fld.secret)
			if err != nil {
				return fieldsError(errs.Fields())
			}
			fld.set(v)
		}
	}
}

// ==========================
// LOGOUT / WHOAMI
// ==========================
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			sess.Service.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			u, ok := sess.Service.User()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			output.RenderKV(cmd.OutOrStdout(), [][2]string{
				{"ID", fmt.Sprint(u.ID)},
				{"Username", u.Username},
				{"Email", u.Email},
				{"Since", u.CreatedAt.Local().Format(time.DateTime)},
			})
			return nil
		},
	}
}

func ask(p *prompt.Prompter, out io.Writer, problem, label string, secret bool) (string, error) {
	fmt.Fprintf(out, "  %s\n", problem)
	if secret {
		return p.Secret(label)
	}
	return p.Line(label)
}

func fieldsError(fields map[string]string) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + fields[name]
	}
	return fmt.Errorf("invalid input (%s)", strings.Join(parts, "; "))
}
