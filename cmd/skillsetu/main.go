package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"skillsetu/internal/bootstrap"
	plandto "skillsetu/internal/modules/plan/dto"
	"skillsetu/internal/platform/config"
	apperrors "skillsetu/internal/platform/errors"
	"skillsetu/internal/platform/validate"
)

const sessionExpiredNotice = `session expired: run "skillsetu login"`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if msg := apperrors.UserMessage(err, err.Error()); msg != "" {
			_, _ = fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(1)
	}
}

type globalFlags struct {
	apiBase  string
	dataDir  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "skillsetu",
		Short:         "Learning plans in your terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.apiBase, "api-base", "", "API base URL (default "+config.DefaultAPIBase+")")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "directory for the local store, config.yaml and logs")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "trace|debug|info|warn|error|off")

	root.AddCommand(newLoginCmd(flags))
	root.AddCommand(newRegisterCmd(flags))
	root.AddCommand(newLogoutCmd(flags))
	root.AddCommand(newWhoamiCmd(flags))
	root.AddCommand(newPlansCmd(flags))
	root.AddCommand(newProgressCmd(flags))
	root.AddCommand(newStatusCmd(flags))
	root.AddCommand(newTUICmd(flags))
	return root
}

func loadConfig(flags *globalFlags) (config.Config, error) {
	return config.Load(config.Options{
		APIBase:  flags.apiBase,
		DataDir:  flags.dataDir,
		LogLevel: flags.logLevel,
	})
}

// loadApp wires the application for a one-shot command. A rejected token
// is reported on stderr since there is no screen to send the user to.
func loadApp(cmd *cobra.Command, flags *globalFlags) (*bootstrap.App, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.New(bootstrap.Options{Config: cfg, LogOutput: cmd.ErrOrStderr()})
	if err != nil {
		return nil, err
	}
	app.OnSessionExpired(func() {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), sessionExpiredNotice)
	})
	return app, nil
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [path]",
		Short: "Run the skillsetu terminal UI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			start := ""
			if len(args) == 1 {
				start = args[0]
			}
			return bootstrap.RunTUI(cfg, start)
		},
	}
}

// ─── auth ────────────────────────────────────────────────────────────────────

func readPassword(cmd *cobra.Command, given string) (string, error) {
	if given != "" {
		return given, nil
	}
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLoginCmd(flags *globalFlags) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := readPassword(cmd, password)
			if err != nil {
				return err
			}
			app, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if _, err := app.AuthCLI.Login(context.Background(), email, pw, ""); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged in successfully")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when empty)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newRegisterCmd(flags *globalFlags) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := readPassword(cmd, password)
			if err != nil {
				return err
			}
			app, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if _, err := app.AuthCLI.Register(context.Background(), email, pw); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Registered successfully, please log in")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when empty)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.AuthCLI.Logout(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newWhoamiCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored token and the account it belongs to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := context.Background()
			st, err := app.AuthCLI.Status(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !st.Present {
				return apperrors.ErrNoCredential
			}
			_, _ = fmt.Fprintf(out, "token    %s\n", st.Masked)
			if st.Subject != "" {
				_, _ = fmt.Fprintf(out, "subject  %s\n", st.Subject)
			}
			if !st.ExpiresAt.IsZero() {
				_, _ = fmt.Fprintf(out, "expires  %s\n", st.ExpiresAt.Local().Format("2006-01-02 15:04"))
			}
			user, err := app.AuthCLI.Verify(ctx, "")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "user     %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
}

// ─── plans ───────────────────────────────────────────────────────────────────

func newPlansCmd(flags *globalFlags) *cobra.Command {
	plans := &cobra.Command{Use: "plans", Short: "Browse, generate and delete learning plans"}

	var query, filter string
	var asJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List plans with optional search and filter",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.PlanCLI.Browse(context.Background(), query, filter)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			printPlans(cmd.OutOrStdout(), out)
			return nil
		},
	}
	listCmd.Flags().StringVar(&query, "query", "", "case-insensitive match on role and summary")
	listCmd.Flags().StringVar(&filter, "filter", "all", "all|active|completed|auto")
	listCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	var showJSON bool
	showCmd := &cobra.Command{
		Use:   "show <plan-id>",
		Short: "Show a plan grouped by week with local progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()
			detail, err := app.PlanCLI.Detail(context.Background(), args[0])
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return errors.New("Plan not found.")
				}
				return err
			}
			if showJSON {
				return writeJSON(cmd.OutOrStdout(), detail)
			}
			printDetail(cmd.OutOrStdout(), detail)
			return nil
		},
	}
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print JSON")

	deleteCmd := &cobra.Command{
		Use:   "delete <plan-id>",
		Short: "Delete a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.PlanCLI.Delete(context.Background(), args[0]); err != nil {
				if msg := apperrors.UserMessage(err, "Delete failed"); msg != "" {
					return errors.New(msg)
				}
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Plan deleted")
			return nil
		},
	}

	var goal, skills string
	var weeks int
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Ask the AI generator for a new plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "generating, this can take up to two minutes…")
			out, err := app.PlanCLI.Generate(context.Background(), goal, validate.SplitSkills(skills), weeks)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Plan created successfully: %s\n", out.PlanID)
			if out.Summary != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Summary)
			}
			return nil
		},
	}
	generateCmd.Flags().StringVar(&goal, "goal", "Become a Machine Learning Engineer", "what you want to become")
	generateCmd.Flags().StringVar(&skills, "skills", "python, sql", "comma separated current skills")
	generateCmd.Flags().IntVar(&weeks, "weeks", 12, "plan length in weeks (2-24)")

	plans.AddCommand(listCmd, showCmd, deleteCmd, generateCmd)
	return plans
}

func printPlans(w io.Writer, out plandto.BrowseOutput) {
	_, _ = fmt.Fprintf(w, "%d plans  avg %.1f weeks  last created %s\n\n",
		out.Stats.Count, out.Stats.AvgDurationWeeks, out.Stats.LastCreated)
	if out.Total == 0 {
		_, _ = fmt.Fprintln(w, "no plans yet")
		return
	}
	if len(out.Plans) == 0 {
		_, _ = fmt.Fprintln(w, "no plans match")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tROLE\tWEEKS\tSTATUS\tCREATED")
	for _, p := range out.Plans {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", p.ID, p.TargetRole, p.DurationWeeks, p.Status, p.CreatedAgo)
	}
	_ = tw.Flush()
}

func printDetail(w io.Writer, d plandto.DetailOutput) {
	_, _ = fmt.Fprintf(w, "%s  (%d weeks", d.Plan.TargetRole, d.Plan.DurationWeeks)
	if d.Plan.CreatedAgo != "" {
		_, _ = fmt.Fprintf(w, ", created %s", d.Plan.CreatedAgo)
	}
	_, _ = fmt.Fprintln(w, ")")
	_, _ = fmt.Fprintf(w, "Progress: %d/%d completed\n", d.Completed, d.Total)
	if d.Plan.Summary != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", d.Plan.Summary)
	}
	for _, week := range d.Weeks {
		_, _ = fmt.Fprintf(w, "\nWeek %d  %d/%d\n", week.Week, week.Completed, week.Total)
		for _, item := range week.Items {
			box := "[ ]"
			if item.Completed {
				box = "[x]"
			}
			_, _ = fmt.Fprintf(w, "  %s day %d  %s  (%s)\n", box, item.DayNo, item.Title, item.ID)
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ─── progress ────────────────────────────────────────────────────────────────

func newProgressCmd(flags *globalFlags) *cobra.Command {
	progress := &cobra.Command{Use: "progress", Short: "Track completed plan items"}
	progress.AddCommand(&cobra.Command{
		Use:   "toggle <plan-id> <item-id>",
		Short: "Flip an item between done and not done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ProgressCLI.Toggle(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			state := "not done"
			if out.Completed {
				state = "done"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is %s (%d completed in plan %s)\n", out.ItemID, state, out.CompletedCount, out.PlanID)
			return nil
		},
	})
	return progress
}

// ─── status ──────────────────────────────────────────────────────────────────

func newStatusCmd(flags *globalFlags) *cobra.Command {
	var token string
	var generator bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check the token against the API and optionally the AI generator",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := context.Background()
			out := cmd.OutOrStdout()

			st, err := app.AuthCLI.Status(ctx)
			if err != nil {
				return err
			}
			if st.Present {
				_, _ = fmt.Fprintf(out, "token          %s\n", st.Masked)
			} else {
				_, _ = fmt.Fprintln(out, "token          No token found.")
			}

			auth, err := app.StatusCLI.CheckAuthorization(ctx, token)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "authorization  %s  %s\n", auth.State, auth.Message)
			if !generator {
				return nil
			}
			gen, err := app.StatusCLI.CheckGenerator(ctx, token)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "generator      %s  %s\n", gen.State, gen.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "check this token instead of the stored one")
	cmd.Flags().BoolVar(&generator, "generator", false, "also run the generator health check (creates and deletes a plan)")
	return cmd
}
