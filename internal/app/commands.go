package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/go-todo-board/internal/models"
	"github.com/adanyl0v/go-todo-board/internal/seed"
	"github.com/adanyl0v/go-todo-board/internal/services"
	"github.com/adanyl0v/go-todo-board/internal/state"
	"github.com/adanyl0v/go-todo-board/internal/ui"
	"github.com/adanyl0v/go-todo-board/internal/validation"
)

var errNotSignedIn = errors.New("not signed in")

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := newRootCommand().ExecuteContext(ctx)
	CloseLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "todo",
		Short:         "Local todo list with a terminal interface",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			interactive := cmd.Name() == "tui" || cmd.Name() == "todo"
			MustReadEnv(configPath)
			MustInitApplicationLogger(interactive)
			MustInitTranslator()
			MustOpenStorage()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML, YAML or JSON config file")

	root.AddCommand(
		newTUICommand(),
		newSeedCommand(),
		newExportCommand(),
		newVerifyCommand(),
		newDumpCommand(),
		newRegisterCommand(),
		newLoginCommand(),
		newLogoutCommand(),
		newWhoamiCommand(),
		newTasksCommand(),
	)
	return root
}

func newTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal interface",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context())
		},
	}
}

func runTUI(ctx context.Context) error {
	return ui.Run(ctx, mustNewActions(), globalTranslator)
}

func newSeedCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill empty collections with sample data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := seed.Seed(globalLogger, globalStorage, force)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "users seeded: %t\ntasks seeded: %t\n", result.UsersSeeded, result.TasksSeeded)
			fmt.Fprintf(out, "demo credentials: %s / %s\n", seed.DemoEmail, seed.DemoPassword)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing users and tasks")
	return cmd
}

func newExportCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Mirror users and tasks to JSON files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := seed.Export(globalStorage, dir)
			if err != nil {
				globalLogger.Error().
					Err(err).
					Str("dir", dir).
					Msg("failed to export")
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote users.json and tasks.json to %s\n", dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "data", "directory to write users.json and tasks.json to")
	return cmd
}

func newVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Report whether storage holds valid users and tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := globalStorage.Verify()
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
}

func newDumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print every stored key and value",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return globalStorage.Dump(cmd.OutOrStdout())
		},
	}
}

func newRegisterCommand() *cobra.Command {
	var form validation.RegisterForm

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if form.ConfirmPassword == "" {
				form.ConfirmPassword = form.Password
			}
			if errs := validation.Register(globalTranslator, form); !errs.Valid() {
				return errs
			}

			actions := mustNewActions()
			actions.Register(cmd.Context(), services.RegisterParams{
				Username: strings.TrimSpace(form.Username),
				Email:    strings.TrimSpace(form.Email),
				Password: form.Password,
			})
			return printAuthOutcome(cmd.OutOrStdout(), actions.Store().State().Auth)
		},
	}
	cmd.Flags().StringVar(&form.Username, "username", "", "username")
	cmd.Flags().StringVar(&form.Email, "email", "", "email")
	cmd.Flags().StringVar(&form.Password, "password", "", "password")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm-password", "", "password confirmation (defaults to --password)")
	return cmd
}

func newLoginCommand() *cobra.Command {
	var form validation.LoginForm

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if errs := validation.Login(globalTranslator, form); !errs.Valid() {
				return errs
			}

			actions := mustNewActions()
			actions.Login(cmd.Context(), services.LoginParams{
				Email:    strings.TrimSpace(form.Email),
				Password: form.Password,
			})
			return printAuthOutcome(cmd.OutOrStdout(), actions.Store().State().Auth)
		},
	}
	cmd.Flags().StringVar(&form.Email, "email", "", "email")
	cmd.Flags().StringVar(&form.Password, "password", "", "password")
	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			actions := mustNewActions()
			actions.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			actions := mustNewActions()
			user, err := loadCurrentUser(cmd.Context(), actions)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (id %s)\n", user.Username, user.Email, user.ID)
			return nil
		},
	}
}

func newTasksCommand() *cobra.Command {
	var (
		filter   string
		category string
		view     string
	)

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the signed in user's tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, ok := state.ParseView(view)
			if !ok {
				return fmt.Errorf("unknown view %q, want all, active or completed", view)
			}

			actions := mustNewActions()
			user, err := loadCurrentUser(cmd.Context(), actions)
			if err != nil {
				return err
			}

			actions.GetTasks(cmd.Context(), user.ID)
			if filter != "" {
				actions.FilterTasks(filter)
			}
			actions.SetTaskCategory(category)

			taskState := actions.Store().State().Task
			if taskState.Error != "" {
				return errors.New(taskState.Error)
			}
			return printTasks(cmd.OutOrStdout(), taskState.Visible(v), state.ComputeStats(taskState.Tasks))
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "only tasks whose title or description contains this text")
	cmd.Flags().StringVar(&category, "category", models.CategoryAll, "only tasks in this category")
	cmd.Flags().StringVar(&view, "view", string(state.ViewAll), "all, active or completed")
	return cmd
}

func loadCurrentUser(ctx context.Context, actions *state.Actions) (*models.User, error) {
	token := actions.Store().State().Auth.Token
	if token == "" {
		return nil, errNotSignedIn
	}

	actions.LoadUser(ctx, token)
	auth := actions.Store().State().Auth
	if !auth.IsAuthenticated() || auth.User == nil {
		return nil, fmt.Errorf("%w: %s", errNotSignedIn, auth.Error)
	}
	return auth.User, nil
}

func printAuthOutcome(w io.Writer, auth state.AuthState) error {
	if !auth.IsAuthenticated() || auth.User == nil {
		return errors.New(auth.Error)
	}
	_, err := fmt.Fprintf(w, "signed in as %s <%s>\n", auth.User.Username, auth.User.Email)
	return err
}

func printTasks(w io.Writer, tasks []models.Task, stats state.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DONE\tTITLE\tPRIORITY\tCATEGORY\tPROGRESS\tDUE")
	for _, task := range tasks {
		done := " "
		if task.Completed {
			done = "x"
		}
		due := "-"
		if task.DueDate != nil {
			due = task.DueDate.Format(validation.DateLayout)
		}
		fmt.Fprintf(tw, "[%s]\t%s\t%s\t%s\t%d%%\t%s\n",
			done, task.Title, task.Priority, task.Category, task.Progress, due)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d total, %d completed, %d pending, %d high priority, %.0f%% done\n",
		stats.Total, stats.Completed, stats.Pending, stats.HighPriority, stats.CompletionRate)
	return err
}
