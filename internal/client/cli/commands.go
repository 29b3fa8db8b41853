package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/go-todo-app/internal/client"
	"github.com/adanyl0v/go-todo-app/internal/models"
)

func NewRootCommand(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "todo",
		Short:         "Manage your todo list from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.loadSession()
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.out)

	root.AddCommand(
		a.signupCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.profileCommand(),
		a.listCommand(),
		a.addCommand(),
		a.editCommand(),
		a.completeCommand("done", "Mark a todo as completed", true),
		a.completeCommand("undone", "Mark a todo as not completed", false),
		a.removeCommand(),
	)
	return root
}

func (a *App) signupCommand() *cobra.Command {
	var req client.SignupRequest
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if req.Username, err = a.promptIfEmpty(req.Username, "Username"); err != nil {
				return err
			}
			if req.Email, err = a.promptIfEmpty(req.Email, "Email"); err != nil {
				return err
			}
			if req.Phone, err = a.promptIfEmpty(req.Phone, "Phone"); err != nil {
				return err
			}
			if req.Password, err = a.promptPassword(); err != nil {
				return err
			}

			if err = a.api.Signup(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Account created, you can log in now.")
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&req.Username, "username", "", "user name")
	flags.StringVar(&req.Email, "email", "", "email address")
	flags.StringVar(&req.Phone, "phone", "", "phone number")
	flags.StringVar(&req.Address, "address", "", "postal address")
	flags.StringVar(&req.Avatar, "avatar", "", "avatar URL")
	return cmd
}

func (a *App) loginCommand() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if email, err = a.promptIfEmpty(email, "Email"); err != nil {
				return err
			}
			password, err := a.promptPassword()
			if err != nil {
				return err
			}

			res, err := a.api.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			a.session = &client.Session{Token: res.Token, User: res.User}
			if err = a.sessions.Save(a.session); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Logged in as %s.\n", res.User.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	return cmd
}

func (a *App) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := a.sessions.Clear(); err != nil {
				return err
			}
			a.session = nil
			fmt.Fprintln(a.out, "Logged out.")
			return nil
		},
	}
}

func (a *App) profileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			user, err := a.api.GetProfile(cmd.Context())
			if err != nil {
				return err
			}
			a.printProfile(user)
			return nil
		},
	}
	cmd.AddCommand(a.profileUpdateCommand())
	return cmd
}

func (a *App) profileUpdateCommand() *cobra.Command {
	var username, address, phone, avatar string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}

			var update client.ProfileUpdate
			flags := cmd.Flags()
			if flags.Changed("username") {
				update.Username = &username
			}
			if flags.Changed("address") {
				update.Address = &address
			}
			if flags.Changed("phone") {
				update.Phone = &phone
			}
			if flags.Changed("avatar") {
				update.Avatar = &avatar
			}

			user, err := a.api.UpdateProfile(cmd.Context(), update)
			if err != nil {
				return err
			}
			a.printProfile(user)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&username, "username", "", "new user name")
	flags.StringVar(&address, "address", "", "new postal address")
	flags.StringVar(&phone, "phone", "", "new phone number")
	flags.StringVar(&avatar, "avatar", "", "new avatar URL")
	return cmd
}

func (a *App) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your todos",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			todos, err := a.api.ListTodos(cmd.Context())
			if err != nil {
				return err
			}
			if len(todos) == 0 {
				fmt.Fprintln(a.out, "Nothing to do.")
				return nil
			}

			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			for _, todo := range todos {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", checkbox(todo.IsCompleted), todo.ID, todo.Title, todo.Description)
			}
			return w.Flush()
		},
	}
}

func (a *App) addCommand() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			var err error
			if description, err = a.promptIfEmpty(description, "Description"); err != nil {
				return err
			}

			todo, err := a.api.CreateTodo(cmd.Context(), args[0], description)
			if err != nil {
				return err
			}
			a.printTodo(todo)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "todo description")
	return cmd
}

func (a *App) editCommand() *cobra.Command {
	var title, description string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title or description of a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}

			var update client.TodoUpdate
			if cmd.Flags().Changed("title") {
				update.Title = &title
			}
			if cmd.Flags().Changed("description") {
				update.Description = &description
			}

			todo, err := a.api.UpdateTodo(cmd.Context(), args[0], update)
			if err != nil {
				return err
			}
			a.printTodo(todo)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	return cmd
}

func (a *App) completeCommand(use, short string, isCompleted bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			todo, err := a.api.SetCompleted(cmd.Context(), args[0], isCompleted)
			if err != nil {
				return err
			}
			a.printTodo(todo)
			return nil
		},
	}
}

func (a *App) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			if err := a.api.DeleteTodo(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Deleted.")
			return nil
		},
	}
}

func (a *App) printTodo(todo *models.Task) {
	fmt.Fprintf(a.out, "%s %s %s\n", checkbox(todo.IsCompleted), todo.ID, todo.Title)
}

func (a *App) printProfile(user *models.User) {
	fmt.Fprintf(a.out, "Username: %s\nEmail:    %s\nPhone:    %s\nAddress:  %s\nAvatar:   %s\nTodos:    %d\n",
		user.Username, user.Email, user.Phone, user.Address, user.Avatar, len(user.TaskIDs))
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
