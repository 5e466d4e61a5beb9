package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const (
	flagDescription = "description"
	flagRemote      = "remote"
)

var errRemoteOffline = errors.New("--remote cannot be combined with --offline")

func newProjectCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
		Long:  `Create, list, inspect and delete projects. Reads go to the local store first; writes go to the local store and then the API.`,
	}

	cmd.AddCommand(
		newProjectListCommand(app),
		newProjectNewCommand(app),
		newProjectShowCommand(app),
		newProjectRemoveCommand(app),
		newProjectSaveCommand(app),
	)

	return cmd
}

func newProjectListCommand(app *App) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List local projects, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if remote {
				return app.listRemote(cmd)
			}

			w, err := app.openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer w.Close()

			projects, err := w.policy.List(cmd.Context())
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), projects, projectsTable(projects))
		},
	}

	cmd.Flags().BoolVar(&remote, flagRemote, false, "List public projects from the API instead")
	return cmd
}

func (a *App) listRemote(cmd *cobra.Command) error {
	if a.offline {
		return errRemoteOffline
	}

	w, err := a.openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer w.Close()

	summaries, err := w.remote.List(cmd.Context())
	if err != nil {
		return err
	}
	return a.render(cmd.OutOrStdout(), summaries, summariesTable(summaries))
}

func newProjectNewCommand(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a project with the starter files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := app.openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer w.Close()

			p, err := w.policy.Create(cmd.Context(), args[0], description)
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), p, projectTable(p))
		},
	}

	cmd.Flags().StringVarP(&description, flagDescription, "d", "", "Project description")
	return cmd
}

func newProjectShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a project and its files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := app.openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer w.Close()

			p, err := w.policy.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), p, projectTable(p))
		},
	}
}

func newProjectRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a project locally and on the API",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := app.openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer w.Close()

			if err := w.policy.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", args[0])
			return nil
		},
	}
}

// save re-pushes the local copy, which is how a project edited offline
// reaches the API once it is reachable again. A project created offline is
// unknown to the server, so it is created there and printed under its new id.
func newProjectSaveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "save <id>",
		Short: "Save a project locally and push it to the API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := app.openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer w.Close()

			p, err := w.policy.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			saved, err := w.policy.Save(cmd.Context(), p)
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), saved, projectTable(saved))
		},
	}
}
