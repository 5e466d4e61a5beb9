package cli

import (
	"cipherstudio/internal/domain/project"
	"cipherstudio/internal/workspace"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

const (
	flagContent = "content"
	flagFrom    = "from"
	stdinPath   = "-"

	errFailedReadContentFmt = "failed to read %s: %w"
)

type contentFlags struct {
	content string
	from    string
}

func (f *contentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.content, flagContent, "", "File content")
	cmd.Flags().StringVar(&f.from, flagFrom, "", "Read content from a path, or - for stdin")
	cmd.MarkFlagsMutuallyExclusive(flagContent, flagFrom)
}

func (f *contentFlags) read(cmd *cobra.Command) (string, error) {
	if f.from == "" {
		return f.content, nil
	}

	var (
		data []byte
		err  error
	)
	if f.from == stdinPath {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(f.from)
	}
	if err != nil {
		return "", fmt.Errorf(errFailedReadContentFmt, f.from, err)
	}
	return string(data), nil
}

func newFileCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file",
		Short: "Edit the files of a project",
		Long:  `Add, rename, delete, write and print project files. Every change is saved locally and pushed to the API.`,
	}

	cmd.AddCommand(
		newFileAddCommand(app),
		newFileRenameCommand(app),
		newFileRemoveCommand(app),
		newFileWriteCommand(app),
		newFileCatCommand(app),
	)

	return cmd
}

func newFileAddCommand(app *App) *cobra.Command {
	var content contentFlags

	cmd := &cobra.Command{
		Use:   "add <project> <name>",
		Short: "Add a file; its type follows the extension",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := content.read(cmd)
			if err != nil {
				return err
			}

			var created project.File
			err = app.editProject(cmd.Context(), args[0], func(s *workspace.Session) error {
				created, err = s.CreateFile(args[1], body)
				return err
			})
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), created, filesTable([]project.File{created}))
		},
	}

	content.register(cmd)
	return cmd
}

func newFileRenameCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <project> <fileID> <name>",
		Short: "Rename a file and re-derive its type",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				renamed project.File
				err     error
			)
			err = app.editProject(cmd.Context(), args[0], func(s *workspace.Session) error {
				renamed, err = s.RenameFile(args[1], args[2])
				return err
			})
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), renamed, filesTable([]project.File{renamed}))
		},
	}
}

func newFileRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <project> <fileID>",
		Aliases: []string{"delete"},
		Short:   "Delete a file",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.editProject(cmd.Context(), args[0], func(s *workspace.Session) error {
				return s.DeleteFile(args[1])
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted file %s\n", args[1])
			return nil
		},
	}
}

func newFileWriteCommand(app *App) *cobra.Command {
	var content contentFlags

	cmd := &cobra.Command{
		Use:   "write <project> <fileID>",
		Short: "Replace a file's content",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := content.read(cmd)
			if err != nil {
				return err
			}

			var updated project.File
			err = app.editProject(cmd.Context(), args[0], func(s *workspace.Session) error {
				updated, err = s.UpdateFile(args[1], body)
				return err
			})
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), updated, filesTable([]project.File{updated}))
		},
	}

	content.register(cmd)
	return cmd
}

func newFileCatCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <project> <fileID>",
		Short: "Print a file's content",
		Args:  cobra.ExactArgs(2),
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

			f, err := workspace.NewSession(p, w.policy).File(args[1])
			if err != nil {
				return err
			}

			_, err = io.WriteString(cmd.OutOrStdout(), f.Content)
			return err
		},
	}
}
