package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teamsite/content-api/internal/editor"
)

func newSaveCommand(ctx *commandContext) *cobra.Command {
	var id, name, description, locale, image string

	cmd := &cobra.Command{
		Use:   "save <kind>",
		Short: "Create a record, or update one when --id is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, err := parseSection(args[0])
			if err != nil {
				return err
			}

			final, err := ctx.runEditor(cmd.Context(), func(rt *editor.Runtime) {
				rt.Dispatch(editor.SelectSection{Section: section})
				rt.Dispatch(editor.SetField{Field: "token", Value: ctx.token()})
				if id != "" {
					rt.Dispatch(editor.SelectRecord{Record: editor.RecordSummary{ID: id}})
				}
				rt.Dispatch(editor.SetField{Field: "name", Value: name})
				rt.Dispatch(editor.SetField{Field: "description", Value: description})
				rt.Dispatch(editor.SetField{Field: "locale", Value: locale})
				if image != "" {
					rt.Dispatch(editor.AttachFile{Path: image})
				}
				rt.Dispatch(editor.Submit{})
			})
			if err != nil {
				return err
			}
			if final.MessageIsError {
				return errors.New(final.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), final.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Record id to update (omit to create)")
	cmd.Flags().StringVar(&name, "name", "", "Record name")
	cmd.Flags().StringVar(&description, "description", "", "Description, or role label for members")
	cmd.Flags().StringVar(&locale, "locale", "", "Locale tag")
	cmd.Flags().StringVar(&image, "image", "", "Path to an image file to attach")

	return cmd
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <kind> <id>",
		Short: "Delete a record and its asset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, err := parseSection(args[0])
			if err != nil {
				return err
			}

			final, err := ctx.runEditor(cmd.Context(), func(rt *editor.Runtime) {
				rt.Dispatch(editor.SelectSection{Section: section})
				rt.Dispatch(editor.SetField{Field: "token", Value: ctx.token()})
				rt.Dispatch(editor.SelectRecord{Record: editor.RecordSummary{ID: args[1]}})
				rt.Dispatch(editor.Delete{})
			})
			if err != nil {
				return err
			}
			if final.MessageIsError {
				return errors.New(final.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), final.Message)
			return nil
		},
	}
}

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list <kind>",
		Short: "List records of a kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, err := parseSection(args[0])
			if err != nil {
				return err
			}

			records, err := ctx.client().ListRecords(cmd.Context(), section)
			if err != nil {
				return err
			}
			for _, rec := range records {
				marker := " "
				if rec.HasImage {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-36s  %-8s  %s (%s)\n",
					marker, rec.ID, rec.Locale, rec.Name, rec.Description)
			}
			return nil
		},
	}
}
