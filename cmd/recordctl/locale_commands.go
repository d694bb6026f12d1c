package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teamsite/content-api/internal/editor"
)

func newLocalesCommand(ctx *commandContext) *cobra.Command {
	localesCmd := &cobra.Command{
		Use:   "locales",
		Short: "Inspect and manage locale tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			locales, err := ctx.client().ListLocales(cmd.Context())
			if err != nil {
				return err
			}
			for _, l := range locales {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
			return nil
		},
	}

	localesCmd.AddCommand(newLocalesAddCommand(ctx))
	localesCmd.AddCommand(newLocalesRemoveCommand(ctx))

	return localesCmd
}

func newLocalesAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <language>",
		Short: "Register a locale tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocaleOp(ctx, cmd, args[0], editor.Submit{})
		},
	}
}

func newLocalesRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <language>",
		Short: "Delete a locale tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocaleOp(ctx, cmd, args[0], editor.Delete{})
		},
	}
}

func runLocaleOp(ctx *commandContext, cmd *cobra.Command, language string, op editor.Action) error {
	final, err := ctx.runEditor(cmd.Context(), func(rt *editor.Runtime) {
		rt.Dispatch(editor.SelectSection{Section: editor.SectionLocales})
		rt.Dispatch(editor.SetField{Field: "token", Value: ctx.token()})
		rt.Dispatch(editor.SetField{Field: "locale", Value: language})
		rt.Dispatch(op)
	})
	if err != nil {
		return err
	}
	if final.MessageIsError {
		return errors.New(final.Message)
	}
	fmt.Fprintln(cmd.OutOrStdout(), final.Message)
	return nil
}
