package main

import (
	"github.com/abiiranathan/tmplvars/parser"
	"github.com/spf13/cobra"
)

var flagTemplate string

var extractCmd = &cobra.Command{
	Use:   "extract [template-file|-]",
	Short: "Extract variable paths and a token tree from a template",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tpl, err := templateFromArgs(args)
		if err != nil {
			return err
		}
		opts, err := parserOptions()
		if err != nil {
			return err
		}
		return emitJSON(parser.ExtractVariables(tpl, opts...))
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [template-file|-]",
	Short: "Check a template for unclosed block statements",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tpl, err := templateFromArgs(args)
		if err != nil {
			return err
		}
		opts, err := parserOptions()
		if err != nil {
			return err
		}

		report := parser.Validate(tpl, opts...)
		if err := emitJSON(report); err != nil {
			return err
		}
		if !report.Valid {
			return errInvalidTemplate
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{extractCmd, validateCmd} {
		cmd.Flags().StringVarP(&flagTemplate, "template", "t", "",
			"inline template string (instead of a file argument)")
	}
}

// templateFromArgs picks the inline --template flag or reads the file
// argument.
func templateFromArgs(args []string) (string, error) {
	if flagTemplate != "" {
		return flagTemplate, nil
	}
	if len(args) == 0 {
		return "", errMissingTemplate
	}
	return readTemplate(args[0])
}
