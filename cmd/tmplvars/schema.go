package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abiiranathan/tmplvars/datasource"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	flagDescription string
	flagSchemaFile  string
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate or check data schemas",
}

var schemaGenerateCmd = &cobra.Command{
	Use:   "generate <data.json>",
	Short: "Infer a schema from a JSON sample file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readJSONFile(args[0])
		if err != nil {
			return err
		}
		return emitJSON(datasource.GenerateSchema(data, flagDescription))
	},
}

var schemaCheckCmd = &cobra.Command{
	Use:   "check <data.json>",
	Short: "Validate a JSON data file against a schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readJSONFile(args[0])
		if err != nil {
			return err
		}
		schema, err := readSchemaFile(flagSchemaFile)
		if err != nil {
			return err
		}

		result := datasource.ValidateData(data, schema)
		if err := emitJSON(result); err != nil {
			return err
		}
		if !result.Valid {
			return fmt.Errorf("data does not match schema (%d errors)", len(result.Errors))
		}
		return nil
	},
}

func init() {
	schemaGenerateCmd.Flags().StringVarP(&flagDescription, "description", "d", "", "schema description")
	schemaCheckCmd.Flags().StringVar(&flagSchemaFile, "schema", "", "schema file (YAML or JSON)")
	schemaCheckCmd.MarkFlagRequired("schema")
	schemaCmd.AddCommand(schemaGenerateCmd, schemaCheckCmd)
}

func readJSONFile(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return data, nil
}

func readSchemaFile(path string) (datasource.Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return datasource.Schema{}, fmt.Errorf("read schema file: %w", err)
	}
	var schema datasource.Schema
	// Schemas are authored in YAML or JSON; YAML parses both.
	if err := yaml.Unmarshal(raw, &schema); err != nil {
		return datasource.Schema{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return schema, nil
}
