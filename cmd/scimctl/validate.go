package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xraph/scimcore/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <resourceType> <resource.json>",
	Short: "Validate a resource document against the bundled core schemas",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		resourceType, path := args[0], args[1]

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}

		registry := schema.NewRegistry()
		registry.RegisterCore()

		s, err := registry.ByResourceType(resourceType)
		if err != nil {
			return err
		}

		validator := schema.NewValidator(registry)
		opCtx := schema.Context{Operation: schema.OperationCreate}
		if err := validator.Validate(s, doc, opCtx); err != nil {
			return err
		}

		fmt.Println("valid")
		return nil
	},
}
