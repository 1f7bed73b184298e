// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Command gen-schema generates JSON Schema files for the gateway request bodies.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/holomush/shopfront/internal/gateway"
)

func main() {
	if err := generate("schemas"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func generate(dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	names := make([]string, 0, len(gateway.RequestBodies()))
	for name := range gateway.RequestBodies() {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		schema, err := gateway.GenerateSchema(name)
		if err != nil {
			return fmt.Errorf("generating %s schema: %w", name, err)
		}
		outPath := filepath.Join(dir, name+".schema.json")
		if err := os.WriteFile(outPath, schema, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		fmt.Printf("Generated %s\n", outPath)
	}
	return nil
}
