// Package main checks that a revised OpenAPI document stays backward
// compatible with a base document. CI runs it against docs/swagger.yaml so
// frontend clients never lose an endpoint or response code they depend on.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var httpMethods = map[string]struct{}{
	"get":     {},
	"put":     {},
	"post":    {},
	"delete":  {},
	"patch":   {},
	"head":    {},
	"options": {},
}

// operations maps "METHOD /path" to the set of documented response codes.
type operations map[string]map[string]struct{}

type document struct {
	Paths map[string]map[string]yaml.Node `yaml:"paths"`
}

func main() {
	basePath := flag.String("base", "", "base OpenAPI swagger.yaml path")
	revisionPath := flag.String("revision", "", "revision OpenAPI swagger.yaml path")
	flag.Parse()

	if strings.TrimSpace(*basePath) == "" || strings.TrimSpace(*revisionPath) == "" {
		fmt.Fprintln(os.Stderr, "usage: openapi-compat -base <path> -revision <path>")
		os.Exit(2)
	}

	base, err := loadOperations(*basePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load base spec: %v\n", err)
		os.Exit(1)
	}
	revision, err := loadOperations(*revisionPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load revision spec: %v\n", err)
		os.Exit(1)
	}

	breaks := findBreaks(base, revision)
	if len(breaks) > 0 {
		fmt.Fprintln(os.Stderr, "backward compatibility check failed:")
		for _, b := range breaks {
			fmt.Fprintf(os.Stderr, "- %s\n", b)
		}
		os.Exit(1)
	}

	fmt.Printf("openapi compatibility check passed (%d operations)\n", len(base))
}

func loadOperations(path string) (operations, error) {
	// #nosec G304: path comes from CLI flags in a dev tool
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc.Paths == nil {
		return nil, fmt.Errorf("missing top-level paths field")
	}

	ops := make(operations)
	for pathKey, item := range doc.Paths {
		for methodKey, node := range item {
			method := strings.ToLower(strings.TrimSpace(methodKey))
			if _, ok := httpMethods[method]; !ok {
				// path items also carry keys like "parameters"
				continue
			}

			var op struct {
				Responses map[string]yaml.Node `yaml:"responses"`
			}
			if err := node.Decode(&op); err != nil {
				continue
			}

			codes := make(map[string]struct{}, len(op.Responses))
			for code := range op.Responses {
				code = strings.TrimSpace(code)
				if code != "" {
					codes[code] = struct{}{}
				}
			}
			ops[strings.ToUpper(method)+" "+pathKey] = codes
		}
	}

	return ops, nil
}

func findBreaks(base, revision operations) []string {
	var breaks []string

	for key, baseCodes := range base {
		revCodes, ok := revision[key]
		if !ok {
			breaks = append(breaks, "removed operation: "+key)
			continue
		}
		for code := range baseCodes {
			if _, ok := revCodes[code]; !ok {
				breaks = append(breaks, fmt.Sprintf("removed response code: %s -> %s", key, code))
			}
		}
	}

	sort.Strings(breaks)
	return breaks
}
