package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"
)

type violation struct {
	File   string
	Line   int
	Import string
	Rule   string
}

// layerRule lists the module-relative import prefixes a layer may use besides
// the standard library. Layers without a rule may import anything inside their
// own context.
type layerRule struct {
	allowed []string
}

var layerRules = map[string]layerRule{
	"domain":      {allowed: []string{"domain"}},
	"ports":       {allowed: []string{"domain", "ports", "@contracts"}},
	"application": {allowed: []string{"application", "domain", "ports", "@contracts"}},
}

var infrastructureRoots = []string{"internal", "integrations", "platform"}

func main() {
	modulePath, err := readModulePath("go.mod")
	if err != nil {
		fmt.Fprintf(os.Stderr, "read go.mod: %v\n", err)
		os.Exit(2)
	}

	violations := collectViolations(modulePath, "contexts")
	if len(violations) == 0 {
		fmt.Println("boundary checks passed")
		return
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].File == violations[j].File {
			if violations[i].Line == violations[j].Line {
				return violations[i].Import < violations[j].Import
			}
			return violations[i].Line < violations[j].Line
		}
		return violations[i].File < violations[j].File
	})

	fmt.Println("boundary violations found:")
	for _, v := range violations {
		fmt.Printf("- %s:%d imports %q (%s)\n", v.File, v.Line, v.Import, v.Rule)
	}
	os.Exit(1)
}

func readModulePath(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	file, err := modfile.ParseLax(path, raw, nil)
	if err != nil {
		return "", err
	}
	if file.Module == nil {
		return "", fmt.Errorf("%s has no module directive", path)
	}
	return file.Module.Mod.Path, nil
}

func collectViolations(modulePath string, root string) []violation {
	var violations []violation

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		normalized := filepath.ToSlash(path)
		parts := strings.Split(normalized, "/")
		if len(parts) < 4 || parts[0] != "contexts" {
			return nil
		}

		contextPrefix := fmt.Sprintf("%s/contexts/%s/%s", modulePath, parts[1], parts[2])
		violations = append(violations, validateFile(path, normalized, parts[3], modulePath, contextPrefix)...)
		return nil
	})

	return violations
}

func validateFile(path string, normalizedPath string, layer string, modulePath string, contextPrefix string) []violation {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		return []violation{{
			File: normalizedPath,
			Line: 1,
			Rule: "file must parse",
		}}
	}

	var violations []violation
	report := func(line int, importPath string, rule string) {
		violations = append(violations, violation{
			File:   normalizedPath,
			Line:   line,
			Import: importPath,
			Rule:   rule,
		})
	}

	for _, imp := range file.Imports {
		importPath := strings.Trim(imp.Path.Value, "\"")
		line := fset.Position(imp.Pos()).Line

		if hasPrefix(importPath, modulePath+"/contexts") && !hasPrefix(importPath, contextPrefix) {
			report(line, importPath, "cross-module imports are forbidden")
		}

		rule, ok := layerRules[layer]
		if !ok {
			continue
		}
		if strings.Contains(importPath, "/adapters/") {
			report(line, importPath, layer+" must not import adapters")
		}
		for _, root := range infrastructureRoots {
			if hasPrefix(importPath, modulePath+"/"+root) {
				report(line, importPath, layer+" must not import runtime infrastructure")
			}
		}
		if !isStdlib(modulePath, importPath) && !isAllowed(importPath, resolveAllowed(rule, modulePath, contextPrefix)) {
			report(line, importPath, layer+" import is outside explicit allowlist")
		}
	}

	return violations
}

// resolveAllowed expands rule entries: "@x" is relative to the module root,
// anything else to the owning context.
func resolveAllowed(rule layerRule, modulePath string, contextPrefix string) []string {
	prefixes := make([]string, 0, len(rule.allowed))
	for _, entry := range rule.allowed {
		if strings.HasPrefix(entry, "@") {
			prefixes = append(prefixes, modulePath+"/"+strings.TrimPrefix(entry, "@"))
			continue
		}
		prefixes = append(prefixes, contextPrefix+"/"+entry)
	}
	return prefixes
}

func hasPrefix(path string, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func isAllowed(importPath string, allowedPrefixes []string) bool {
	for _, p := range allowedPrefixes {
		if hasPrefix(importPath, p) {
			return true
		}
	}
	return false
}

func isStdlib(modulePath string, importPath string) bool {
	if hasPrefix(importPath, modulePath) {
		return false
	}
	first := importPath
	if idx := strings.Index(first, "/"); idx != -1 {
		first = first[:idx]
	}
	return !strings.Contains(first, ".")
}
