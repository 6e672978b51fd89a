package csswatch

import (
	"fmt"
	"os"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ImportedPartials returns the paths referenced by @import rules in the
// given CSS file, in source order. It is used for verbose reporting only;
// the compiler performs its own module resolution when bundling.
func ImportedPartials(path string) ([]string, error) {
	// #nosec G304 - path comes from the resolved entry file
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return parseImports(string(content)), nil
}

// parseImports tokenizes CSS content and collects the target of every
// top-level @import rule. Both string and url() forms are handled.
func parseImports(content string) []string {
	lexer := css.NewLexer(parse.NewInputString(content))

	var imports []string
	inImport := false
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal
			break
		}

		switch tt {
		case css.AtKeywordToken:
			inImport = string(text) == "@import"
		case css.StringToken:
			if inImport {
				imports = append(imports, unquote(string(text)))
				inImport = false
			}
		case css.URLToken:
			if inImport {
				imports = append(imports, unwrapURL(string(text)))
				inImport = false
			}
		case css.SemicolonToken:
			inImport = false
		}
	}
	return imports
}

// unquote strips the surrounding quotes from a CSS string token.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// unwrapURL strips the url( ... ) wrapper and any inner quotes.
func unwrapURL(s string) string {
	s = strings.TrimPrefix(s, "url(")
	s = strings.TrimSuffix(s, ")")
	return unquote(strings.TrimSpace(s))
}
