package packs

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/kennyfrc/llmctx/internal/codemap"
)

// Captures are interpreted by naming convention:
//
//	*.name       entity display name (quotes/sigils stripped)
//	*.params     signature text, verbatim
//	*.return     return-type label
//	*.container  enclosing scope; also parent.class and parent.module.
//	             Presence of any container capture marks the match scoped.
//
// The kind is inferred from the components of the remaining capture names,
// highest precedence wins: class > type > method/function. A method-family
// capture resolves to Method only when the match is scoped, else Function.
func classifyMatch(m *sitter.QueryMatch, names []string, source []byte) (codemap.Entry, bool) {
	var name, params, container, ret string
	var hasName, scoped bool
	var sawClass, sawType, sawMethod, sawFunction bool

	for _, c := range m.Captures {
		cn := names[c.Index]
		text := c.Node.Utf8Text(source)

		if isContainerCapture(cn) {
			container = stripLiteral(text)
			scoped = true
			continue
		}

		switch {
		case strings.HasSuffix(cn, ".name"):
			name = stripLiteral(text)
			hasName = true
		case strings.HasSuffix(cn, ".params"):
			params = text
		case strings.HasSuffix(cn, ".return"):
			ret = cleanReturnType(text)
		}

		for _, part := range strings.Split(cn, ".") {
			switch part {
			case "class":
				sawClass = true
			case "type":
				sawType = true
			case "method":
				sawMethod = true
			case "function":
				sawFunction = true
			}
		}
	}

	if !hasName {
		return codemap.Entry{}, false
	}

	kind := codemap.KindFunction
	switch {
	case sawClass:
		kind = codemap.KindClass
	case sawType:
		kind = codemap.KindType
	case sawMethod:
		if scoped {
			kind = codemap.KindMethod
		} else {
			kind = codemap.KindFunction
		}
	case sawFunction:
		kind = codemap.KindFunction
	}

	return codemap.Entry{
		Name:       name,
		Signature:  params,
		ReturnType: ret,
		Container:  container,
		Kind:       kind,
	}, true
}

func isContainerCapture(cn string) bool {
	return strings.HasSuffix(cn, ".container") || cn == "parent.class" || cn == "parent.module"
}

// stripLiteral removes the surrounding quote or sigil from quoted and
// symbol-literal captures so the bare identifier is stored.
func stripLiteral(s string) string {
	for len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'' || first == '`') && last == first {
			s = s[1 : len(s)-1]
			continue
		}
		break
	}
	s = strings.TrimPrefix(s, ":")
	return s
}

// cleanReturnType normalizes grammar-specific return annotations such as
// ": number" or "-> int" to the bare type label.
func cleanReturnType(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "->")
	s = strings.TrimPrefix(s, ":")
	return strings.TrimSpace(s)
}
