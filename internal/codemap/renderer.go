package codemap

import (
	"fmt"
	"strings"
)

// Report delimiters consumed by the surrounding CLI.
const (
	reportOpen  = "<code_map>"
	reportClose = "</code_map>"
)

// funcNameWidth is the fixed column the signature starts at in Functions
// sections.
const funcNameWidth = 25

// Render serializes the codemap into its textual report. The pass is
// deterministic: files appear in insertion order, and within a file the
// three-tier ordering (classes with constructor-first methods, then
// functions, then types) is a behavioral contract. Files with zero entries
// are skipped; domain-specific kinds render after the base tiers so a pack
// can extend Kind without touching this code.
func Render(c *Codemap) string {
	var sb strings.Builder
	sb.WriteString(reportOpen)
	sb.WriteString("\n")

	wroteFile := false
	for _, f := range c.Files {
		if f.Len() == 0 {
			continue
		}
		if wroteFile {
			sb.WriteString("\n")
		}
		wroteFile = true
		renderFile(&sb, f)
	}

	sb.WriteString(reportClose)
	sb.WriteString("\n")
	return sb.String()
}

func renderFile(sb *strings.Builder, f *File) {
	fmt.Fprintf(sb, "[%s]\n", f.Path)
	entries := f.Entries()

	wroteSection := renderClasses(sb, entries, false)
	wroteSection = renderFunctions(sb, entries, wroteSection) || wroteSection
	wroteSection = renderTypes(sb, entries, wroteSection) || wroteSection
	renderDomainKinds(sb, entries, wroteSection)
}

// classNames returns the distinct class names in first-seen order, drawing
// from both Class entries and the containers of Method entries.
func classNames(entries []Entry) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, e := range entries {
		switch e.Kind {
		case KindClass:
			add(e.Name)
		case KindMethod:
			add(e.Container)
		}
	}
	return names
}

func renderClasses(sb *strings.Builder, entries []Entry, sectionBefore bool) bool {
	names := classNames(entries)
	if len(names) == 0 {
		return false
	}
	if sectionBefore {
		sb.WriteString("\n")
	}
	sb.WriteString("Classes:\n")
	for _, class := range names {
		fmt.Fprintf(sb, "  %s:\n", class)
		methods := methodsOf(entries, class)
		if len(methods) == 0 {
			continue
		}
		sb.WriteString("    methods:\n")
		for _, m := range methods {
			fmt.Fprintf(sb, "      - %s%s\n", m.Name, m.Signature)
		}
	}
	return true
}

// constructorNames covers the constructor spellings of the supported
// grammars.
var constructorNames = map[string]bool{
	"constructor": true, "__init__": true, "__construct": true,
	"initialize": true, "new": true,
}

// methodsOf returns the methods of one container, constructor first, the
// rest in original insertion order.
func methodsOf(entries []Entry, container string) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Kind == KindMethod && e.Container == container && constructorNames[e.Name] {
			out = append(out, e)
		}
	}
	for _, e := range entries {
		if e.Kind == KindMethod && e.Container == container && !constructorNames[e.Name] {
			out = append(out, e)
		}
	}
	return out
}

func renderFunctions(sb *strings.Builder, entries []Entry, sectionBefore bool) bool {
	wrote := false
	for _, e := range entries {
		if e.Kind != KindFunction {
			continue
		}
		if !wrote {
			if sectionBefore {
				sb.WriteString("\n")
			}
			sb.WriteString("Functions:\n")
			wrote = true
		}
		fmt.Fprintf(sb, "  %-*s%s", funcNameWidth, e.Name, e.Signature)
		if e.ReturnType != "" && e.ReturnType != DefaultReturnType {
			fmt.Fprintf(sb, " -> %s", e.ReturnType)
		}
		sb.WriteString("\n")
	}
	return wrote
}

func renderTypes(sb *strings.Builder, entries []Entry, sectionBefore bool) bool {
	wrote := false
	for _, e := range entries {
		if e.Kind != KindType {
			continue
		}
		if !wrote {
			if sectionBefore {
				sb.WriteString("\n")
			}
			sb.WriteString("Types:\n")
			wrote = true
		}
		fmt.Fprintf(sb, "  %s\n", e.Name)
	}
	return wrote
}

// sectionLabels maps pack-contributed kinds to their report headers. A kind
// missing from this table falls back to a generic header rather than being
// dropped.
var sectionLabels = map[Kind]string{
	KindStore:       "Stores",
	KindAction:      "Actions",
	KindAsyncAction: "Async Actions",
	KindQuery:       "Queries",
	KindMutation:    "Mutations",
	KindMemo:        "Memos",
	KindComponent:   "Components",
}

func renderDomainKinds(sb *strings.Builder, entries []Entry, sectionBefore bool) {
	var order []Kind
	seen := make(map[Kind]bool)
	for _, e := range entries {
		switch e.Kind {
		case KindFunction, KindClass, KindMethod, KindType:
			continue
		}
		if !seen[e.Kind] {
			seen[e.Kind] = true
			order = append(order, e.Kind)
		}
	}
	for _, k := range order {
		if sectionBefore {
			sb.WriteString("\n")
		}
		sectionBefore = true
		label, ok := sectionLabels[k]
		if !ok {
			label = "Other"
		}
		fmt.Fprintf(sb, "%s:\n", label)
		for _, e := range entries {
			if e.Kind != k {
				continue
			}
			if e.Container != "" {
				fmt.Fprintf(sb, "  %s.%s%s\n", e.Container, e.Name, e.Signature)
			} else {
				fmt.Fprintf(sb, "  %s%s\n", e.Name, e.Signature)
			}
		}
	}
}
