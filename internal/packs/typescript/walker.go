package typescript

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/kennyfrc/llmctx/internal/arena"
	"github.com/kennyfrc/llmctx/internal/codemap"
)

// memberKinds maps store member registrations to their codemap kinds.
var memberKinds = map[string]codemap.Kind{
	"action":      codemap.KindAction,
	"asyncAction": codemap.KindAsyncAction,
	"query":       codemap.KindQuery,
	"mutation":    codemap.KindMutation,
	"memo":        codemap.KindMemo,
}

// storeWalker scans the tree for the reactive-store call patterns the
// declarative queries cannot express: store factories, member registrations
// on a known store, and component definitions.
func storeWalker(root *sitter.Node, source []byte, file *codemap.File, a *arena.Arena) {
	w := &walker{source: source, file: file, arena: a, stores: map[string]bool{}}
	w.visit(root)
}

type walker struct {
	source []byte
	file   *codemap.File
	arena  *arena.Arena
	stores map[string]bool
}

func (w *walker) visit(n *sitter.Node) {
	if n.Kind() == "call_expression" {
		w.handleCall(n)
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if c := n.Child(i); c != nil {
			w.visit(c)
		}
	}
}

func (w *walker) handleCall(call *sitter.Node) {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return
	}
	switch fn.Kind() {
	case "identifier":
		switch fn.Utf8Text(w.source) {
		case "createStore", "defineStore":
			w.handleStore(call)
		case "defineComponent":
			w.handleComponent(call)
		}
	case "member_expression":
		w.handleMember(call, fn)
	}
}

// handleStore records the store under the name it was given, preferring the
// factory's string argument over the variable it is assigned to.
func (w *walker) handleStore(call *sitter.Node) {
	name := w.firstStringArg(call)
	if name == "" {
		name = w.assignedName(call)
	}
	if name == "" {
		return
	}
	w.stores[name] = true
	if varName := w.assignedName(call); varName != "" {
		w.stores[varName] = true
	}
	w.file.AddEntry(w.arena, codemap.Entry{Name: name, Kind: codemap.KindStore})
}

func (w *walker) handleMember(call, fn *sitter.Node) {
	object := fn.ChildByFieldName("object")
	property := fn.ChildByFieldName("property")
	if object == nil || property == nil || object.Kind() != "identifier" {
		return
	}
	kind, ok := memberKinds[property.Utf8Text(w.source)]
	if !ok {
		return
	}
	owner := object.Utf8Text(w.source)
	if !w.stores[owner] && !strings.HasSuffix(owner, "Store") {
		return
	}
	name := w.firstStringArg(call)
	if name == "" {
		return
	}
	w.file.AddEntry(w.arena, codemap.Entry{
		Name:      name,
		Signature: w.firstHandlerParams(call),
		Container: owner,
		Kind:      kind,
	})
}

func (w *walker) handleComponent(call *sitter.Node) {
	name := w.firstStringArg(call)
	if name == "" {
		name = w.assignedName(call)
	}
	if name == "" {
		return
	}
	w.file.AddEntry(w.arena, codemap.Entry{Name: name, Kind: codemap.KindComponent})
}

// assignedName returns the variable a call result is bound to, if any.
func (w *walker) assignedName(call *sitter.Node) string {
	parent := call.Parent()
	if parent == nil || parent.Kind() != "variable_declarator" {
		return ""
	}
	name := parent.ChildByFieldName("name")
	if name == nil || name.Kind() != "identifier" {
		return ""
	}
	return name.Utf8Text(w.source)
}

func (w *walker) firstStringArg(call *sitter.Node) string {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return ""
	}
	for i := uint(0); i < args.ChildCount(); i++ {
		c := args.Child(i)
		if c != nil && c.Kind() == "string" {
			return stripQuotes(c.Utf8Text(w.source))
		}
	}
	return ""
}

// firstHandlerParams returns the formal parameter list of the first function
// argument, which the report shows as the registration's signature.
func (w *walker) firstHandlerParams(call *sitter.Node) string {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return ""
	}
	for i := uint(0); i < args.ChildCount(); i++ {
		c := args.Child(i)
		if c == nil {
			continue
		}
		switch c.Kind() {
		case "arrow_function", "function_expression", "function":
			if params := c.ChildByFieldName("parameters"); params != nil {
				return params.Utf8Text(w.source)
			}
			return "()"
		}
	}
	return ""
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'' || first == '`') && last == first {
			return s[1 : len(s)-1]
		}
	}
	return s
}
