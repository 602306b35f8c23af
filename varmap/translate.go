package varmap

import (
	"sort"
	"strings"

	"github.com/grafter/graft/astnode"
)

// Translator applies a Map to the statement text spanned by one
// subtree. It accumulates MapLookupMissing identifiers instead of
// failing: per the error taxonomy, an unmapped identifier is
// informational, and translation proceeds with the name unchanged.
type Translator struct {
	Map     *Map
	Missing []string
}

func NewTranslator(m *Map) *Translator {
	return &Translator{Map: m}
}

func (tr *Translator) lookup(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	v, ok := tr.Map.Lookup(key)
	if !ok {
		tr.Missing = append(tr.Missing, key)
	}
	return v, ok
}

type candidate struct {
	from string
	to   string
}

// Translate rewrites every mapped identifier path occurring in text,
// which must be the exact source text of the subtree rooted at
// rootID. It descends the subtree collecting (from, to) candidates per
// the per-kind rules in the identifier translator's contract, then
// substitutes the longest matches first, protecting already-substituted
// spans so that a replacement text sharing characters with its source
// pattern is never re-translated (the "used-substitutions" discipline).
func (tr *Translator) Translate(tree *astnode.Tree, rootID int, text string) (string, error) {
	if _, err := tree.Node(rootID); err != nil {
		return text, err
	}

	var candidates []candidate
	err := tree.Walk(rootID, func(stack []astnode.Node) bool {
		n := stack[len(stack)-1]
		switch n.Kind {
		case astnode.VarDecl, astnode.ParmVarDecl, astnode.FieldDecl:
			if n.Identifier != "" {
				if to, ok := tr.lookup(n.Identifier); ok {
					candidates = append(candidates, candidate{from: n.Identifier, to: to})
				}
			}
			return true

		case astnode.DeclRefExpr:
			if n.Identifier == "" {
				return true
			}
			key := n.Identifier
			if n.RefType == string(astnode.FunctionDecl) {
				key += "("
			}
			if to, ok := tr.lookup(key); ok {
				candidates = append(candidates, candidate{from: n.Identifier, to: strings.TrimSuffix(to, "(")})
			}
			return true

		case astnode.Macro:
			if n.Value != "" {
				if to, ok := tr.lookup(n.Value); ok {
					candidates = append(candidates, candidate{from: n.Value, to: to})
				}
			}
			return true

		case astnode.GotoStmt:
			if n.Identifier != "" {
				if to, ok := tr.lookup(n.Identifier); ok {
					candidates = append(candidates, candidate{from: n.Identifier, to: to})
				}
			}
			return true

		case astnode.StringLiteral:
			noNL := strings.ReplaceAll(n.Value, "\n", "")
			if to, ok := tr.lookup(encodeLiteral(n.Value)); ok {
				candidates = append(candidates, candidate{from: noNL, to: to})
			}
			return true

		case astnode.MemberExpr:
			if path, ok := tr.memberPath(tree, n); ok {
				if to, ok := tr.lookup(path); ok {
					candidates = append(candidates, candidate{from: path, to: to})
				}
			}
			// The base identifier was already folded into path above;
			// don't also visit it as an independent DeclRefExpr.
			return false
		}
		return true
	})
	if err != nil {
		return text, err
	}

	sort.SliceStable(candidates, func(i, j int) bool { return len(candidates[i].from) > len(candidates[j].from) })

	data := []byte(text)
	protected := make([]bool, len(data))
	for _, c := range candidates {
		data, protected = substituteProtected(data, protected, c.from, c.to)
	}
	return string(data), nil
}

// memberPath synthesizes a MemberExpr's access path by recursing into
// its base, per the identifier translator's MemberExpr rule.
func (tr *Translator) memberPath(tree *astnode.Tree, n astnode.Node) (string, bool) {
	if len(n.Children) == 0 {
		return "", false
	}
	base, err := tree.Node(n.Children[0])
	if err != nil {
		return "", false
	}
	baseStr, ok := tr.baseExprPath(tree, base)
	if !ok {
		return "", false
	}
	member := memberName(n)
	if member == "" {
		return "", false
	}
	return baseStr + memberSep(n.IsArrow) + member, true
}

func (tr *Translator) baseExprPath(tree *astnode.Tree, n astnode.Node) (string, bool) {
	switch n.Kind {
	case astnode.MemberExpr:
		return tr.memberPath(tree, n)
	case astnode.ArraySubscriptExpr:
		return tr.arraySubscriptPath(tree, n)
	case astnode.DeclRefExpr:
		return n.Identifier, n.Identifier != ""
	case astnode.ParenExpr:
		if len(n.Children) == 1 {
			inner, err := tree.Node(n.Children[0])
			if err == nil {
				return tr.baseExprPath(tree, inner)
			}
		}
	}
	if n.Identifier != "" {
		return n.Identifier, true
	}
	return "", false
}

func (tr *Translator) arraySubscriptPath(tree *astnode.Tree, n astnode.Node) (string, bool) {
	if len(n.Children) < 2 {
		return "", false
	}
	base, err := tree.Node(n.Children[0])
	if err != nil {
		return "", false
	}
	index, err := tree.Node(n.Children[1])
	if err != nil {
		return "", false
	}
	baseStr, ok := tr.baseExprPath(tree, base)
	if !ok {
		return "", false
	}
	idxKey, ok := tr.baseExprPath(tree, index)
	if !ok {
		idxKey = index.Value
	}
	idxText := idxKey
	if to, ok := tr.lookup(idxKey); ok {
		idxText = to
	}
	return baseStr + "[" + idxText + "]", true
}

// memberName extracts the field/method name a MemberExpr refers to.
// Nodes carry it as Identifier when the front end supplies one;
// otherwise it's recovered from a "Type::Field" style Value.
func memberName(n astnode.Node) string {
	if n.Identifier != "" {
		return n.Identifier
	}
	if idx := strings.LastIndex(n.Value, "::"); idx >= 0 {
		return n.Value[idx+2:]
	}
	return n.Value
}

// substituteProtected replaces every non-overlapping occurrence of
// from in data with to, skipping any occurrence that overlaps a byte
// already marked protected, and marking every byte of each inserted
// to as protected in the result. This is what keeps repeated
// application of overlapping candidates (and re-running Translate on
// already-translated text) idempotent.
func substituteProtected(data []byte, protected []bool, from, to string) ([]byte, []bool) {
	if from == "" {
		return data, protected
	}
	fb := []byte(from)
	tb := []byte(to)
	var outData []byte
	var outProt []bool
	i := 0
	for i < len(data) {
		if i+len(fb) <= len(data) && string(data[i:i+len(fb)]) == from && !anyProtected(protected[i:i+len(fb)]) {
			outData = append(outData, tb...)
			for range tb {
				outProt = append(outProt, true)
			}
			i += len(fb)
			continue
		}
		outData = append(outData, data[i])
		outProt = append(outProt, protected[i])
		i++
	}
	return outData, outProt
}

func anyProtected(p []bool) bool {
	for _, v := range p {
		if v {
			return true
		}
	}
	return false
}
