package check

import "github.com/vane-lang/vane/internal/ast"

// allPathsReturn reports whether every control-flow path through stmts ends
// in a Return. Grounded on a CFG pass kept elsewhere in this retrieval pack
// (parser/cfg/cfg_node.py's BasicBlock graph, parser/cfg/cfg_visitor.py's
// builder, parser/cfg/return_check.py's recursive walk over it; see
// SPEC_FULL.md §12), restated here as a direct structural recursion over
// vane's statement list instead of an explicit block graph — vane's control
// flow (If/While, no match arms) is simple enough that building a graph
// just to walk it back down would be pure overhead.
//
// A While body is never credited: it may run zero times, so nothing inside
// it discharges the enclosing function's obligation. An If only discharges
// it when it has an else and every branch (plus the else) discharges it in
// turn — a dangling elif chain with no else always leaves a fall-through
// path.
func allPathsReturn(stmts []ast.Statement) bool {
	for _, s := range stmts {
		if stmtReturns(s) {
			return true
		}
	}
	return false
}

func stmtReturns(s ast.Statement) bool {
	switch n := s.(type) {
	case *ast.Return:
		return true
	case *ast.If:
		if n.Else == nil {
			return false
		}
		for _, br := range n.Branches {
			if !allPathsReturn(br.Body.Statements) {
				return false
			}
		}
		return allPathsReturn(n.Else.Statements)
	case *ast.BlockStatement:
		return allPathsReturn(n.Block.Statements)
	default:
		return false
	}
}
