// Package fromshell translates a parsed POSIX shell file
// (mvdan.cc/sh/v3/syntax.File) into the Language's own ast.Instruction
// tree, so the CLI can run real shell scripts — including Debian
// maintainer-script-shaped ones — through the engine without a second,
// shell-specific evaluator. This is intentionally a partial translator
// (spec.md §1 scopes a general shell-to-Language translation out):
// constructs with no Language equivalent return a translation error
// rather than a silent approximation.
package fromshell

import (
	"fmt"
	"strconv"

	"mvdan.cc/sh/v3/syntax"

	"github.com/colisc/colis/internal/ast"
)

// Translate converts a parsed shell file into a Language program.
func Translate(f *syntax.File) (ast.Program, error) {
	t := &translator{funcNames: map[string]bool{}}
	for _, st := range f.Stmts {
		if fd, ok := st.Cmd.(*syntax.FuncDecl); ok {
			t.funcNames[fd.Name.Value] = true
		}
	}

	var funcs []ast.FunctionDef
	var mainStmts []*syntax.Stmt
	for _, st := range f.Stmts {
		if fd, ok := st.Cmd.(*syntax.FuncDecl); ok {
			body, err := t.translateStmt(fd.Body)
			if err != nil {
				return ast.Program{}, fmt.Errorf("function %s: %w", fd.Name.Value, err)
			}
			funcs = append(funcs, ast.FunctionDef{Ident: ast.Ident(fd.Name.Value), Body: body})
			continue
		}
		mainStmts = append(mainStmts, st)
	}

	main, err := t.translateStmts(mainStmts)
	if err != nil {
		return ast.Program{}, err
	}
	return ast.Program{Functions: funcs, Instruction: main}, nil
}

// translator carries the set of declared function names, needed to
// decide whether a CallExpr becomes ICallUtility or ICallFunction.
type translator struct {
	funcNames map[string]bool
}

func (t *translator) translateStmts(stmts []*syntax.Stmt) (ast.Instruction, error) {
	var result ast.Instruction = ast.INoop{}
	first := true
	for _, st := range stmts {
		ins, err := t.translateStmt(st)
		if err != nil {
			return nil, err
		}
		if first {
			result = ins
			first = false
			continue
		}
		result = ast.ISequence{First: result, Second: ins}
	}
	return result, nil
}

func (t *translator) translateStmt(st *syntax.Stmt) (ast.Instruction, error) {
	if st.Background {
		return nil, fmt.Errorf("background commands ('&') are not supported")
	}
	ins, err := t.translateCommand(st.Cmd)
	if err != nil {
		return nil, err
	}
	if st.Negated {
		ins = ast.INot{Inner: ins}
	}
	switch len(st.Redirs) {
	case 0:
		return ins, nil
	case 1:
		rd := st.Redirs[0]
		if rd.Op == syntax.RdrOut {
			lit, _, err := t.translateWord(rd.Word)
			if err == nil {
				if l, ok := lit.(ast.SLiteral); ok && l.Value == "/dev/null" {
					return ast.INoOutput{Inner: ins}, nil
				}
			}
		}
		return nil, fmt.Errorf("only '> /dev/null' redirection is supported")
	default:
		return nil, fmt.Errorf("only a single redirection is supported")
	}
}

func (t *translator) translateCommand(cmd syntax.Command) (ast.Instruction, error) {
	switch x := cmd.(type) {
	case *syntax.CallExpr:
		return t.translateCallExpr(x)

	case *syntax.Block:
		return t.translateStmts(x.Stmts)

	case *syntax.Subshell:
		inner, err := t.translateStmts(x.Stmts)
		if err != nil {
			return nil, err
		}
		return ast.ISubshell{Inner: inner}, nil

	case *syntax.BinaryCmd:
		left, err := t.translateStmt(x.X)
		if err != nil {
			return nil, err
		}
		right, err := t.translateStmt(x.Y)
		if err != nil {
			return nil, err
		}
		switch x.Op {
		case syntax.Pipe, syntax.PipeAll:
			return ast.IPipe{Left: left, Right: right}, nil
		case syntax.AndStmt:
			return ast.IIf{Cond: left, Then: right, Else: ast.INoop{}}, nil
		case syntax.OrStmt:
			return ast.IIf{Cond: left, Then: ast.INoop{}, Else: right}, nil
		default:
			return nil, fmt.Errorf("unsupported binary command operator %v", x.Op)
		}

	case *syntax.IfClause:
		return t.translateIf(x)

	case *syntax.WhileClause:
		if x.Until {
			return nil, fmt.Errorf("'until' loops are not supported")
		}
		cond, err := t.translateStmts(x.Cond)
		if err != nil {
			return nil, err
		}
		body, err := t.translateStmts(x.DoStmts)
		if err != nil {
			return nil, err
		}
		return ast.IWhile{Cond: cond, Body: body}, nil

	case *syntax.ForClause:
		wi, ok := x.Loop.(*syntax.WordIter)
		if !ok {
			return nil, fmt.Errorf("C-style for loops are not supported")
		}
		list, err := t.translateWords(wi.Items)
		if err != nil {
			return nil, err
		}
		body, err := t.translateStmts(x.DoStmts)
		if err != nil {
			return nil, err
		}
		return ast.IForeach{Ident: ast.Ident(wi.Name.Value), List: list, Body: body}, nil

	case *syntax.FuncDecl:
		return ast.INoop{}, nil

	default:
		return nil, fmt.Errorf("unsupported shell construct %T", cmd)
	}
}

func (t *translator) translateIf(x *syntax.IfClause) (ast.Instruction, error) {
	cond, err := t.translateStmts(x.Cond)
	if err != nil {
		return nil, err
	}
	then, err := t.translateStmts(x.ThenStmts)
	if err != nil {
		return nil, err
	}
	var elseIns ast.Instruction = ast.INoop{}
	if x.Else != nil {
		if x.Else.If.IsValid() {
			elseIns, err = t.translateIf(x.Else)
		} else {
			elseIns, err = t.translateStmts(x.Else.ThenStmts)
		}
		if err != nil {
			return nil, err
		}
	}
	return ast.IIf{Cond: cond, Then: then, Else: elseIns}, nil
}

func (t *translator) translateCallExpr(x *syntax.CallExpr) (ast.Instruction, error) {
	if len(x.Args) == 0 {
		return t.translateBareAssigns(x)
	}
	if len(x.Assigns) > 0 {
		return nil, fmt.Errorf("inline variable assignments on a command are not supported")
	}

	nameExpr, _, err := t.translateWord(x.Args[0])
	if err != nil {
		return nil, err
	}
	lit, ok := nameExpr.(ast.SLiteral)
	if !ok {
		return nil, fmt.Errorf("dynamic or substituted command names are not supported")
	}

	args, err := t.translateWords(x.Args[1:])
	if err != nil {
		return nil, err
	}
	ident := ast.Ident(lit.Value)
	if t.funcNames[lit.Value] {
		return ast.ICallFunction{Ident: ident, Args: args}, nil
	}
	return ast.ICallUtility{Ident: ident, Args: args}, nil
}

func (t *translator) translateBareAssigns(x *syntax.CallExpr) (ast.Instruction, error) {
	var result ast.Instruction = ast.INoop{}
	first := true
	for _, as := range x.Assigns {
		expr, err := t.translateAssign(as)
		if err != nil {
			return nil, err
		}
		a := ast.IAssignment{Ident: ast.Ident(as.Name.Value), Expr: expr}
		if first {
			result = a
			first = false
			continue
		}
		result = ast.ISequence{First: result, Second: a}
	}
	return result, nil
}

func (t *translator) translateAssign(as *syntax.Assign) (ast.StringExpr, error) {
	if as.Array != nil || as.Index != nil {
		return nil, fmt.Errorf("array assignments are not supported")
	}
	if as.Value == nil {
		return ast.SLiteral{Value: ""}, nil
	}
	expr, _, err := t.translateWord(as.Value)
	return expr, err
}

func (t *translator) translateWords(words []*syntax.Word) (ast.ListExpr, error) {
	items := make(ast.ListExpr, 0, len(words))
	for _, w := range words {
		expr, split, err := t.translateWord(w)
		if err != nil {
			return nil, err
		}
		items = append(items, ast.ListItem{Expr: expr, Split: split})
	}
	return items, nil
}

// translateWord converts a single shell word into a string expression
// and a field-splitting flag. A word is DontSplit if any of its parts
// were quoted; this is a per-word approximation of POSIX's per-character
// quoting, adequate for the straight-line scripts this translator
// targets.
func (t *translator) translateWord(w *syntax.Word) (ast.StringExpr, ast.SplitFlag, error) {
	var expr ast.StringExpr
	quoted := false
	for _, part := range w.Parts {
		sub, partQuoted, err := t.translatePart(part)
		if err != nil {
			return nil, ast.Split, err
		}
		quoted = quoted || partQuoted
		if expr == nil {
			expr = sub
			continue
		}
		expr = ast.SConcat{Left: expr, Right: sub}
	}
	if expr == nil {
		expr = ast.SLiteral{Value: ""}
	}
	split := ast.Split
	if quoted {
		split = ast.DontSplit
	}
	return expr, split, nil
}

func (t *translator) translatePart(part syntax.WordPart) (ast.StringExpr, bool, error) {
	switch v := part.(type) {
	case *syntax.Lit:
		return ast.SLiteral{Value: v.Value}, false, nil

	case *syntax.SglQuoted:
		return ast.SLiteral{Value: v.Value}, true, nil

	case *syntax.DblQuoted:
		var expr ast.StringExpr
		for _, p := range v.Parts {
			sub, _, err := t.translatePart(p)
			if err != nil {
				return nil, true, err
			}
			if expr == nil {
				expr = sub
				continue
			}
			expr = ast.SConcat{Left: expr, Right: sub}
		}
		if expr == nil {
			expr = ast.SLiteral{Value: ""}
		}
		return expr, true, nil

	case *syntax.ParamExp:
		if v.Excl || v.Length || v.Index != nil || v.Slice != nil || v.Repl != nil || v.Exp != nil || v.Names != 0 {
			return nil, false, fmt.Errorf("unsupported parameter expansion form for $%s", paramName(v))
		}
		name := paramName(v)
		if n, err := strconv.Atoi(name); err == nil {
			return ast.SArgument{N: n}, false, nil
		}
		if name == "@" || name == "*" {
			return nil, false, fmt.Errorf("$@/$* are not supported; reference positional arguments individually")
		}
		return ast.SVariable{Ident: ast.Ident(name)}, false, nil

	case *syntax.CmdSubst:
		inner, err := t.translateStmts(v.Stmts)
		if err != nil {
			return nil, false, err
		}
		return ast.SSubshell{Inner: inner}, false, nil

	default:
		return nil, false, fmt.Errorf("unsupported word part %T", part)
	}
}

func paramName(v *syntax.ParamExp) string {
	if v.Param == nil {
		return ""
	}
	return v.Param.Value
}
