package langsrc

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/colisc/colis/internal/ast"
)

// Parse reads a full Language source into its AST: zero or more
// top-level "function NAME { ... }" declarations followed by a single
// instruction. Whether a bare call resolves to ICallUtility or
// ICallFunction is decided here, at parse time, by whether the callee
// name was declared with "function" anywhere in this same source
// (spec.md treats the distinction as a static one the caller of the
// interpreter already knows).
func Parse(src string) (ast.Program, error) {
	toks, err := lex(src)
	if err != nil {
		return ast.Program{}, err
	}
	p := &parser{toks: toks, funcNames: prescanFuncNames(toks)}
	prog, err := p.parseProgram()
	if err != nil {
		return ast.Program{}, err
	}
	return prog, nil
}

func prescanFuncNames(toks []token) map[string]bool {
	names := map[string]bool{}
	for i := 0; i+1 < len(toks); i++ {
		if toks[i].kind == tokWord && toks[i].text == "function" && toks[i+1].kind == tokWord {
			names[toks[i+1].text] = true
		}
	}
	return names
}

type parser struct {
	toks      []token
	pos       int
	funcNames map[string]bool
}

func (p *parser) cur() token {
	return p.toks[p.pos]
}

func (p *parser) peekAt(off int) token {
	i := p.pos + off
	if i >= len(p.toks) {
		return token{kind: tokEOF}
	}
	return p.toks[i]
}

func (p *parser) advance() token {
	t := p.cur()
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) peekWord(text string) bool {
	t := p.cur()
	return t.kind == tokWord && t.text == text
}

func (p *parser) expectWord(text string) error {
	if !p.peekWord(text) {
		return fmt.Errorf("langsrc: expected %q at offset %d, found %q", text, p.cur().pos, p.cur().text)
	}
	p.advance()
	return nil
}

func (p *parser) skipSemis() {
	for p.cur().kind == tokSemi {
		p.advance()
	}
}

func (p *parser) parseProgram() (ast.Program, error) {
	var funcs []ast.FunctionDef
	p.skipSemis()
	for p.peekWord("function") {
		p.advance()
		nameTok := p.cur()
		if nameTok.kind != tokWord {
			return ast.Program{}, fmt.Errorf("langsrc: expected function name at offset %d", nameTok.pos)
		}
		p.advance()
		if err := p.expectBrace(tokLBrace, "{"); err != nil {
			return ast.Program{}, err
		}
		body, err := p.parseSequence(nil, map[tokenKind]bool{tokRBrace: true})
		if err != nil {
			return ast.Program{}, err
		}
		if err := p.expectBrace(tokRBrace, "}"); err != nil {
			return ast.Program{}, err
		}
		funcs = append(funcs, ast.FunctionDef{Ident: ast.Ident(nameTok.text), Body: body})
		p.skipSemis()
	}

	main, err := p.parseSequence(nil, map[tokenKind]bool{tokEOF: true})
	if err != nil {
		return ast.Program{}, err
	}
	return ast.Program{Functions: funcs, Instruction: main}, nil
}

func (p *parser) expectBrace(k tokenKind, lit string) error {
	if p.cur().kind != k {
		return fmt.Errorf("langsrc: expected %q at offset %d", lit, p.cur().pos)
	}
	p.advance()
	return nil
}

// atTerminator reports whether the current token ends the sequence
// being parsed: a structural token kind in kinds, a keyword in words,
// or end of input.
func (p *parser) atTerminator(words map[string]bool, kinds map[tokenKind]bool) bool {
	t := p.cur()
	if t.kind == tokEOF {
		return true
	}
	if kinds[t.kind] {
		return true
	}
	if t.kind == tokWord && words[t.text] {
		return true
	}
	return false
}

// parseSequence parses "simple (';' simple)*", right-associating into
// ISequence, stopping at a terminator.
func (p *parser) parseSequence(words map[string]bool, kinds map[tokenKind]bool) (ast.Instruction, error) {
	p.skipSemis()
	if p.atTerminator(words, kinds) {
		return ast.INoop{}, nil
	}
	first, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	p.skipSemis()
	if p.atTerminator(words, kinds) {
		return first, nil
	}
	rest, err := p.parseSequence(words, kinds)
	if err != nil {
		return nil, err
	}
	return ast.ISequence{First: first, Second: rest}, nil
}

func (p *parser) parsePipe() (ast.Instruction, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur().kind == tokPipe {
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ast.IPipe{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (ast.Instruction, error) {
	if p.cur().kind == tokBang {
		p.advance()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.INot{Inner: inner}, nil
	}
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.cur().kind == tokGT {
		p.advance()
		if !p.peekWord("/dev/null") {
			return nil, fmt.Errorf("langsrc: expected /dev/null after '>' at offset %d", p.cur().pos)
		}
		p.advance()
		return ast.INoOutput{Inner: atom}, nil
	}
	return atom, nil
}

var callStop = map[tokenKind]bool{
	tokPipe: true, tokSemi: true, tokRParen: true, tokRBrace: true,
	tokGT: true, tokEOF: true,
}

func (p *parser) parseAtom() (ast.Instruction, error) {
	t := p.cur()
	switch t.kind {
	case tokLParen:
		p.advance()
		inner, err := p.parseSequence(nil, map[tokenKind]bool{tokRParen: true})
		if err != nil {
			return nil, err
		}
		if err := p.expectBrace(tokRParen, ")"); err != nil {
			return nil, err
		}
		return ast.ISubshell{Inner: inner}, nil

	case tokWord:
		switch t.text {
		case "if":
			return p.parseIf()
		case "while":
			return p.parseWhile()
		case "for":
			return p.parseFor()
		case "exit":
			p.advance()
			code, err := p.parseReturnCode()
			if err != nil {
				return nil, err
			}
			return ast.IExit{Code: code}, nil
		case "return":
			p.advance()
			code, err := p.parseReturnCode()
			if err != nil {
				return nil, err
			}
			return ast.IReturn{Code: code}, nil
		case "shift":
			p.advance()
			n := 0
			if p.cur().kind == tokWord {
				v, err := strconv.Atoi(p.cur().text)
				if err == nil {
					n = v
					p.advance()
				}
			}
			return ast.IShift{N: n}, nil
		default:
			if p.peekAt(1).kind == tokAssign {
				ident := t.text
				p.advance()
				p.advance()
				exprTok := p.cur()
				if exprTok.kind != tokWord && exprTok.kind != tokString {
					return nil, fmt.Errorf("langsrc: expected expression after ':=' at offset %d", exprTok.pos)
				}
				p.advance()
				expr, err := parseInterpolated(exprTok.text)
				if err != nil {
					return nil, err
				}
				return ast.IAssignment{Ident: ast.Ident(ident), Expr: expr}, nil
			}
			return p.parseCall()
		}

	default:
		return nil, fmt.Errorf("langsrc: unexpected token at offset %d", t.pos)
	}
}

func (p *parser) parseCall() (ast.Instruction, error) {
	nameTok := p.advance()
	args, err := p.parseListExpr(nil, callStop)
	if err != nil {
		return nil, err
	}
	if p.funcNames[nameTok.text] {
		return ast.ICallFunction{Ident: ast.Ident(nameTok.text), Args: args}, nil
	}
	return ast.ICallUtility{Ident: ast.Ident(nameTok.text), Args: args}, nil
}

func (p *parser) parseReturnCode() (ast.ReturnCode, error) {
	switch {
	case p.peekWord("success"):
		p.advance()
		return ast.RSuccess, nil
	case p.peekWord("failure"):
		p.advance()
		return ast.RFailure, nil
	default:
		return ast.RPrevious, nil
	}
}

func (p *parser) parseIf() (ast.Instruction, error) {
	p.advance() // "if"
	cond, err := p.parseSequence(map[string]bool{"then": true}, nil)
	if err != nil {
		return nil, err
	}
	if err := p.expectWord("then"); err != nil {
		return nil, err
	}
	thenI, err := p.parseSequence(map[string]bool{"else": true, "fi": true}, nil)
	if err != nil {
		return nil, err
	}
	var elseI ast.Instruction = ast.INoop{}
	if p.peekWord("else") {
		p.advance()
		elseI, err = p.parseSequence(map[string]bool{"fi": true}, nil)
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectWord("fi"); err != nil {
		return nil, err
	}
	return ast.IIf{Cond: cond, Then: thenI, Else: elseI}, nil
}

func (p *parser) parseWhile() (ast.Instruction, error) {
	p.advance() // "while"
	cond, err := p.parseSequence(map[string]bool{"do": true}, nil)
	if err != nil {
		return nil, err
	}
	if err := p.expectWord("do"); err != nil {
		return nil, err
	}
	body, err := p.parseSequence(map[string]bool{"done": true}, nil)
	if err != nil {
		return nil, err
	}
	if err := p.expectWord("done"); err != nil {
		return nil, err
	}
	return ast.IWhile{Cond: cond, Body: body}, nil
}

func (p *parser) parseFor() (ast.Instruction, error) {
	p.advance() // "for"
	identTok := p.cur()
	if identTok.kind != tokWord {
		return nil, fmt.Errorf("langsrc: expected identifier after 'for' at offset %d", identTok.pos)
	}
	p.advance()
	if err := p.expectWord("in"); err != nil {
		return nil, err
	}
	list, err := p.parseListExpr(map[string]bool{"do": true}, nil)
	if err != nil {
		return nil, err
	}
	p.skipSemis()
	if err := p.expectWord("do"); err != nil {
		return nil, err
	}
	body, err := p.parseSequence(map[string]bool{"done": true}, nil)
	if err != nil {
		return nil, err
	}
	if err := p.expectWord("done"); err != nil {
		return nil, err
	}
	return ast.IForeach{Ident: ast.Ident(identTok.text), List: list, Body: body}, nil
}

func (p *parser) parseListExpr(words map[string]bool, kinds map[tokenKind]bool) (ast.ListExpr, error) {
	var items ast.ListExpr
	for {
		t := p.cur()
		if t.kind == tokEOF {
			break
		}
		if kinds[t.kind] {
			break
		}
		if t.kind == tokWord && words[t.text] {
			break
		}
		if t.kind != tokWord && t.kind != tokString {
			break
		}
		p.advance()
		expr, err := parseInterpolated(t.text)
		if err != nil {
			return nil, err
		}
		split := ast.Split
		if t.kind == tokString {
			split = ast.DontSplit
		}
		items = append(items, ast.ListItem{Expr: expr, Split: split})
	}
	return items, nil
}

// parseInterpolated scans a single lexed word (or string) for "$name",
// "$N", and "$(...)" occurrences, building an SConcat chain of literal
// and substituted pieces in order (spec.md §4.3/§4.4: a list item's
// expression may itself be a concatenation).
func parseInterpolated(text string) (ast.StringExpr, error) {
	runes := []rune(text)
	var expr ast.StringExpr
	var lit []rune

	appendPart := func(part ast.StringExpr) {
		if expr == nil {
			expr = part
			return
		}
		expr = ast.SConcat{Left: expr, Right: part}
	}
	flushLit := func() {
		if len(lit) > 0 {
			appendPart(ast.SLiteral{Value: string(lit)})
			lit = lit[:0]
		}
	}

	i := 0
	for i < len(runes) {
		r := runes[i]
		if r == '$' && i+1 < len(runes) {
			next := runes[i+1]
			switch {
			case next == '(':
				depth := 1
				j := i + 2
				for j < len(runes) && depth > 0 {
					switch runes[j] {
					case '(':
						depth++
					case ')':
						depth--
					}
					j++
				}
				if depth != 0 {
					return nil, fmt.Errorf("langsrc: unterminated $(...) in %q", text)
				}
				flushLit()
				inner := string(runes[i+2 : j-1])
				subProg, err := Parse(inner)
				if err != nil {
					return nil, err
				}
				appendPart(ast.SSubshell{Inner: subProg.Instruction})
				i = j
				continue
			case next == '_' || unicode.IsLetter(next):
				flushLit()
				j := i + 1
				for j < len(runes) && (runes[j] == '_' || unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j])) {
					j++
				}
				appendPart(ast.SVariable{Ident: ast.Ident(string(runes[i+1 : j]))})
				i = j
				continue
			case unicode.IsDigit(next):
				flushLit()
				j := i + 1
				for j < len(runes) && unicode.IsDigit(runes[j]) {
					j++
				}
				n, _ := strconv.Atoi(string(runes[i+1 : j]))
				appendPart(ast.SArgument{N: n})
				i = j
				continue
			}
		}
		lit = append(lit, r)
		i++
	}
	flushLit()
	if expr == nil {
		expr = ast.SLiteral{Value: ""}
	}
	return expr, nil
}
