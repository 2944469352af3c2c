package compiler

import "github.com/chip8lang/chippyvm/internal/token"

// getRule returns the prefix/infix compile functions and binding
// precedence associated with a token kind. Tokens with no rule panic —
// they can only ever appear somewhere compilePrecedence does not expect
// them, which is itself a malformed-source condition.
func (c *Compiler) getRule(t token.Token) rule {
	switch t.Kind {
	case token.Plus, token.Minus:
		return rule{precedence: precTerm, infix: (*Compiler).binary}
	case token.Equals, token.Semicolon, token.RightParen, token.Comma:
		return rule{precedence: precNone}
	case token.Number:
		return rule{precedence: precNone, prefix: (*Compiler).number}
	case token.Identifier:
		return rule{precedence: precNone, prefix: (*Compiler).variable}
	case token.EqualsEquals, token.NotEquals:
		return rule{precedence: precEquality, infix: (*Compiler).binary}
	case token.And:
		return rule{precedence: precAnd, infix: (*Compiler).and}
	case token.Or:
		return rule{precedence: precOr, infix: (*Compiler).or}
	case token.DT:
		return rule{precedence: precNone, prefix: (*Compiler).dt}
	case token.ST:
		return rule{precedence: precNone, prefix: (*Compiler).st}
	case token.I:
		return rule{precedence: precNone, prefix: (*Compiler).indexReg}
	case token.Rand:
		return rule{precedence: precNone, prefix: (*Compiler).rand}
	case token.Key:
		return rule{precedence: precNone, prefix: (*Compiler).key}
	default:
		fail(t.Line, "no compile rule for %s", t)
		panic("unreachable")
	}
}

// compilePrecedence is the heart of the Pratt parser: run the prefix
// rule for the next token, then keep folding in infix rules as long as
// the upcoming token binds at least as tightly as precedence.
func (c *Compiler) compilePrecedence(precedence precedence) {
	c.advance()
	assignAllowed := precedence <= precAssignment

	prev := c.tokens[c.prev]
	prefix := c.getRule(prev).prefix
	if prefix == nil {
		fail(prev.Line, "no prefix rule for %s", prev)
	}
	prefix(c, assignAllowed)

	for precedence <= c.getRule(c.tokens[c.current]).precedence {
		c.advance()
		if infix := c.getRule(c.tokens[c.prev]).infix; infix != nil {
			infix(c, assignAllowed)
		}
	}
}

func (c *Compiler) declaration() {
	switch {
	case c.check(token.Fn):
		c.advance()
		c.fnDeclaration()
	case c.check(token.Var):
		c.advance()
		c.varDeclaration()
	default:
		c.statement()
	}
}

func (c *Compiler) fnDeclaration() {
	if !c.check(token.Identifier) {
		fail(c.tokens[c.current].Line, "identifier must follow fn keyword")
	}
	name := c.tokens[c.current].Ident
	c.advance()
	c.functions[name] = &function{startAddr: romAddr(len(c.asm)) + 2}

	c.consume(token.LeftParen)

	curArgReg := uint16(0)
	hasArgs := false
	if !c.check(token.RightParen) {
		hasArgs = true
		c.advance()
		c.bindFnArg(name, curArgReg)

		for c.check(token.Comma) {
			curArgReg++
			c.advance()
			c.advance()
			c.bindFnArg(name, curArgReg)
		}
	}

	c.consume(token.RightParen)
	c.consume(token.LeftBrace)

	c.scopeDepth++

	regStackTopBackup := c.regStackTop
	if hasArgs {
		c.regStackTop = curArgReg + 1
	} else {
		c.regStackTop = curArgReg
	}

	jpOverFnIndex := len(c.asm)
	c.emit(jp(0))
	c.block()
	c.popFrame()

	c.patch(jpOverFnIndex, jp(romAddr(len(c.asm))))

	c.clearCurrentScope()
	c.scopeDepth--

	c.regStackTop = regStackTopBackup
}

func (c *Compiler) bindFnArg(fnName string, reg uint16) {
	if c.tokens[c.prev].Kind != token.Identifier {
		fail(c.tokens[c.prev].Line, "non-identifier matched while parsing function args")
	}
	argName := c.tokens[c.prev].Ident
	fn := c.functions[fnName]
	fn.args = append(fn.args, argName)
	c.variables = append(c.variables, variable{name: argName, regIndex: reg, scopeDepth: c.scopeDepth})
}

// pushFrame emits the call-site prologue: spill the caller's V0..V13
// (LDIReg stores V0 through its operand register) to the RAM address
// addressed by the font sprite of whatever nibble value V13 currently
// holds, then advance V13's stride by 3 for the callee.
func (c *Compiler) pushFrame() {
	c.emit(ldFReg(frameReg))
	c.emit(ldIReg(frameReg))
	c.emit(ldRegByte(scratchReg, 3))
	c.emit(addRegReg(frameReg, scratchReg))
}

// popFrame emits the function epilogue: rewind V13's stride by 3 and
// restore V0..V13 from the spill slot before returning.
func (c *Compiler) popFrame() {
	c.emit(ldRegByte(scratchReg, 3))
	c.emit(subRegReg(frameReg, scratchReg))
	c.emit(ldFReg(frameReg))
	c.emit(ldRegI(frameReg))
	c.emit(ret())
}

func (c *Compiler) varDeclaration() {
	if !c.check(token.Identifier) {
		fail(c.tokens[c.current].Line, "identifier must follow var keyword")
	}
	name := c.tokens[c.current].Ident
	c.advance()
	c.variables = append(c.variables, variable{name: name, regIndex: c.regStackTop, scopeDepth: c.scopeDepth})

	if !c.check(token.Equals) {
		fail(c.tokens[c.current].Line, "initialiser must be present in variable declaration")
	}
	c.advance()
	c.expression()

	c.consume(token.Semicolon)
}

func (c *Compiler) statement() {
	switch {
	case c.check(token.LeftBrace):
		c.advance()
		c.scopeDepth++
		c.block()
		c.clearCurrentScope()
		c.scopeDepth--
	case c.check(token.If):
		c.advance()
		c.ifStatement()
	case c.check(token.While):
		c.advance()
		c.whileStatement()
	case c.check(token.Draw):
		c.advance()
		c.drawStatement()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) block() {
	for !c.check(token.RightBrace) && !c.check(token.EndOfFile) {
		c.declaration()
	}
	c.consume(token.RightBrace)
}

func (c *Compiler) ifStatement() {
	c.consume(token.LeftParen)
	c.expression()
	c.consume(token.RightParen)

	jpIndex := len(c.asm)
	c.emit(jp(0))
	c.statement()

	if c.check(token.Else) {
		c.patch(jpIndex, jp(romAddr(len(c.asm))+2))
		c.advance()
		elseJpIndex := len(c.asm)
		c.emit(jp(0))
		c.statement()
		c.patch(elseJpIndex, jp(romAddr(len(c.asm))))
	} else {
		c.patch(jpIndex, jp(romAddr(len(c.asm))))
	}
}

func (c *Compiler) whileStatement() {
	whileStart := romAddr(len(c.asm))

	c.consume(token.LeftParen)
	c.expression()
	c.consume(token.RightParen)

	jpExitIndex := len(c.asm)
	c.emit(jp(0))
	c.statement()

	c.emit(jp(whileStart))

	c.patch(jpExitIndex, jp(romAddr(len(c.asm))))
}

func (c *Compiler) drawStatement() {
	c.consume(token.LeftParen)
	c.expression()
	c.consume(token.Comma)
	c.expression()
	c.consume(token.Comma)

	if !c.check(token.Number) {
		fail(c.tokens[c.current].Line, "DRAW height must be a number literal")
	}
	height := c.tokens[c.current].Num
	c.advance()
	c.consume(token.RightParen)

	c.emit(drwRegRegNibble(c.peekRegStack(1), c.peekRegStack(0), height))
	c.decRegStackTop()
	c.decRegStackTop()

	c.consume(token.Semicolon)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.Semicolon)
	c.decRegStackTop()
}

func (c *Compiler) expression() {
	c.compilePrecedence(precAssignment)
}

func (c *Compiler) number(_ bool) {
	num := c.tokens[c.prev].Num
	c.emit(ldRegByte(c.regStackTop, num))
	c.incRegStackTop()
}

func (c *Compiler) variable(_ bool) {
	name := c.tokens[c.prev].Ident
	cur := c.tokens[c.current]

	switch cur.Kind {
	case token.Equals:
		c.advance()
		c.expression()
		reg, ok := c.lookupVariable(name)
		if !ok {
			fail(cur.Line, "variable %s not found", name)
		}
		c.emit(ldRegReg(reg, c.peekRegStack(0)))
		c.decRegStackTop()
	case token.LeftParen:
		c.advance()
		c.pushFrame()

		suppliedArgs := 0
		if !c.check(token.RightParen) {
			c.expression()
			suppliedArgs++
			for c.check(token.Comma) {
				c.advance()
				c.expression()
				suppliedArgs++
			}
		}

		fn, ok := c.functions[name]
		if !ok {
			fail(cur.Line, "function %s not found", name)
		}
		numArgs := uint16(len(fn.args))
		if suppliedArgs != len(fn.args) {
			fail(cur.Line, "function %s expects %d argument(s), got %d", name, len(fn.args), suppliedArgs)
		}
		for i := uint16(0); i < numArgs; i++ {
			c.emit(ldRegReg(i, c.regStackTop-numArgs+i))
		}
		c.regStackTop -= numArgs

		c.consume(token.RightParen)
		c.emit(call(fn.startAddr))
	default:
		reg, ok := c.lookupVariable(name)
		if !ok {
			fail(cur.Line, "variable %s not found", name)
		}
		c.emit(ldRegReg(c.regStackTop, reg))
	}

	c.incRegStackTop()
}

func (c *Compiler) dt(_ bool) {
	cur := c.tokens[c.current]
	if cur.Kind == token.Equals {
		c.advance()
		c.expression()
		c.emit(ldDTReg(c.peekRegStack(0)))
		return
	}
	c.emit(ldRegDT(c.regStackTop))
	c.incRegStackTop()
}

func (c *Compiler) st(_ bool) {
	cur := c.tokens[c.current]
	if cur.Kind != token.Equals {
		fail(cur.Line, "equals must follow ST as it can only be assigned to, not read")
	}
	c.advance()
	c.expression()
	c.emit(ldSTReg(c.peekRegStack(0)))
}

func (c *Compiler) indexReg(_ bool) {
	cur := c.tokens[c.current]
	if cur.Kind != token.Equals {
		fail(cur.Line, "equals must follow I as it can only be assigned to, not read")
	}
	c.advance()
	if !c.check(token.Number) {
		fail(c.tokens[c.current].Line, "I must be assigned to a number literal (variable/expression cannot be used)")
	}
	num := c.tokens[c.current].Num
	c.advance()
	c.emit(ldIAddr(num))
	c.incRegStackTop()
}

func (c *Compiler) rand(_ bool) {
	c.consume(token.LeftParen)
	if !c.check(token.Number) {
		fail(c.tokens[c.current].Line, "RAND's argument must be a number literal")
	}
	num := c.tokens[c.current].Num
	c.advance()
	c.consume(token.RightParen)
	c.emit(rndRegByte(c.regStackTop, num))
	c.incRegStackTop()
}

func (c *Compiler) key(_ bool) {
	c.consume(token.LeftParen)
	c.consume(token.RightParen)
	c.emit(ldRegKey(c.regStackTop))
	c.incRegStackTop()
}

func (c *Compiler) binary(_ bool) {
	opTok := c.tokens[c.prev]
	nextPrec := c.getRule(opTok).precedence + 1
	c.compilePrecedence(nextPrec)

	switch opTok.Kind {
	case token.Plus:
		c.emit(addRegReg(c.peekRegStack(1), c.peekRegStack(0)))
		c.decRegStackTop()
	case token.Minus:
		c.emit(subRegReg(c.peekRegStack(1), c.peekRegStack(0)))
		c.decRegStackTop()
	case token.EqualsEquals:
		c.emit(seRegReg(c.peekRegStack(1), c.peekRegStack(0)))
		c.decRegStackTop()
		c.decRegStackTop()
	case token.NotEquals:
		c.emit(sneRegReg(c.peekRegStack(1), c.peekRegStack(0)))
		c.decRegStackTop()
		c.decRegStackTop()
	default:
		fail(opTok.Line, "non-binary op %s found in binary()", opTok)
	}
}

// or implements short-circuit disjunction purely out of skip-on-equal
// instructions: if the left side's comparison held, it skips the first
// jump and lands on the second, which goes straight past the right
// operand to the "met" landing pad two instructions after it; if it fell
// through, the first jump leads into evaluating the right operand.
func (c *Compiler) or(_ bool) {
	jpNotMetIndex := len(c.asm)
	c.emit(jp(0))
	jpMetIndex := len(c.asm)
	c.emit(jp(0))

	c.patch(jpNotMetIndex, jp(romAddr(len(c.asm))))
	c.compilePrecedence(precOr)
	c.patch(jpMetIndex, jp(romAddr(len(c.asm))+2))
}

// and implements short-circuit conjunction: if the left comparison fell
// through, skip the right operand entirely.
func (c *Compiler) and(_ bool) {
	jpIndex := len(c.asm)
	c.emit(jp(0))

	c.compilePrecedence(precAnd)

	c.patch(jpIndex, jp(romAddr(len(c.asm))))
}
