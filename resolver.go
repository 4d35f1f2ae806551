package lox

// functionType tracks what kind of function body the resolver is currently
// inside, used to validate `return` and `this`/`super` usage.
type functionType int

const (
	functionTypeNone functionType = iota
	functionTypeFunction
	functionTypeInitializer
	functionTypeMethod
)

// classType tracks whether the resolver is inside a class body, and whether
// that class has a superclass, to validate `this`/`super` usage.
type classType int

const (
	classTypeNone classType = iota
	classTypeClass
	classTypeSubclass
)

// Resolver is a second AST walk that never evaluates anything: it only
// tracks lexical scopes and records, for every variable/this/super use, how
// many enclosing scopes separate it from its declaring scope. That hop count
// is written into interpreter.locals, which the evaluator reads at runtime
// — the two subsystems' shared invariant spec §3 describes.
type Resolver struct {
	interpreter     *Interpreter
	reporter        *Reporter
	scopes          []map[string]bool
	currentFunction functionType
	currentClass    classType
}

// NewResolver creates a Resolver that writes hop counts into interpreter and
// reports static semantic errors to reporter.
func NewResolver(interpreter *Interpreter, reporter *Reporter) *Resolver {
	return &Resolver{interpreter: interpreter, reporter: reporter}
}

// Resolve walks every top-level statement. The globals frame is never
// pushed onto r.scopes, so top-level declarations are left unresolved and
// fall through to the evaluator's globals lookup, per spec §4.3.
func (r *Resolver) Resolve(statements []Stmt) {
	r.resolveStmts(statements)
}

func (r *Resolver) resolveStmts(statements []Stmt) {
	for _, s := range statements {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()
	case *VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)
	case *FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s.Params, s.Body, functionTypeFunction)
	case *ExpressionStmt:
		r.resolveExpr(s.Expression)
	case *IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.ThenBranch)
		if s.ElseBranch != nil {
			r.resolveStmt(s.ElseBranch)
		}
	case *PrintStmt:
		r.resolveExpr(s.Expression)
	case *ReturnStmt:
		if r.currentFunction == functionTypeNone {
			r.reporter.TokenError(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == functionTypeInitializer {
				r.reporter.TokenError(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}
	case *WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	case *ClassStmt:
		r.resolveClass(s)
	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveClass(s *ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classTypeClass

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.reporter.TokenError(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = classTypeSubclass
		r.resolveExpr(s.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range s.Methods {
		declaration := functionTypeMethod
		if method.Name.Lexeme == "init" {
			declaration = functionTypeInitializer
		}
		r.resolveFunction(method.Params, method.Body, declaration)
	}

	r.endScope()

	if s.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
}

// resolveFunction pushes a new scope for Params and Body, resolving the
// function recursively; `currentFunction` is saved and restored around the
// traversal so nested functions don't corrupt the outer context.
func (r *Resolver) resolveFunction(params []Token, body []Stmt, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveExpr(expr Expr) {
	switch e := expr.(type) {
	case *VariableExpr:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.reporter.TokenError(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	case *AssignExpr:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *TernaryExpr:
		r.resolveExpr(e.Condition)
		r.resolveExpr(e.Then)
		r.resolveExpr(e.Else)
	case *CallExpr:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpr(arg)
		}
	case *GetExpr:
		r.resolveExpr(e.Object)
	case *SetExpr:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *GroupingExpr:
		r.resolveExpr(e.Expression)
	case *LiteralExpr:
		// no sub-expressions, no scope interaction
	case *UnaryExpr:
		r.resolveExpr(e.Right)
	case *LambdaExpr:
		r.resolveFunction(e.Params, e.Body, functionTypeFunction)
	case *ThisExpr:
		if r.currentClass == classTypeNone {
			r.reporter.TokenError(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *SuperExpr:
		switch r.currentClass {
		case classTypeNone:
			r.reporter.TokenError(e.Keyword, "Can't use 'super' outside of a class.")
		case classTypeClass:
			r.reporter.TokenError(e.Keyword, "Can't use 'super' keyword in a class with no superclass")
		}
		r.resolveLocal(e, e.Keyword)
	default:
		panic("resolver: unhandled expression type")
	}
}

// resolveLocal scans scopes from innermost outward and records the hop
// count on the first scope that declares name. If no scope declares it, the
// expression is left out of interpreter.locals entirely, and the evaluator
// treats that as "global" per spec §4.3/§4.4.
func (r *Resolver) resolveLocal(expr Expr, name Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.interpreter.resolve(expr, len(r.scopes)-1-i)
			return
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, map[string]bool{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare inserts name -> false (not yet initialized) into the innermost
// scope, reporting a redeclaration error within the same block.
func (r *Resolver) declare(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.reporter.TokenError(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}
