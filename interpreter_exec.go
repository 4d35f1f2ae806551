package lox

// execute runs one statement against the interpreter's current environment.
func (i *Interpreter) execute(stmt Stmt) {
	switch s := stmt.(type) {
	case *ExpressionStmt:
		i.evaluate(s.Expression)
	case *PrintStmt:
		value := i.evaluate(s.Expression)
		i.reporter.Print(stringify(value))
	case *VarStmt:
		var value Value
		if s.Initializer != nil {
			value = i.evaluate(s.Initializer)
		}
		i.env.Define(s.Name.Lexeme, value)
	case *BlockStmt:
		i.executeBlock(s.Statements, NewEnv(i.env))
	case *IfStmt:
		if isTruthy(i.evaluate(s.Condition)) {
			i.execute(s.ThenBranch)
		} else if s.ElseBranch != nil {
			i.execute(s.ElseBranch)
		}
	case *WhileStmt:
		for isTruthy(i.evaluate(s.Condition)) {
			i.execute(s.Body)
		}
	case *FunctionStmt:
		fn := newFunction(s, i.env, false)
		i.env.Define(s.Name.Lexeme, fn)
	case *ReturnStmt:
		var value Value
		if s.Value != nil {
			value = i.evaluate(s.Value)
		}
		panic(returnSignal{value: value})
	case *ClassStmt:
		i.executeClass(s)
	default:
		panic("interpreter: unhandled statement type")
	}
}

func (i *Interpreter) executeClass(s *ClassStmt) {
	var superclass *Class
	if s.Superclass != nil {
		sc := i.evaluate(s.Superclass)
		var ok bool
		superclass, ok = sc.(*Class)
		if !ok {
			panic(newRuntimeError(s.Superclass.Name, "Superclass must be a class."))
		}
	}

	i.env.Define(s.Name.Lexeme, nil)

	enclosing := i.env
	if s.Superclass != nil {
		i.env = NewEnv(i.env)
		i.env.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, decl := range s.Methods {
		methods[decl.Name.Lexeme] = newFunction(decl, i.env, decl.Name.Lexeme == "init")
	}

	class := newClass(s.Name.Lexeme, superclass, methods)

	if s.Superclass != nil {
		i.env = enclosing
	}

	i.env.Assign(s.Name, class)
}

// executeBlock runs statements against env, always restoring the previous
// environment afterward — including when a statement panics (RuntimeError,
// returnSignal, or a parser/programmer error), so a raised control signal
// never leaves the interpreter's environment stack corrupted (spec §4.4).
func (i *Interpreter) executeBlock(statements []Stmt, env *Env) {
	previous := i.env
	defer func() { i.env = previous }()
	i.env = env
	for _, stmt := range statements {
		i.execute(stmt)
	}
}

func (i *Interpreter) evaluate(expr Expr) Value {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value
	case *GroupingExpr:
		return i.evaluate(e.Expression)
	case *UnaryExpr:
		return i.evalUnary(e)
	case *BinaryExpr:
		return i.evalBinary(e)
	case *LogicalExpr:
		return i.evalLogical(e)
	case *TernaryExpr:
		if isTruthy(i.evaluate(e.Condition)) {
			return i.evaluate(e.Then)
		}
		return i.evaluate(e.Else)
	case *VariableExpr:
		return i.lookUpVariable(e.Name, e)
	case *AssignExpr:
		value := i.evaluate(e.Value)
		if distance, ok := i.locals[e]; ok {
			i.env.AssignAt(distance, e.Name, value)
		} else {
			i.globals.Assign(e.Name, value)
		}
		return value
	case *CallExpr:
		return i.evalCall(e)
	case *GetExpr:
		object := i.evaluate(e.Object)
		instance, ok := object.(*Instance)
		if !ok {
			panic(newRuntimeError(e.Name, "Only instances have properties."))
		}
		return instance.Get(e.Name)
	case *SetExpr:
		object := i.evaluate(e.Object)
		instance, ok := object.(*Instance)
		if !ok {
			panic(newRuntimeError(e.Name, "Only instances have fields."))
		}
		value := i.evaluate(e.Value)
		instance.Set(e.Name, value)
		return value
	case *ThisExpr:
		return i.lookUpVariable(e.Keyword, e)
	case *SuperExpr:
		return i.evalSuper(e)
	case *LambdaExpr:
		return newLambda(e, i.env)
	default:
		panic("interpreter: unhandled expression type")
	}
}

func (i *Interpreter) evalUnary(e *UnaryExpr) Value {
	right := i.evaluate(e.Right)
	switch e.Operator.Type {
	case MINUS:
		return -checkNumberOperand(e.Operator, right)
	case BANG:
		return !isTruthy(right)
	default:
		panic("interpreter: unreachable unary operator")
	}
}

func (i *Interpreter) evalLogical(e *LogicalExpr) Value {
	left := i.evaluate(e.Left)
	if e.Operator.Type == OR {
		if isTruthy(left) {
			return left
		}
	} else {
		if !isTruthy(left) {
			return left
		}
	}
	return i.evaluate(e.Right)
}

func (i *Interpreter) evalBinary(e *BinaryExpr) Value {
	left := i.evaluate(e.Left)
	right := i.evaluate(e.Right)

	switch e.Operator.Type {
	case MINUS:
		l, r := checkNumberOperands(e.Operator, left, right)
		return l - r
	case SLASH:
		l, r := checkNumberOperands(e.Operator, left, right)
		if r == 0 {
			panic(newRuntimeError(e.Operator, "Cannot divide by 0"))
		}
		return l / r
	case STAR:
		l, r := checkNumberOperands(e.Operator, left, right)
		return l * r
	case PLUS:
		return i.evalPlus(e.Operator, left, right)
	case GREATER:
		l, r := checkNumberOperands(e.Operator, left, right)
		return l > r
	case GREATER_EQUAL:
		l, r := checkNumberOperands(e.Operator, left, right)
		return l >= r
	case LESS:
		l, r := checkNumberOperands(e.Operator, left, right)
		return l < r
	case LESS_EQUAL:
		l, r := checkNumberOperands(e.Operator, left, right)
		return l <= r
	case BANG_EQUAL:
		return !isEqual(left, right)
	case EQUAL_EQUAL:
		return isEqual(left, right)
	default:
		panic("interpreter: unreachable binary operator")
	}
}

// evalPlus implements `+` for numbers and strings, plus the common
// extension of allowing either operand to be a string (the other is
// stringified), per spec §4.4's arithmetic section.
func (i *Interpreter) evalPlus(operator Token, left, right Value) Value {
	if l, ok := left.(float64); ok {
		if r, ok := right.(float64); ok {
			return l + r
		}
	}
	if l, ok := left.(string); ok {
		if r, ok := right.(string); ok {
			return l + r
		}
	}
	if _, lok := left.(string); lok {
		return left.(string) + stringify(right)
	}
	if _, rok := right.(string); rok {
		return stringify(left) + right.(string)
	}
	panic(newRuntimeError(operator, "Operands must be two numbers or two strings."))
}

func (i *Interpreter) evalCall(e *CallExpr) Value {
	callee := i.evaluate(e.Callee)

	arguments := make([]Value, len(e.Arguments))
	for idx, arg := range e.Arguments {
		arguments[idx] = i.evaluate(arg)
	}

	fn, ok := callee.(Callable)
	if !ok {
		panic(newRuntimeError(e.Paren, "Can only call functions and classes"))
	}
	if len(arguments) != fn.Arity() {
		panic(newRuntimeError(e.Paren, "Expected %d arguments, but got %d", fn.Arity(), len(arguments)))
	}
	return fn.Call(i, arguments)
}

func (i *Interpreter) evalSuper(e *SuperExpr) Value {
	distance := i.locals[e]
	superclass := i.env.GetAt(distance, "super").(*Class)
	instance := i.env.GetAt(distance-1, "this").(*Instance)

	method := superclass.findMethod(e.Method.Lexeme)
	if method == nil {
		panic(newRuntimeError(e.Method, "Undefined property '%s'.", e.Method.Lexeme))
	}
	return method.bind(instance)
}
