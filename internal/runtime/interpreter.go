package runtime

import (
	"fmt"

	"github.com/vane-lang/vane/internal/ast"
	"github.com/vane-lang/vane/internal/types"
)

// Program is the minimal surface the interpreter needs from an emitted
// intermediate program — satisfied structurally by *emit.Program, so
// package runtime never imports package emit (the dependency runs the other
// way: emit -> runtime, for MetaManager/DataObject).
type Program interface {
	Lookup(mangledName string) (*ast.FunctionDef, bool)
	TopLevelStatements() []ast.Statement
}

// control is the sentinel propagated up the Go call stack to implement
// return/break/continue without a second compiled representation (spec §4
// is silent on an execution engine; grounded on the ancestor module's tree-walking
// evaluator, internal/evaluator/*, which unwinds Go panics/sentinels the
// same way for block-structured control flow).
type control struct {
	kind  int
	value *DataObject
}

const (
	ctrlReturn = iota
	ctrlBreak
	ctrlContinue
)

// Interpreter tree-walks the AST bodies stage 3 selected, using Meta for
// struct construction and method-table lookups and Bridge for primitive
// operators (spec §2 stage 4: "executes the emitted program against the
// object model"). Grounded on the ancestor module's treewalk backend
// (internal/backend/treewalk.go: an environment-chain evaluator recursing
// over *ast.Node), adapted to vane's DataObject/DataMeta/mangled-name model.
type Interpreter struct {
	Meta    *MetaManager
	Natives map[string]Native
	Program Program
}

// NewInterpreter wires an interpreter over prog, sharing meta (already
// populated by stage 3) and the fixed native bridge table.
func NewInterpreter(prog Program, meta *MetaManager) *Interpreter {
	return &Interpreter{Meta: meta, Natives: Bridge(), Program: prog}
}

// env is a chained variable environment (spec: every Block pushes a nested
// scope at compile time; the interpreter mirrors that at run time).
type env struct {
	parent *env
	vars   map[string]*DataObject
}

func newEnv(parent *env) *env { return &env{parent: parent, vars: make(map[string]*DataObject)} }

func (e *env) get(name string) (*DataObject, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (e *env) set(name string, v *DataObject) {
	for cur := e; cur != nil; cur = cur.parent {
		if _, ok := cur.vars[name]; ok {
			cur.vars[name] = v
			return
		}
	}
	e.vars[name] = v
}

// Run executes the program's top-level statements in a fresh root
// environment.
func (in *Interpreter) Run() {
	root := newEnv(nil)
	in.execStatements(in.Program.TopLevelStatements(), root)
}

func (in *Interpreter) execStatements(stmts []ast.Statement, e *env) *control {
	for _, s := range stmts {
		if c := in.execStmt(s, e); c != nil {
			return c
		}
	}
	return nil
}

func (in *Interpreter) execStmt(s ast.Statement, e *env) *control {
	switch n := s.(type) {
	case *ast.ExprStatement:
		in.eval(n.Value, e)
		return nil
	case *ast.VarDef:
		e.set(n.Name, in.eval(n.Value, e))
		return nil
	case *ast.Assign:
		e.set(n.Name, in.eval(n.Value, e))
		return nil
	case *ast.If:
		for _, br := range n.Branches {
			if asBool(in.eval(br.Condition, e)) {
				return in.execStatements(br.Body.Statements, newEnv(e))
			}
		}
		if n.Else != nil {
			return in.execStatements(n.Else.Statements, newEnv(e))
		}
		return nil
	case *ast.While:
		for asBool(in.eval(n.Condition, e)) {
			c := in.execStatements(n.Body.Statements, newEnv(e))
			if c != nil {
				if c.kind == ctrlBreak {
					break
				}
				if c.kind == ctrlContinue {
					continue
				}
				return c
			}
		}
		return nil
	case *ast.Break:
		return &control{kind: ctrlBreak}
	case *ast.Continue:
		return &control{kind: ctrlContinue}
	case *ast.Return:
		var v *DataObject
		if n.Value != nil {
			v = in.eval(n.Value, e)
		} else {
			v = NewPrimitive("Unit", nil)
		}
		if n.WrapDynamic {
			// Methods were already registered into v.Kind's DataMeta by stage
			// 3 (spec §4.6); the boxed value itself needs no further marking
			// since dispatch always keys off DataObject.Kind.
		}
		return &control{kind: ctrlReturn, value: v}
	case *ast.BlockStatement:
		return in.execStatements(n.Block.Statements, newEnv(e))
	case *ast.FunctionDef, *ast.StructDef, *ast.TraitDef, *ast.TraitImplDef:
		return nil // declarations carry no top-level runtime effect
	default:
		panic(fmt.Sprintf("vane internal: unhandled statement %T", s))
	}
}

func (in *Interpreter) eval(expr ast.Expression, e *env) *DataObject {
	switch n := expr.(type) {
	case *ast.IntLiteral:
		return boxInt(n.Value)
	case *ast.FloatLiteral:
		return boxFloat(n.Value)
	case *ast.BoolLiteral:
		return boxBool(n.Value)
	case *ast.StringLiteral:
		return boxString(n.Value)
	case *ast.Identifier:
		v, ok := e.get(n.Name)
		if !ok {
			panic(fmt.Sprintf("vane internal: unbound variable %q at runtime", n.Name))
		}
		return v
	case *ast.BinaryOp:
		v := in.evalCall(n.Desugared, e)
		if n.Negated {
			return boxBool(!asBool(v))
		}
		return v
	case *ast.Call:
		return in.evalCall(n, e)
	case *ast.Attribute:
		recv := in.eval(n.Receiver, e)
		if n.IsField {
			return recv.Fields[n.Name]
		}
		return recv
	case *ast.StructInit:
		fields := make(map[string]*DataObject, len(n.Fields))
		for _, f := range n.Fields {
			fields[f.Name] = in.eval(f.Value, e)
		}
		// Kind must match the mangled key ensureDynMethods registered the
		// vtable under (internal/emit/emit.go), or Box<Int> and Box<String>
		// collapse onto the same bare "Box" Kind and share (or miss) method
		// tables under dynamic dispatch.
		return in.Meta.MakeObject(types.Mangle(n.Resolved), fields)
	default:
		panic(fmt.Sprintf("vane internal: unhandled expression %T", expr))
	}
}

// evalCall dispatches c either statically (direct mangled lookup) or
// dynamically (vtable lookup on the receiver's runtime type), per the
// zero-cost-vs-vtable rule of spec §4.6.
func (in *Interpreter) evalCall(c *ast.Call, e *env) *DataObject {
	var args []*DataObject
	// A method call's receiver is the implicit first argument (`self`) to
	// the resolved function; a free-function call has no receiver to
	// prepend (spec §4.5 Call rule treats the receiver as argument 0 of the
	// candidate's signature).
	if attr, ok := c.Callee.(*ast.Attribute); ok {
		args = append(args, in.eval(attr.Receiver, e))
	}
	for _, a := range c.Args {
		args = append(args, in.eval(a, e))
	}

	var mangled string
	if c.DynDispatch && c.Resolved != nil && c.Resolved.Impl != nil {
		// The vtable is keyed by the source attribute name (the impl.Functions
		// map key), not Function.Name — a native method's Function.Name is its
		// bridge identity (e.g. "add_int"), which would never match a
		// registered vtable entry (spec §4.6 create_dyn_object registers by
		// method name).
		attr, _ := c.Callee.(*ast.Attribute)
		method := attr.Name
		trait := c.Resolved.Impl.Trait.Name
		m, ok := in.Meta.MethodFor(args[0], trait, method)
		if !ok {
			panic(fmt.Sprintf("vane internal: no %s method for %s on %s at runtime", trait, method, args[0].Kind))
		}
		mangled = m
	} else {
		mangled = c.Mangled
	}

	if native, ok := in.Natives[mangled]; ok {
		return native(args)
	}
	def, ok := in.Program.Lookup(mangled)
	if !ok {
		panic(fmt.Sprintf("vane internal: unresolved call target %q at runtime", mangled))
	}
	return in.invoke(def, args)
}

// invoke binds args into a fresh activation record and runs def's body.
// A trait method's signature omits an explicit `self` parameter (spec §4.4:
// "self is bound as a variable typed as the target type", not a declared
// Param) — evalCall prepends the receiver as args[0] for any Attribute
// callee, so here the split mirrors checkFunctionBody's: args[0] binds
// "self" when def.Signature carries an AssociationType, the rest bind
// def.Params in order.
func (in *Interpreter) invoke(def *ast.FunctionDef, args []*DataObject) *DataObject {
	call := newEnv(nil)
	rest := args
	if def.Signature != nil && def.Signature.AssociationType != nil && len(args) > 0 {
		call.vars["self"] = args[0]
		rest = args[1:]
	}
	for i, p := range def.Params {
		if i < len(rest) {
			call.vars[p.Name] = rest[i]
		}
	}
	c := in.execStatements(def.Body.Statements, call)
	if c != nil && c.kind == ctrlReturn {
		return c.value
	}
	return NewPrimitive("Unit", nil)
}
