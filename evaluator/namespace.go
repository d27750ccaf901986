/*
File    : slang/evaluator/namespace.go
Package : evaluator

Namespace declarations and imports (spec §4.6). A `namespace NAME { ... }`
block evaluates its body in a fresh child scope, harvests that scope's
own let/function bindings in declaration order into an Object, and
merges it into (or installs it fresh under) NAME in the enclosing
scope. `import "path"` recursively lexes+parses+evaluates another file
against a fresh child of the importer's environment, then lifts every
namespace *that file declared* (and nothing else — its bare top-level
lets/functions stay private) into the importer's scope.
*/
package evaluator

import (
	"path/filepath"

	"github.com/akashmaji946/slang/ast"
	"github.com/akashmaji946/slang/environment"
	"github.com/akashmaji946/slang/value"
)

// evalNamespaceDecl evaluates body in a fresh child scope, collects
// its own let/function declarations (in declaration order, via
// OwnNames) into an Object, and merges that Object into any existing
// Object already bound under NAME in the enclosing scope.
func (e *Evaluator) evalNamespaceDecl(n *ast.NamespaceDecl, env *environment.Env) (value.Value, error) {
	obj, err := e.buildNamespaceObject(n.Body, env)
	if err != nil {
		return nil, err
	}
	if existing, ok := env.Get(n.Name); ok {
		if existingObj, ok := existing.(*value.Object); ok {
			existingObj.Merge(obj)
			return existingObj, nil
		}
	}
	env.Define(n.Name, obj)
	return obj, nil
}

// buildNamespaceObject runs body in a child scope of env and returns
// an Object holding that scope's own bindings in declaration order.
// Used by both plain namespace declarations and import's per-namespace
// lift (which runs the whole imported file first, then re-walks its
// namespace declarations to build the lifted Objects).
func (e *Evaluator) buildNamespaceObject(body *ast.Block, env *environment.Env) (*value.Object, error) {
	child := environment.NewEnclosed(env)
	result, err := e.evalBlock(body, child)
	if err != nil {
		return nil, err
	}
	if isSignal(result) {
		return nil, newError(SyntaxErr, body.Position, "return/break/continue inside a namespace body")
	}
	obj := value.NewObject()
	for _, name := range child.OwnNames() {
		v, _ := child.Get(name)
		obj.Set(name, v)
	}
	return obj, nil
}

// evalImport resolves path relative to the importing file's directory,
// detects import cycles via a visited-path set, and (on success) lexes
// + parses + evaluates the target file against a fresh child of env,
// then lifts every namespace *declared at that file's top level* into
// env, merging with whatever's already bound there under the same
// name (spec §4.6's merge rule applies across files too).
func (e *Evaluator) evalImport(n *ast.Import, env *environment.Env) (value.Value, error) {
	resolved := e.resolveImportPath(n.Path)
	abs, absErr := filepath.Abs(resolved)
	if absErr == nil {
		resolved = abs
	}
	if e.importing[resolved] {
		return nil, newError(ImportError, n.Position, "import cycle detected at %q", n.Path)
	}

	prog, err := parseFile(resolved)
	if err != nil {
		return nil, newError(ImportError, n.Position, "cannot import %q: %s", n.Path, err.Error())
	}

	e.importing[resolved] = true
	defer delete(e.importing, resolved)

	prevDir := e.scriptDir
	e.scriptDir = filepath.Dir(resolved)
	defer func() { e.scriptDir = prevDir }()

	fileEnv := environment.NewEnclosed(env)
	for _, stmt := range prog.Statements {
		v, err := e.Eval(stmt, fileEnv)
		if err != nil {
			return nil, err
		}
		if err := checkTopLevelSignal(v); err != nil {
			return nil, err
		}
		if nsDecl, ok := stmt.(*ast.NamespaceDecl); ok {
			nsVal, _ := fileEnv.Get(nsDecl.Name)
			nsObj, ok := nsVal.(*value.Object)
			if !ok {
				continue
			}
			if existing, ok := env.Get(nsDecl.Name); ok {
				if existingObj, ok := existing.(*value.Object); ok {
					existingObj.Merge(nsObj)
					continue
				}
			}
			env.Define(nsDecl.Name, nsObj)
		}
	}
	return value.Null, nil
}
