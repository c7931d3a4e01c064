package validate

import (
	"fmt"
	"go/token"
	"go/types"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"

	"gokata/internal/diag"
)

// Summary records facts about a checked snippet that are not violations.
type Summary struct {
	Package string
	// Recursive lists functions that call themselves directly, sorted.
	Recursive []string
}

// CheckProgram verifies that the loaded snippet is a standalone,
// single-threaded teaching program: package main with a main function,
// standard-library imports only, no goroutines or channels, and no writes to
// package-level variables outside initialisation.
func CheckProgram(prog *ssa.Program, pkgs []*ssa.Package, astPkgs []*packages.Package, reporter *diag.Reporter) (Summary, error) {
	if prog == nil {
		return Summary{}, fmt.Errorf("no SSA program provided for validation")
	}
	if reporter == nil {
		return Summary{}, fmt.Errorf("no reporter provided for validation")
	}

	c := &checker{
		reporter:   reporter,
		allowedPkg: make(map[*ssa.Package]struct{}),
		astPkgs:    astPkgs,
		recursive:  make(map[string]struct{}),
	}
	for _, pkg := range pkgs {
		if pkg != nil {
			c.allowedPkg[pkg] = struct{}{}
		}
	}
	c.run(prog)

	summary := Summary{Recursive: c.recursiveNames()}
	if len(astPkgs) > 0 && astPkgs[0] != nil {
		summary.Package = astPkgs[0].PkgPath
	}
	if c.errCount > 0 {
		return summary, fmt.Errorf("validation failed with %d issue(s)", c.errCount)
	}
	return summary, nil
}

type checker struct {
	reporter   *diag.Reporter
	errCount   int
	allowedPkg map[*ssa.Package]struct{}
	astPkgs    []*packages.Package
	recursive  map[string]struct{}
}

func (c *checker) run(prog *ssa.Program) {
	for _, pkg := range c.astPkgs {
		if pkg == nil {
			continue
		}
		c.checkEntryPoint(pkg)
		c.checkImports(pkg)
	}
	for fn := range ssautil.AllFunctions(prog) {
		if fn == nil || len(fn.Blocks) == 0 {
			continue
		}
		if fn.Pkg == nil || fn.Pkg.Pkg == nil {
			continue
		}
		if len(c.allowedPkg) > 0 {
			if _, ok := c.allowedPkg[fn.Pkg]; !ok {
				continue
			}
		}
		c.checkFunction(fn)
	}
}

func (c *checker) checkEntryPoint(pkg *packages.Package) {
	pos := token.NoPos
	if len(pkg.Syntax) > 0 && pkg.Syntax[0] != nil {
		pos = pkg.Syntax[0].Name.Pos()
	}
	if pkg.Name != "main" {
		c.error(pos, "snippets must be package main; got package %s", pkg.Name)
		return
	}
	if pkg.Types == nil {
		return
	}
	if _, ok := pkg.Types.Scope().Lookup("main").(*types.Func); !ok {
		c.error(pos, "package main must define func main")
	}
}

func (c *checker) checkImports(pkg *packages.Package) {
	for _, file := range pkg.Syntax {
		if file == nil {
			continue
		}
		for _, spec := range file.Imports {
			path, err := strconv.Unquote(spec.Path.Value)
			if err != nil {
				continue
			}
			if !isStandard(path, pkg.Imports[path]) {
				c.error(spec.Pos(), "import %q is not in the standard library; snippets must be self-contained", path)
			}
		}
	}
}

func (c *checker) checkFunction(fn *ssa.Function) {
	for _, block := range fn.Blocks {
		if block == nil {
			continue
		}
		for _, instr := range block.Instrs {
			c.inspectInstruction(fn, instr)
		}
	}
}

func (c *checker) inspectInstruction(fn *ssa.Function, instr ssa.Instruction) {
	switch inst := instr.(type) {
	case *ssa.Go:
		c.error(inst.Pos(), "go statements are not allowed; snippets run on a single goroutine")
	case *ssa.MakeChan:
		c.error(inst.Pos(), "channels are not allowed; snippets run on a single goroutine")
	case *ssa.Select:
		c.error(inst.Pos(), "select statements are not allowed; snippets run on a single goroutine")
	case *ssa.Call:
		c.checkCall(fn, inst)
	case *ssa.Store:
		c.checkGlobalWrite(fn, inst.Pos(), inst.Addr)
	case *ssa.MapUpdate:
		c.checkGlobalWrite(fn, inst.Pos(), inst.Map)
	}
}

func (c *checker) checkCall(current *ssa.Function, call *ssa.Call) {
	if call.Call.IsInvoke() {
		return
	}
	if callee := call.Call.StaticCallee(); callee != nil && callee == current {
		c.recursive[current.Name()] = struct{}{}
	}
}

// checkGlobalWrite flags a write whose target is a package-level variable or
// an element, field or map entry reached from one.
func (c *checker) checkGlobalWrite(fn *ssa.Function, pos token.Pos, target ssa.Value) {
	global := rootGlobal(target)
	if global == nil || isInitializer(fn) {
		return
	}
	c.error(pos, "%s writes package-level variable %s; keep state that outlives a call in an explicit value", describeFunction(fn), global.Name())
}

func (c *checker) recursiveNames() []string {
	names := make([]string, 0, len(c.recursive))
	for name := range c.recursive {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *checker) error(pos token.Pos, format string, args ...any) {
	c.errCount++
	if c.reporter != nil {
		c.reporter.Error(pos, fmt.Sprintf(format, args...))
	}
}

// isInitializer reports whether fn is, or is nested inside, the synthetic
// package initializer or a user init function.
func isInitializer(fn *ssa.Function) bool {
	root := fn
	for root.Parent() != nil {
		root = root.Parent()
	}
	name := root.Name()
	return name == "init" || strings.HasPrefix(name, "init#")
}

// rootGlobal follows element, field and load chains back to the package-level
// variable they start from, or returns nil.
func rootGlobal(v ssa.Value) *ssa.Global {
	for v != nil {
		switch x := v.(type) {
		case *ssa.Global:
			return x
		case *ssa.IndexAddr:
			v = x.X
		case *ssa.FieldAddr:
			v = x.X
		case *ssa.UnOp:
			if x.Op != token.MUL {
				return nil
			}
			v = x.X
		default:
			return nil
		}
	}
	return nil
}

func describeFunction(fn *ssa.Function) string {
	if fn.Parent() != nil {
		return "closure in " + describeFunction(fn.Parent())
	}
	return fn.Name()
}

// isStandard reports whether an import path belongs to the standard
// library. Module-less packages without a dot in the first path element are
// treated as standard.
func isStandard(path string, imported *packages.Package) bool {
	if imported != nil && imported.Module != nil {
		return false
	}
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}
