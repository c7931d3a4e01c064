package frontend

import (
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	gopackages "golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"

	"gokata/internal/diag"
)

// LoadConfig configures how a snippet is loaded before SSA construction.
// Sources name files inside a single snippet directory; the whole directory
// is loaded as one package.
type LoadConfig struct {
	Sources   []string
	BuildTags []string
	// Env overrides entries of the inherited environment (KEY=VALUE).
	Env []string
}

const loadMode = gopackages.NeedName |
	gopackages.NeedSyntax |
	gopackages.NeedFiles |
	gopackages.NeedCompiledGoFiles |
	gopackages.NeedTypes |
	gopackages.NeedTypesInfo |
	gopackages.NeedImports |
	gopackages.NeedDeps |
	gopackages.NeedModule |
	gopackages.NeedTypesSizes

// LoadPackages type-checks the package containing cfg.Sources. Load errors
// are reported through reporter and summarised in the returned error.
func LoadPackages(cfg LoadConfig, reporter *diag.Reporter) ([]*gopackages.Package, *token.FileSet, error) {
	if len(cfg.Sources) == 0 {
		return nil, nil, fmt.Errorf("no source files were provided")
	}
	if reporter == nil {
		return nil, nil, fmt.Errorf("no reporter provided for package loading")
	}

	dir := workingDir(cfg.Sources[0])
	for _, src := range cfg.Sources[1:] {
		if other := workingDir(src); other != dir {
			return nil, nil, fmt.Errorf("sources span multiple directories: %s and %s", dir, other)
		}
	}
	if absDir, err := filepath.Abs(dir); err == nil {
		dir = absDir
	}

	fset := token.NewFileSet()
	loadCfg := &gopackages.Config{
		Mode:  loadMode,
		Fset:  fset,
		Dir:   dir,
		Env:   append(os.Environ(), cfg.Env...),
		Tests: false,
	}
	if flags := buildTagFlag(cfg.BuildTags); len(flags) > 0 {
		loadCfg.BuildFlags = flags
	}

	pkgs, err := gopackages.Load(loadCfg, ".")
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", dir, err)
	}

	reporter.SetFileSet(fset)

	var hadErrors bool
	for _, pkg := range pkgs {
		for _, loadErr := range pkg.Errors {
			reporter.Errorf("%s: %s", loadErr.Pos, loadErr.Msg)
			hadErrors = true
		}
	}
	if hadErrors {
		return nil, nil, fmt.Errorf("package loading failed")
	}
	if len(pkgs) == 0 {
		return nil, nil, fmt.Errorf("no packages found in %s", dir)
	}

	return pkgs, fset, nil
}

// BuildSSA builds SSA for the loaded packages and their dependencies. The
// returned slice holds the SSA packages for pkgs only.
func BuildSSA(pkgs []*gopackages.Package, reporter *diag.Reporter) (*ssa.Program, []*ssa.Package, error) {
	if len(pkgs) == 0 {
		return nil, nil, fmt.Errorf("no packages to build")
	}
	prog, ssaPkgs := ssautil.AllPackages(pkgs, ssa.InstantiateGenerics)
	prog.Build()

	built := make([]*ssa.Package, 0, len(ssaPkgs))
	for i, pkg := range ssaPkgs {
		if pkg == nil {
			if reporter != nil {
				reporter.Errorf("no SSA package for %s", pkgs[i].PkgPath)
			}
			continue
		}
		built = append(built, pkg)
	}
	if len(built) == 0 {
		return nil, nil, fmt.Errorf("SSA construction produced no packages")
	}
	return prog, built, nil
}

func buildTagFlag(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	joined := strings.Join(tags, ",")
	if joined == "" {
		return nil
	}
	return []string{"-tags=" + joined}
}

func workingDir(sample string) string {
	cleaned := filepath.Clean(sample)
	if info, err := os.Stat(cleaned); err == nil && info.IsDir() {
		return cleaned
	}
	return filepath.Dir(cleaned)
}
