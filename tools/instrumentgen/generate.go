package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/printer"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
)

const (
	tracerImport  = "github.com/restcontract/petstore-contract-tests/instrument"
	loggersImport = "gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
	receiverName  = "i"
)

// sourcePackage is the parsed, non-test, non-generated Go files of one directory.
type sourcePackage struct {
	name  string
	fset  *token.FileSet
	files []*ast.File
}

type method struct {
	Name    string
	Params  string
	Args    string
	Results string
	Returns bool
}

type decorator struct {
	Command string
	Package string
	Type    string
	Imports [][]string
	Methods []method
}

var decoratorTemplate = template.Must(template.New("decorator").Parse(`// Code generated by {{.Command}}; DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
{{range .}}	{{.}}
{{end}}{{end -}}
)

type instrumented{{.Type}} struct {
	next   {{.Type}}
	tracer instrument.Tracer
}

func newInstrumented{{.Type}}(next {{.Type}}, loggers ldlog.Loggers) {{.Type}} {
	return &instrumented{{.Type}}{next: next, tracer: instrument.NewTracer(next, loggers)}
}
{{range .Methods}}
func (i *instrumented{{$.Type}}) {{.Name}}({{.Params}}){{.Results}} {
	i.tracer.Call("{{.Name}}")
	{{if .Returns}}return {{end}}i.next.{{.Name}}({{.Args}})
}
{{end}}`))

func loadPackage(dir, skipFile string) (*sourcePackage, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return nil, err
	}
	pkg := &sourcePackage{fset: token.NewFileSet()}
	for _, path := range matches {
		base := filepath.Base(path)
		if strings.HasSuffix(base, "_test.go") || base == skipFile {
			continue
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := pkg.addFile(base, src); err != nil {
			return nil, err
		}
	}
	if len(pkg.files) == 0 {
		return nil, fmt.Errorf("no Go files in %s", dir)
	}
	return pkg, nil
}

func (p *sourcePackage) addFile(name string, src []byte) error {
	f, err := parser.ParseFile(p.fset, name, src, parser.ParseComments)
	if err != nil {
		return err
	}
	if p.name == "" {
		p.name = f.Name.Name
	}
	p.files = append(p.files, f)
	return nil
}

// findInterface returns the named interface and the file that declares it.
func (p *sourcePackage) findInterface(name string) (*ast.InterfaceType, *ast.File) {
	for _, f := range p.files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				if ts.Name.Name != name {
					continue
				}
				if it, ok := ts.Type.(*ast.InterfaceType); ok {
					return it, f
				}
			}
		}
	}
	return nil, nil
}

func generate(pkg *sourcePackage, typeName, command string) ([]byte, error) {
	d := decorator{Command: command, Package: pkg.name, Type: typeName}
	imports := map[string]bool{tracerImport: true, loggersImport: true}
	seen := make(map[string]bool)
	if err := collectMethods(pkg, typeName, &d, imports, seen); err != nil {
		return nil, err
	}
	sort.Slice(d.Methods, func(a, b int) bool { return d.Methods[a].Name < d.Methods[b].Name })
	d.Imports = groupImports(imports)

	var buf bytes.Buffer
	if err := decoratorTemplate.Execute(&buf, d); err != nil {
		return nil, err
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("generated invalid source for %s: %w", typeName, err)
	}
	return out, nil
}

func collectMethods(
	pkg *sourcePackage,
	typeName string,
	d *decorator,
	imports map[string]bool,
	seen map[string]bool,
) error {
	it, file := pkg.findInterface(typeName)
	if it == nil {
		return fmt.Errorf("interface %s not found in package %s", typeName, pkg.name)
	}
	for _, field := range it.Methods.List {
		switch t := field.Type.(type) {
		case *ast.FuncType:
			for _, name := range field.Names {
				if !name.IsExported() || seen[name.Name] {
					continue
				}
				seen[name.Name] = true
				m, err := pkg.renderMethod(name.Name, t, file, imports)
				if err != nil {
					return err
				}
				d.Methods = append(d.Methods, m)
			}
		case *ast.Ident:
			if err := collectMethods(pkg, t.Name, d, imports, seen); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%s: embedded type %s is not supported", typeName, pkg.render(field.Type))
		}
	}
	return nil
}

func (p *sourcePackage) renderMethod(
	name string,
	ft *ast.FuncType,
	file *ast.File,
	imports map[string]bool,
) (method, error) {
	m := method{Name: name}
	var params, args []string
	index := 0
	for _, field := range ft.Params.List {
		typ := p.render(field.Type)
		if err := addImports(field.Type, file, imports); err != nil {
			return m, err
		}
		_, variadic := field.Type.(*ast.Ellipsis)
		names := field.Names
		if len(names) == 0 {
			names = []*ast.Ident{{Name: "_"}}
		}
		for _, n := range names {
			pname := n.Name
			if pname == "_" || pname == receiverName {
				pname = "p" + strconv.Itoa(index)
			}
			index++
			params = append(params, pname+" "+typ)
			if variadic {
				args = append(args, pname+"...")
			} else {
				args = append(args, pname)
			}
		}
	}
	m.Params = strings.Join(params, ", ")
	m.Args = strings.Join(args, ", ")

	if ft.Results != nil {
		var results []string
		for _, field := range ft.Results.List {
			if err := addImports(field.Type, file, imports); err != nil {
				return m, err
			}
			n := len(field.Names)
			if n == 0 {
				n = 1
			}
			for j := 0; j < n; j++ {
				results = append(results, p.render(field.Type))
			}
		}
		switch len(results) {
		case 0:
		case 1:
			m.Results = " " + results[0]
		default:
			m.Results = " (" + strings.Join(results, ", ") + ")"
		}
		m.Returns = len(results) > 0
	}
	return m, nil
}

func (p *sourcePackage) render(expr ast.Expr) string {
	var buf bytes.Buffer
	_ = printer.Fprint(&buf, p.fset, expr)
	return buf.String()
}

// addImports records the import path of every package qualifier used in expr.
func addImports(expr ast.Expr, file *ast.File, imports map[string]bool) error {
	var err error
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		ident, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}
		path, found := importPath(file, ident.Name)
		if !found {
			err = fmt.Errorf("cannot resolve package %s", ident.Name)
			return false
		}
		imports[path] = true
		return false
	})
	return err
}

func importPath(file *ast.File, qualifier string) (string, bool) {
	for _, spec := range file.Imports {
		path, _ := strconv.Unquote(spec.Path.Value)
		name := filepath.Base(path)
		if spec.Name != nil {
			name = spec.Name.Name
		} else if strings.HasPrefix(name, "go-") {
			name = strings.TrimPrefix(name, "go-")
		}
		if name == qualifier {
			return path, true
		}
	}
	return "", false
}

// groupImports splits import paths into a standard library group and a group for everything else.
func groupImports(imports map[string]bool) [][]string {
	var std, other []string
	for path := range imports {
		quoted := strconv.Quote(path)
		if strings.Contains(strings.SplitN(path, "/", 2)[0], ".") {
			other = append(other, quoted)
		} else {
			std = append(std, quoted)
		}
	}
	sort.Strings(std)
	sort.Strings(other)
	var groups [][]string
	for _, g := range [][]string{std, other} {
		if len(g) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}
