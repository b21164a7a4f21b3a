package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"log"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-leo/gox/slicex"
	"github.com/go-leo/value-object/cmd/internal"
	"golang.org/x/exp/slices"
	"golang.org/x/tools/go/packages"
)

var (
	outPath = flag.String("path", ".", "output directory for generated files")
)

// Usage is a replacement usage function for the flags package.
func Usage() {
	fmt.Fprintf(os.Stderr, "Usage of valueobject-gen:\n")
	fmt.Fprintf(os.Stderr, "\tvalueobject-gen [-path dir] [package]\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
}

func init() {
	log.SetFlags(0)
	log.SetPrefix("valueobject-gen: ")
}

func main() {
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Usage = Usage
	flag.Parse()
	if *showVersion {
		fmt.Printf("valueobject-gen %v\n", internal.Version)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		// Default: process whole package in current directory.
		args = []string{"."}
	}

	pkg := loadPkg(args)

	var files []*internal.File
	for _, syntax := range pkg.Syntax {
		importPaths := importsOf(syntax)
		ast.Inspect(syntax, func(node ast.Node) bool {
			if node == nil {
				return true
			}
			genDecl, ok := node.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE || genDecl.Doc == nil {
				return true
			}
			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				structType, ok := typeSpec.Type.(*ast.StructType)
				if !ok {
					continue
				}
				comments := slicex.Map[[]*ast.Comment, []string](
					genDecl.Doc.List,
					func(i int, e1 *ast.Comment) string { return e1.Text },
				)
				file := internal.NewFileFromComment(typeSpec.Name.String(), *outPath, comments)
				if file == nil {
					continue
				}
				if file.Package == "." {
					file.Package = pkg.Name
				}
				file.Fields, file.Imports = inspectFields(structType, importPaths)
				files = append(files, file)
			}
			return true
		})
	}

	for _, f := range files {
		if err := f.Gen(); err != nil {
			log.Printf("%s.%s error: %s\n", pkg.PkgPath, f.ObjectName, err)
			continue
		}
		log.Printf("%s.%s wrote %s\n", pkg.PkgPath, f.ObjectName, f.AbsFilename)
	}
}

func loadPkg(args []string) *packages.Package {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
			packages.NeedImports | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
	}
	pkgs, err := packages.Load(cfg, args...)
	if err != nil {
		log.Fatal(err)
	}
	if len(pkgs) != 1 {
		log.Fatalf("error: %d packages found", len(pkgs))
	}
	return pkgs[0]
}

// inspectFields maps a struct's exported fields to generated property specs
// plus the import paths the emitted descriptor expressions need.
func inspectFields(structType *ast.StructType, importPaths map[string]string) ([]internal.FieldSpec, []string) {
	var specs []internal.FieldSpec
	var imports []string
	for _, field := range structType.Fields.List {
		if slicex.IsEmpty(field.Names) {
			// embedded fields are not declared properties
			continue
		}
		name := field.Names[0].String()
		if !ast.IsExported(name) {
			continue
		}
		property := internal.LowerFirst(name)
		if tag, ok := lookupTag(field, "vo"); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				property = tag
			}
		}
		goType := types.ExprString(field.Type)
		specs = append(specs, internal.FieldSpec{
			Property:   property,
			Descriptor: descriptorExpr(field.Type, goType),
			Param:      internal.LowerFirst(name),
			GoType:     goType,
		})
		if sel, ok := selectorPackage(field.Type); ok {
			if path, found := importPaths[sel]; found && !slices.Contains(imports, path) {
				imports = append(imports, path)
			}
		}
	}
	return specs, imports
}

func descriptorExpr(expr ast.Expr, goType string) string {
	if ident, ok := expr.(*ast.Ident); ok {
		switch ident.Name {
		case "string":
			return "valueobject.String"
		case "int", "int8", "int16", "int32", "int64",
			"uint", "uint8", "uint16", "uint32", "uint64",
			"float32", "float64":
			return "valueobject.Number"
		case "bool":
			return "valueobject.Boolean"
		}
	}
	return fmt.Sprintf("valueobject.InstanceOf((*%s)(nil))", goType)
}

func selectorPackage(expr ast.Expr) (string, bool) {
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.SelectorExpr:
			if ident, ok := e.X.(*ast.Ident); ok {
				return ident.Name, true
			}
			return "", false
		default:
			return "", false
		}
	}
}

func importsOf(file *ast.File) map[string]string {
	paths := map[string]string{}
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		name := path
		if i := strings.LastIndex(path, "/"); i >= 0 {
			name = path[i+1:]
		}
		if spec.Name != nil {
			name = spec.Name.String()
		}
		paths[name] = path
	}
	return paths
}

func lookupTag(field *ast.Field, key string) (string, bool) {
	if field.Tag == nil {
		return "", false
	}
	raw, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return "", false
	}
	return reflect.StructTag(raw).Lookup(key)
}
