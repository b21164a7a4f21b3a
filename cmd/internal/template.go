package internal

import (
	_ "embed"
	"fmt"
	"os"
	"text/template"
)

const Version = "v0.1.0"

//go:embed valueobject.go.template
var valueObjectContent string

// FieldSpec is one generated property: its declared name, the descriptor
// expression to emit, and the Go-side parameter name and type of the typed
// constructor.
type FieldSpec struct {
	Property   string
	Descriptor string
	Param      string
	GoType     string
}

type File struct {
	AbsFilename string
	Package     string
	TypeName    string
	ObjectName  string
	Imports     []string
	Fields      []FieldSpec
}

func (v File) Gen() error {
	tmpl, err := template.New("valueobject").Parse(valueObjectContent)
	if err != nil {
		return err
	}
	_, err = os.Stat(v.AbsFilename)
	if os.IsNotExist(err) {
		file, err := os.Create(v.AbsFilename)
		if err != nil {
			return err
		}
		return tmpl.Execute(file, &v)
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("file %s already exists", v.AbsFilename)
}
