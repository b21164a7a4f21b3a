package internal

import (
	"path"
	"regexp"
	"strings"
	"unicode"
)

type annotation string

const (
	ValueObject annotation = "@ValueObject"
	Name        annotation = "@Name"
	Path        annotation = "@Path"
)

func (a annotation) String() string {
	return string(a)
}

func (a annotation) EqualsIgnoreCase(str string) bool {
	return strings.EqualFold(str, a.String())
}

func (a annotation) PrefixOf(str string) bool {
	return strings.HasPrefix(strings.ToUpper(str), strings.ToUpper(a.String()))
}

// NewFileFromComment builds a File for a struct whose doc comment carries the
// @ValueObject annotation, optionally with @Name(CustomName) and @Path(dir)
// segments. It returns nil when the annotation is absent.
func NewFileFromComment(typeName string, dir string, comments []string) *File {
	for _, comment := range comments {
		text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(comment), "//"))
		seg := strings.Split(text, " ")
		if !ValueObject.EqualsIgnoreCase(seg[0]) {
			continue
		}
		objectName := typeName
		outDir := dir
		for _, s := range seg[1:] {
			s = strings.TrimSpace(s)
			switch {
			case Name.PrefixOf(s):
				if v, ok := ExtractValue(s, string(Name)); ok {
					objectName = v
				}
			case Path.PrefixOf(s):
				if v, ok := ExtractValue(s, string(Path)); ok {
					outDir = v
				}
			}
		}
		return NewValueObjectFile(typeName, objectName, outDir)
	}
	return nil
}

func NewValueObjectFile(typeName, objectName, dir string) *File {
	return &File{
		AbsFilename: path.Join(dir, strings.ToLower(addUnderscore(objectName))+"_vo.go"),
		Package:     path.Base(dir),
		TypeName:    typeName,
		ObjectName:  objectName,
	}
}

func addUnderscore(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(rune(s[i-1])) {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return result.String()
}

func ExtractValue(s string, annotation string) (string, bool) {
	reg := regexp.MustCompile(annotation + `\((.*)\)`)
	if !reg.MatchString(s) {
		return "", false
	}
	matchArr := reg.FindStringSubmatch(s)
	return matchArr[len(matchArr)-1], true
}

// LowerFirst lowers the first rune of a Go identifier, turning a field name
// into its property and parameter name.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
