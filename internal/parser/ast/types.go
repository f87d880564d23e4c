package ast

import "strings"

// SimpleType is a bare type name: number
type SimpleType struct {
	Name string
}

// FunctionType is (number, string) -> bool. Params may be empty.
type FunctionType struct {
	Params []Type
	Return Type
}

// GenericType is a name applied to type arguments: List<number>
type GenericType struct {
	Name string
	Args []Type
}

func (*SimpleType) node()   {}
func (*FunctionType) node() {}
func (*GenericType) node()  {}

func (*SimpleType) typeNode()   {}
func (*FunctionType) typeNode() {}
func (*GenericType) typeNode()  {}

func (t *SimpleType) String() string {
	return t.Name
}

func (t *FunctionType) String() string {
	return "(" + joinTypes(t.Params) + ") -> " + t.Return.String()
}

func (t *GenericType) String() string {
	return t.Name + "<" + joinTypes(t.Args) + ">"
}

func joinTypes(types []Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
