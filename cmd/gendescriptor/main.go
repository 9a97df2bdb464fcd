// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// gendescriptor reads a YAML schema file and emits Go source that builds
// the same reflect.Library by calling reflect.NewMessageDescriptor and
// reflect.NewEnumDescriptor directly, so the result can be compiled in
// instead of parsed at startup.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"

	"github.com/tsdb2/tsdb2/schema"
)

var (
	in  = flag.String("in", "", "schema YAML file to read")
	out = flag.String("out", "", "Go source file to write")
	pkg = flag.String("pkg", "", "package name for the generated file")
)

const reflectPkg = "github.com/tsdb2/tsdb2/proto/reflect"

func fieldTypeExpr(typ string) *jen.Statement {
	switch typ {
	case "", "message", "enum", "map", "oneof":
		panic("gendescriptor: fieldTypeExpr called with non-scalar type " + typ)
	}
	names := map[string]string{
		"int32": "Int32", "uint32": "Uint32", "int64": "Int64", "uint64": "Uint64",
		"bool": "Bool", "string": "String", "bytes": "Bytes",
		"double": "Double", "float": "Float", "time": "Time", "duration": "Duration",
	}
	name, ok := names[typ]
	if !ok {
		panic("gendescriptor: unknown scalar type " + typ)
	}
	return jen.Qual(reflectPkg, name)
}

func kindExpr(kind string) *jen.Statement {
	switch kind {
	case "", "raw":
		return jen.Qual(reflectPkg, "Raw")
	case "optional":
		return jen.Qual(reflectPkg, "Optional")
	case "repeated":
		return jen.Qual(reflectPkg, "Repeated")
	default:
		panic("gendescriptor: unknown field kind " + kind)
	}
}

func mapShapeExpr(shape string) *jen.Statement {
	names := map[string]string{
		"": "ShapeHashMap", "hash_map": "ShapeHashMap",
		"flat_hash_map": "ShapeFlatHashMap", "node_hash_map": "ShapeNodeHashMap",
		"sorted_map": "ShapeSortedMap", "btree_map": "ShapeBTreeMap",
		"flat_map": "ShapeFlatMap", "trie_map": "ShapeTrieMap",
	}
	name, ok := names[shape]
	if !ok {
		panic("gendescriptor: unknown map shape " + shape)
	}
	return jen.Qual(reflectPkg, name)
}

func enumVarName(name string) string { return name + "Enum" }

// emitEnum generates a package-level var holding the enum's descriptor.
func emitEnum(f *jen.File, e schema.EnumDoc) {
	values := make([]jen.Code, 0, len(e.Values))
	for _, v := range e.Values {
		values = append(values, jen.Qual(reflectPkg, "EnumValue").Values(jen.Dict{
			jen.Id("Name"):  jen.Lit(v.Name),
			jen.Id("Value"): jen.Lit(v.Value),
		}))
	}
	f.Var().Id(enumVarName(e.Name)).Op("=").Qual(reflectPkg, "NewEnumDescriptor").Call(
		append([]jen.Code{jen.Lit(e.Name)}, values...)...,
	)
}

// fieldExpr generates the expression that builds one field descriptor.
func fieldExpr(field schema.FieldDoc) jen.Code {
	switch field.Type {
	case "map":
		return jen.Qual(reflectPkg, "MapFieldDescriptor").Call(
			jen.Lit(field.Name),
			mapShapeExpr(field.MapShape),
			fieldTypeExpr(field.KeyType),
			mapValueExpr(field),
		)
	case "oneof":
		arms := make([]jen.Code, 0, len(field.OneOf))
		for _, a := range field.OneOf {
			arms = append(arms, oneOfArmExpr(a))
		}
		return jen.Qual(reflectPkg, "OneOfFieldDescriptor").Call(
			jen.Lit(field.Name),
			jen.Qual(reflectPkg, "NewOneOfDescriptor").Call(
				append([]jen.Code{jen.Lit(field.Name)}, arms...)...,
			),
		)
	case "enum":
		return jen.Qual(reflectPkg, "EnumFieldDescriptor").Call(
			jen.Lit(field.Name), jen.Id(enumVarName(field.Enum)), kindExpr(field.Kind),
		)
	case "message":
		return jen.Qual(reflectPkg, "SubMessageFieldDescriptor").Call(
			jen.Lit(field.Name), jen.Id(field.Message+"Descriptor").Call(), kindExpr(field.Kind),
		)
	default:
		return jen.Qual(reflectPkg, "ScalarFieldDescriptor").Call(
			jen.Lit(field.Name), fieldTypeExpr(field.Type), kindExpr(field.Kind),
		)
	}
}

func mapValueExpr(field schema.FieldDoc) jen.Code {
	switch field.ValueType {
	case "enum":
		return jen.Qual(reflectPkg, "EnumFieldDescriptor").Call(
			jen.Lit("value"), jen.Id(enumVarName(field.ValueEnum)), jen.Qual(reflectPkg, "Raw"),
		)
	case "message":
		return jen.Qual(reflectPkg, "SubMessageFieldDescriptor").Call(
			jen.Lit("value"), jen.Id(field.ValueMessage+"Descriptor").Call(), jen.Qual(reflectPkg, "Raw"),
		)
	default:
		return jen.Qual(reflectPkg, "ScalarFieldDescriptor").Call(
			jen.Lit("value"), fieldTypeExpr(field.ValueType), jen.Qual(reflectPkg, "Raw"),
		)
	}
}

func oneOfArmExpr(arm schema.OneOfArmDoc) jen.Code {
	fields := jen.Dict{
		jen.Id("Name"): jen.Lit(arm.Name),
		jen.Id("Type"): fieldKindForArm(arm.Type),
	}
	switch arm.Type {
	case "enum":
		fields[jen.Id("EnumDesc")] = jen.Id(enumVarName(arm.Enum))
	case "message":
		fields[jen.Id("SubDesc")] = jen.Id(arm.Message + "Descriptor").Call()
	}
	return jen.Qual(reflectPkg, "OneOfArm").Values(fields)
}

func fieldKindForArm(typ string) *jen.Statement {
	if typ == "enum" {
		return jen.Qual(reflectPkg, "Enum")
	}
	if typ == "message" {
		return jen.Qual(reflectPkg, "SubMessage")
	}
	return fieldTypeExpr(typ)
}

// emitMessage generates a lazily-memoized accessor function for the
// message's descriptor, since a sub-message field may need to reference a
// descriptor built later in the same file.
func emitMessage(f *jen.File, m schema.MessageDoc) {
	fields := make([]jen.Code, 0, len(m.Fields))
	for _, field := range m.Fields {
		fields = append(fields, fieldExpr(field))
	}
	required := make([]jen.Code, 0, len(m.Required))
	for _, r := range m.Required {
		required = append(required, jen.Lit(r))
	}

	cacheVar := m.Name + "DescriptorCache"
	f.Var().Id(cacheVar).Op("*").Qual(reflectPkg, "MessageDescriptor")

	f.Comment(fmt.Sprintf("%sDescriptor returns the descriptor for %s, building it on first use.", m.Name, m.Name))
	f.Func().Id(m.Name+"Descriptor").Params().Op("*").Qual(reflectPkg, "MessageDescriptor").Block(
		jen.If(jen.Id(cacheVar).Op("==").Nil()).Block(
			jen.Id(cacheVar).Op("=").Qual(reflectPkg, "NewMessageDescriptor").Call(
				jen.Lit(m.Name),
				jen.Index().Op("*").Qual(reflectPkg, "FieldDescriptor").Values(fields...),
				jen.Index().String().Values(required...),
			),
		),
		jen.Return(jen.Id(cacheVar)),
	)
}

func run() error {
	if *in == "" || *out == "" || *pkg == "" {
		flag.Usage()
		os.Exit(2)
	}

	doc, err := schema.ParseFile(*in)
	if err != nil {
		return err
	}

	f := jen.NewFile(*pkg)
	f.PackageComment("Code generated by gendescriptor. DO NOT EDIT.")

	for _, e := range doc.Enums {
		emitEnum(f, e)
	}
	for _, m := range doc.Messages {
		emitMessage(f, m)
	}

	formatted, err := imports.Process(*out, []byte(f.GoString()), nil)
	if err != nil {
		return err
	}
	return os.WriteFile(*out, formatted, 0o644)
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
