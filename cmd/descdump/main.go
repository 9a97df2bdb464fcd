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

// descdump is an interactive-inspection tool: given a YAML schema, it
// prints a message descriptor's fields as a table; given a newline-
// delimited key file, it loads the keys into a trie and prints them back
// out in sorted order, the same order the trie itself would iterate them.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/rodaine/table"

	"github.com/tsdb2/tsdb2/common/trie"
	"github.com/tsdb2/tsdb2/proto/reflect"
	"github.com/tsdb2/tsdb2/schema"
)

var (
	schemaFile = flag.String("schema", "", "schema YAML file to load")
	message    = flag.String("message", "", "name of the message to dump fields for")
	keysFile   = flag.String("keys", "", "newline-delimited key file to load into a trie and dump sorted")
)

func dumpFields(desc *reflect.MessageDescriptor) {
	t := table.New("Field", "Type", "Kind", "Detail").WithWriter(os.Stdout)
	for _, name := range desc.GetAllFieldNames() {
		f, err := desc.FieldDescriptor(name)
		if err != nil {
			continue
		}
		t.AddRow(name, f.Type(), f.Kind(), fieldDetail(f))
	}
	t.Print()
}

func fieldDetail(f *reflect.FieldDescriptor) string {
	switch f.Kind() {
	case reflect.Map:
		shape, _ := f.MapShape()
		keyType, _ := f.MapKeyType()
		return fmt.Sprintf("%s, key=%s", shape, keyType)
	case reflect.OneOf:
		oneofDesc, _ := f.OneOfDescriptor()
		return fmt.Sprintf("%d arms", oneofDesc.Size())
	}
	switch f.Type() {
	case reflect.Enum:
		enumDesc, _ := f.EnumDescriptor()
		return enumDesc.Name()
	case reflect.SubMessage:
		subDesc, _ := f.SubMessageDescriptor()
		return subDesc.Name()
	default:
		return ""
	}
}

func dumpTrie(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	keys := trie.NewSet()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			keys.Insert(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	t := table.New("#", "Key").WithWriter(os.Stdout)
	i := 0
	for key := range keys.All() {
		t.AddRow(i, key)
		i++
	}
	t.Print()
	return nil
}

func run() error {
	switch {
	case *schemaFile != "":
		if *message == "" {
			return fmt.Errorf("descdump: -message is required with -schema")
		}
		lib, err := schema.LoadFile(*schemaFile)
		if err != nil {
			return err
		}
		desc, ok := lib.Message(*message)
		if !ok {
			return fmt.Errorf("descdump: no message named %q in %s", *message, *schemaFile)
		}
		dumpFields(desc)
		return nil
	case *keysFile != "":
		return dumpTrie(*keysFile)
	default:
		flag.Usage()
		os.Exit(2)
		return nil
	}
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
