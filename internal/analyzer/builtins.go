package analyzer

import (
	"github.com/funvibe/tsfront/internal/symbols"
	"github.com/funvibe/tsfront/internal/typesystem"
)

const builtinFlags = typesystem.FlagConstant

func sig(ret typesystem.Type, params ...typesystem.Param) *typesystem.Function {
	return &typesystem.Function{Params: params, Return: ret}
}

func param(name string, t typesystem.Type) typesystem.Param {
	return typesystem.Param{Name: name, Type: t}
}

func optParam(name string, t typesystem.Type) typesystem.Param {
	return typesystem.Param{Name: name, Type: t, Optional: true}
}

func restParam(name string, elem typesystem.Type) typesystem.Param {
	return typesystem.Param{Name: name, Type: typesystem.NewArray(elem), Rest: true}
}

func constMember(name string, t typesystem.Type) *typesystem.Reference {
	return typesystem.NewReference(name, t, builtinFlags)
}

// NewBuiltinScope creates the global scope holding host-provided bindings.
// A fresh scope is built for every compilation.
func NewBuiltinScope() *symbols.Scope {
	g := symbols.NewGlobalScope()
	str, num := typesystem.String, typesystem.Number

	define := func(name string, t typesystem.Type) {
		_ = g.Declare(constMember(name, t))
	}

	define("path", typesystem.NewObject("path",
		constMember("extname", sig(str, param("p", str))),
		constMember("relative", sig(str, param("from", str), param("to", str))),
		constMember("join", sig(str, restParam("parts", str))),
		constMember("dirname", sig(str, param("p", str))),
		constMember("basename", sig(str, param("p", str), optParam("ext", str))),
		constMember("sep", str),
	))

	keysT := &typesystem.TypeParam{Name: "T", Constraint: typesystem.Unknown}
	define("Object", typesystem.NewObject("ObjectConstructor",
		constMember("keys", &typesystem.Function{
			Name:       "keys",
			TypeParams: []*typesystem.TypeParam{keysT},
			Params:     []typesystem.Param{param("o", keysT)},
			Return:     typesystem.NewArray(str),
		}),
	))

	for _, name := range []string{"Error", "SyntaxError", "TypeError"} {
		ctor := sig(typesystem.Unknown, optParam("message", str))
		class := typesystem.NewClass(name, ctor,
			typesystem.NewReference("message", str, 0),
			typesystem.NewReference("name", str, 0),
			typesystem.NewReference("stack", str, typesystem.FlagOptional),
		)
		ctor.Return = class
		define(name, class)
		_ = g.DeclareType(name, class)
	}

	logFn := sig(typesystem.Void, restParam("args", typesystem.Unknown))
	define("console", typesystem.NewObject("Console",
		constMember("log", logFn),
		constMember("error", logFn),
		constMember("warn", logFn),
	))

	define("JSON", typesystem.NewObject("JSON",
		constMember("stringify", sig(str, param("value", typesystem.Unknown))),
		constMember("parse", sig(typesystem.Unknown, param("text", str))),
	))

	define("parseInt", sig(num, param("s", str), optParam("radix", num)))
	define("parseFloat", sig(num, param("s", str)))
	define("isNaN", sig(typesystem.Boolean, param("n", num)))
	define("NaN", num)
	define("Infinity", num)

	recordK := &typesystem.TypeParam{Name: "K", Constraint: typesystem.Unknown}
	recordV := &typesystem.TypeParam{Name: "V", Constraint: typesystem.Unknown}
	_ = g.DeclareType("Record", &typesystem.Alias{
		Name:    "Record",
		Params:  []*typesystem.TypeParam{recordK, recordV},
		Aliased: &typesystem.Mapped{Key: recordK, Value: recordV},
	})

	arrayT := &typesystem.TypeParam{Name: "T", Constraint: typesystem.Unknown}
	_ = g.DeclareType("Array", &typesystem.Alias{
		Name:    "Array",
		Params:  []*typesystem.TypeParam{arrayT},
		Aliased: typesystem.NewArray(arrayT),
	})

	return g
}

// stringMember returns the type of a builtin string property.
func stringMember(name string) (typesystem.Type, bool) {
	str, num, boolean := typesystem.String, typesystem.Number, typesystem.Boolean
	switch name {
	case "length":
		return num, true
	case "charAt", "at":
		return sig(str, param("index", num)), true
	case "charCodeAt":
		return sig(num, param("index", num)), true
	case "indexOf", "lastIndexOf":
		return sig(num, param("search", str), optParam("position", num)), true
	case "includes", "startsWith", "endsWith":
		return sig(boolean, param("search", str), optParam("position", num)), true
	case "slice", "substring":
		return sig(str, param("start", num), optParam("end", num)), true
	case "toUpperCase", "toLowerCase", "trim", "trimStart", "trimEnd", "toString":
		return sig(str), true
	case "split":
		return sig(typesystem.NewArray(str), param("separator", str), optParam("limit", num)), true
	case "replace", "replaceAll":
		return sig(str, param("search", str), param("replacement", str)), true
	case "padStart", "padEnd":
		return sig(str, param("length", num), optParam("fill", str)), true
	case "repeat":
		return sig(str, param("count", num)), true
	case "concat":
		return sig(str, restParam("parts", str)), true
	}
	return nil, false
}

// numberMember returns the type of a builtin number property.
func numberMember(name string) (typesystem.Type, bool) {
	switch name {
	case "toFixed":
		return sig(typesystem.String, optParam("digits", typesystem.Number)), true
	case "toString":
		return sig(typesystem.String, optParam("radix", typesystem.Number)), true
	}
	return nil, false
}

// arrayMember returns the type of a builtin array property for element type
// elem. Callback results are not inferred.
func arrayMember(arr *typesystem.Array, name string) (typesystem.Type, bool) {
	elem := arr.Element
	num, boolean, unknown := typesystem.Number, typesystem.Boolean, typesystem.Unknown
	callback := func(ret typesystem.Type) *typesystem.Function {
		return sig(ret, param("value", elem), optParam("index", num), optParam("array", arr))
	}
	switch name {
	case "length":
		return num, true
	case "push", "unshift":
		return sig(num, restParam("items", elem)), true
	case "pop", "shift":
		return sig(elem), true
	case "slice":
		return sig(arr, optParam("start", num), optParam("end", num)), true
	case "splice":
		return sig(arr, param("start", num), optParam("deleteCount", num), restParam("items", elem)), true
	case "concat":
		return sig(arr, restParam("items", unknown)), true
	case "join":
		return sig(typesystem.String, optParam("separator", typesystem.String)), true
	case "indexOf", "lastIndexOf":
		return sig(num, param("search", elem)), true
	case "includes":
		return sig(boolean, param("search", elem)), true
	case "reverse":
		return sig(arr), true
	case "sort":
		return sig(arr, optParam("compare", sig(num, param("a", elem), param("b", elem)))), true
	case "forEach":
		return sig(typesystem.Void, param("callback", callback(unknown))), true
	case "map":
		return sig(typesystem.NewArray(unknown), param("callback", callback(unknown))), true
	case "filter":
		return sig(arr, param("predicate", callback(unknown))), true
	case "find":
		return sig(elem, param("predicate", callback(unknown))), true
	case "findIndex":
		return sig(num, param("predicate", callback(unknown))), true
	case "some", "every":
		return sig(boolean, param("predicate", callback(unknown))), true
	case "reduce":
		return sig(unknown, param("callback", sig(unknown, param("acc", unknown), param("value", elem), optParam("index", num))), optParam("initial", unknown)), true
	}
	return nil, false
}
