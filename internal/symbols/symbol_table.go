// symbols/symbol_table.go - Scope chain entry point
//
// The package is split into:
// - symbol_table_core.go: Scope struct, scope types, construction
// - symbol_table_operations.go: declaring and looking up values and types
// - symbol_table_control.go: labels, loops, enclosing function state

package symbols
