// Package env reads env documents and resolves variables for parsa.
//
// It provides functionality for:
//   - Parsing .env files into located assignments (KEY=value, quoted values, export)
//   - Variable interpolation using {{variable}} and {{$ENV}} syntax
//   - Selecting configured environments and process variables as resolver input
//
// Both grammars in this package are built from the combinators in the parser
// package. Var is the smallest complete example of that style.
package env
