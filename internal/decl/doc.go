// Package decl processes the declarations of a translation unit into a
// symbols.Table.
//
// It recognizes the C subset's top-level declarations (variables, arrays,
// prototypes, function definitions, struct/union/enum definitions and
// typedefs) and the local declarations at the head of any block. Statements
// inside function bodies are not compiled; they are scanned so that every
// identifier is resolved through the table and every &name of a local or
// parameter marks it address-taken.
//
// Redeclaration policy: a name may be declared once per namespace. The
// exceptions are the ones C allows: a prototype followed by a definition of
// the same type, and extern declarations of an object with the same type as
// its definition. Everything else is reported as SemaDuplicateSymbol. The
// table itself stays permissive.
package decl
