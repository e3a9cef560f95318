// Package cnl parses the controlled natural language markup used to
// author knowledge graphs as text. It covers the two lower layers of the
// compiler: line element parsing (one relation, attribute, or state line
// at a time) and structural tree building (the full document as an
// ordered list of node blocks with morph sub-blocks).
//
// Parsing is pure: no graph entities are created here. Target names that
// do not resolve to a declared node are carried through as references and
// materialized later by the compiler.
package cnl
