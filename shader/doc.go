// Package shader wraps backend programs with source-based uniform
// reflection and typed uniform setters.
//
// New compiles and links the non-empty stages of a Sources value. Build
// problems never abort construction: the backend info log is written to
// the package logger at warning level and the returned Shader degrades
// to a no-op program.
//
// Reflection scans each stage for declarations of the form
//
//	uniform <type> <name>;
//
// where <type> is a keyword of the TypeTable in use (DefaultTypes maps
// the GLSL scalar, vector, square matrix and sampler keywords). Array,
// struct, block and precision-qualified declarations are not listed.
//
// Setting a uniform the linked program does not declare is a silent
// no-op, so one material can drive several shader variants.
package shader
