package compiler

// builtinsHeader is the `builtins.h` every transpiled translation unit
// `#include`s (§6: "relying on a builtins.h header that provides Unit,
// Int, Bool, and the built-in functions... with matching signatures").
// Implemented as static inline C functions so the generated program is a
// single translation unit with no extra object file to link, mirroring
// internal/builtins' Go implementations function-for-function
// (original_source/builtins.py).
const builtinsHeader = `#ifndef EPL_BUILTINS_H
#define EPL_BUILTINS_H

#include <stdio.h>
#include <unistd.h>

// <stdlib.h> is deliberately not included: it declares both "div" (a
// struct-returning libc function) and "abort", names EPL's own builtins
// reuse with different signatures. _exit (unistd.h) covers the only libc
// facility these builtins need without colliding.

typedef long long Int;
typedef struct { char _unused; } Unit;
#define UNIT ((Unit){0})
typedef enum { false, true } Bool;

static inline Int add(Int a, Int b) { return a + b; }
static inline Int sub(Int a, Int b) { return a - b; }
static inline Int mul(Int a, Int b) { return a * b; }
static inline Int div(Int a, Int b) {
	if (b == 0) { fprintf(stderr, "division by zero\n"); _exit(1); }
	return a / b;
}
static inline Int mod(Int a, Int b) {
	if (b == 0) { fprintf(stderr, "modulo by zero\n"); _exit(1); }
	return a % b;
}

static inline Bool ieq(Int a, Int b)  { return a == b ? true : false; }
static inline Bool ineq(Int a, Int b) { return a != b ? true : false; }
static inline Bool gt(Int a, Int b)   { return a > b  ? true : false; }
static inline Bool geq(Int a, Int b)  { return a >= b ? true : false; }
static inline Bool lt(Int a, Int b)   { return a < b  ? true : false; }
static inline Bool leq(Int a, Int b)  { return a <= b ? true : false; }

static inline Bool and(Bool a, Bool b) { return (a && b) ? true : false; }
static inline Bool or(Bool a, Bool b)  { return (a || b) ? true : false; }
static inline Bool xor(Bool a, Bool b) { return (a != b) ? true : false; }
static inline Bool not(Bool a)         { return a ? false : true; }
static inline Bool beq(Bool a, Bool b)  { return (a == b) ? true : false; }
static inline Bool bneq(Bool a, Bool b) { return (a != b) ? true : false; }

static inline Unit iprint(Int n) { printf("%lld\n", n); return UNIT; }
static inline Unit bprint(Bool b) { printf("%s\n", b ? "true" : "false"); return UNIT; }
static inline Unit abort(void) { fprintf(stderr, "abort\n"); _exit(1); }

#endif
`
