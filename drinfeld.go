/*
Package drinfeld is a pure Go library for computing traces, characteristic
polynomials and Newton-polygon slopes of Hecke operators acting on spaces of
Drinfeld cusp forms over a rational function field GF(q)(T), via an explicit
trace formula over weighted enumerations of rank-2 isogeny classes. All
arithmetic is exact, over finite fields, polynomial rings and rational
function fields; there is no floating-point computation anywhere in the core.
*/
package drinfeld
