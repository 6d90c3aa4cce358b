// Package comparisons benchmarks the indexed map against builtin and third-party maps and trees, and cross-checks
// its contents against them.
package comparisons
