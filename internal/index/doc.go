// Package index builds the whole-program table of class and method
// declarations. The table is flat, keeps unit order and is read-only once built.
package index
