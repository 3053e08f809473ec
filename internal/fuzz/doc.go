// Package fuzztests holds Go fuzz harnesses for the lilit front end
// (source -> lexer -> parser -> index -> resolver). Arbitrary input must end
// in diagnostics, never in a panic or a hang.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
