// Package config loads typed configuration structs from environment
// variables.
//
// A .env file, when present, is loaded once per process before the
// first parse. Each distinct struct type is parsed once and cached, so
// independent components can load their own config without worrying
// about duplicate work or divergent values.
package config
