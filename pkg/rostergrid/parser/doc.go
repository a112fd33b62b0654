// Package parser turns xlsx sheets into in-memory tables.
package parser
