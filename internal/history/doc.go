// Package history persists a record of every scan in an embedded BadgerDB.
package history
