/*
Package workspace runs jobs against persisted projects.

A Manager loads a project from a ports.ProjectStore (creating it on first
use), applies jobs through an fxforge.Forge and saves the result, all while
holding a per-project lock. The lock is a reference-counted local mutex,
optionally backed by a ports.DistributedLocker so several instances can share
one store.
*/
package workspace
