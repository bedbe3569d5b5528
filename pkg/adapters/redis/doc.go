// Package redis provides a Redis-backed ProjectStore and DistributedLocker.
//
// Projects are stored as JSON strings under "<prefix>project:<id>" and indexed
// in the sorted set "<prefix>projects", scored by expiry. Locks use SET NX
// with a per-holder token under "<prefix>lock:<key>".
package redis
