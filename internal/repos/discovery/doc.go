// Package discovery resolves filesystem roots into git working trees.
//
// A root that is itself a working tree is returned as-is; otherwise its
// immediate subdirectories are checked concurrently and the working trees
// among them are returned in directory listing order. Discovery never
// descends further than one level.
package discovery
