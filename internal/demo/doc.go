// Package demo is a small guard agent driven by an hsm machine.
//
// The guard patrols a route, chases what it sees, searches where it lost sight of it
// and rests when it runs out of stamina. Scenarios script what happens around it.
package demo
