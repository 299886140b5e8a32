//go:build release

package main

func glCheck() {}
