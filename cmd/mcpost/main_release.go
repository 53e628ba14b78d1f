//go:build !debug

package main

func initDebug() {}
