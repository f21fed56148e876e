//go:build windows

package cmd

import (
	"errors"
	"os"
)

var errNoTTY = errors.New("the picker needs a Unix terminal")

var errLocked = errors.New("another instance of itempicker is running")

func openTTY() (*os.File, error) { return nil, errNoTTY }

func checkTermWidth(*os.File) error { return errNoTTY }

func acquireLock(string) (int, error) { return -1, errNoTTY }

func releaseLock(int) {}
