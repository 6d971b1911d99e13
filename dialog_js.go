//go:build js

package main

import "errors"

var errImageDialogCancelled = errors.New("image dialog cancelled")

func pickOverlayImage() (string, error) {
	return "", errors.New("file dialogs are not available in the browser build")
}
