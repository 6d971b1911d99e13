//go:build !js

package main

import (
	"errors"

	"github.com/sqweek/dialog"
)

var errImageDialogCancelled = errors.New("image dialog cancelled")

func pickOverlayImage() (string, error) {
	filename, err := dialog.File().Filter("PNG images", "png", "PNG").Load()
	if err != nil {
		if err == dialog.Cancelled {
			return "", errImageDialogCancelled
		}
		return "", err
	}
	return filename, nil
}
