package bootstrap

import "errors"

var (
	ErrMissingCapability   = errors.New("capability is not attached")
	ErrPluginOrder         = errors.New("plugin attached out of order")
	ErrAlreadyInstalled    = errors.New("capability is already attached")
	ErrAlreadyMounted      = errors.New("application is already mounted")
	ErrMountTargetNotFound = errors.New("mount target not found")
	ErrUnknownPlugin       = errors.New("unknown plugin kind")
	ErrNotMounted          = errors.New("application is not mounted")
)
