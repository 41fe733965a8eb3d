//go:build !linux || nort

package timer

import "errors"

func setRealTime(int) error {
	return errors.New("not supported by this build")
}
