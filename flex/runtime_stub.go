//go:build !flexlinked

package flex

func Version() int { return 0 }

func Available() bool { return false }
