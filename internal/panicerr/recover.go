// Package panicerr turns a goroutine's panic or runtime.Goexit into a plain
// error return, so that a VM halt (signaled internally by panic, see vm.halt)
// surfaces to callers as a normal error rather than crashing the process.
package panicerr

import "golang.org/x/sync/errgroup"

// Recover runs f on a goroutine owned by a single-member errgroup.Group,
// converting any panic or runtime.Goexit triggered by f into a non-nil error
// return instead of crashing the process or leaking a silently-dead
// goroutine. Using errgroup here (rather than a bespoke channel) lets a
// caller that runs several Recover calls concurrently, such as a batch
// runner, fold them into the same group and Wait on all of them together.
func Recover(name string, f func() error) (err error) {
	var g errgroup.Group
	g.Go(func() error {
		normalReturn := false
		defer func() {
			if normalReturn {
				return
			}
			if pe := recoverPanic(name, recover()); pe != nil {
				err = pe
			} else {
				err = exitError(name)
			}
		}()
		err = f()
		normalReturn = true
		return nil
	})
	g.Wait()
	return err
}
