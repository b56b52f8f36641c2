// Command clubdemo renders population pyramids for a club roster and projects
// how the membership changes as people are admitted from the waitlist.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
