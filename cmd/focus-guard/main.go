// FocusGuard - Combined Service and UI
package main

import (
	"fmt"
	"log"

	"github.com/user/focus-guard/internal/elevate"
	"github.com/user/focus-guard/internal/ui"
)

func main() {
	fmt.Println("FocusGuard starting...")

	// Editing the hosts file and terminating processes requires admin/root
	if !elevate.IsAdmin() {
		fmt.Println("Not running as administrator, requesting elevation...")
		if err := elevate.RunAsAdmin(); err != nil {
			log.Fatalf("Failed to elevate privileges: %v\nPlease run as administrator.", err)
		}
		return // elevated process was launched
	}

	ui.Run()
}
