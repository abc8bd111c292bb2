// panelcut optimizes cut lists for sheet goods and dimensional lumber.
//
// Build:
//
//	go build -o panelcut ./cmd/panelcut
package main

import "github.com/piwi3910/panelcut/cmd/panelcut/cmd"

func main() {
	cmd.Execute()
}
